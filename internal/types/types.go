package types

import "time"

// AnnotationVersion is the schema version stamped on every generated
// annotation. Bump when field names or enum value sets change.
const AnnotationVersion = "1.0.0"

// Position is a 1-based source location. A zero Line means the position
// is unknown.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Known reports whether the position carries a real source location.
func (p Position) Known() bool {
	return p.Line > 0
}

// SyntaxNode is the read-only input handed to the annotation pipeline by
// the parser. The pipeline never mutates it and never re-parses; it only
// slices the accompanying source text by the node's line range.
type SyntaxNode struct {
	ID       string            `json:"id"`
	Type     string            `json:"type"`
	Name     string            `json:"name,omitempty"`
	Start    Position          `json:"start"`
	End      Position          `json:"end"`
	Language string            `json:"language,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// HasName reports whether the node carries a non-empty name.
func (n *SyntaxNode) HasName() bool {
	return n != nil && n.Name != ""
}

// HasType reports whether the node carries a non-empty kind tag.
func (n *SyntaxNode) HasType() bool {
	return n != nil && n.Type != ""
}

// HasPositions reports whether both start and end locations are known.
func (n *SyntaxNode) HasPositions() bool {
	return n != nil && n.Start.Known() && n.End.Known()
}

// LineCount returns the inclusive line span of the node, or 0 when the
// positions are unknown.
func (n *SyntaxNode) LineCount() int {
	if !n.HasPositions() || n.End.Line < n.Start.Line {
		return 0
	}
	return n.End.Line - n.Start.Line + 1
}

// FilePath returns the source file recorded in node metadata, if any.
func (n *SyntaxNode) FilePath() string {
	if n == nil || n.Metadata == nil {
		return ""
	}
	return n.Metadata["file_path"]
}

// MetadataLanguage returns the language recorded in node metadata, if any.
func (n *SyntaxNode) MetadataLanguage() string {
	if n == nil || n.Metadata == nil {
		return ""
	}
	return n.Metadata["language"]
}

// Parameter is one entry of an extracted parameter list. Name is always
// non-empty after fallback substitution; the remaining fields are
// best-effort.
type Parameter struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	DefaultValue string `json:"default_value,omitempty"`
	Optional     bool   `json:"optional,omitempty"`
}

// DependencyKind classifies a dependency fact.
type DependencyKind string

const (
	DependencyImport    DependencyKind = "import"
	DependencyCall      DependencyKind = "call"
	DependencyReference DependencyKind = "reference"
)

// DependencyFact is one import, call, or reference discovered around a
// node. Facts live only inside an analysis result; they are not persisted
// independently.
type DependencyFact struct {
	Source     string         `json:"source"`
	Kind       DependencyKind `json:"kind"`
	IsExternal bool           `json:"is_external"`
	IsCircular bool           `json:"is_circular"`
}

// PurposeCategory is the coarse classification of a node's intent. The
// value set is part of the storage interface: renaming requires a version
// bump.
type PurposeCategory string

const (
	PurposeEventHandling  PurposeCategory = "event-handling"
	PurposeObjectCreation PurposeCategory = "object-creation"
	PurposeValidation     PurposeCategory = "validation"
	PurposeTransformation PurposeCategory = "transformation"
	PurposeAPIEndpoint    PurposeCategory = "api-endpoint"
	PurposeDataAccess     PurposeCategory = "data-access"
	PurposeMiddleware     PurposeCategory = "middleware"
	PurposeUIComponent    PurposeCategory = "ui-component"
	PurposeTest           PurposeCategory = "testing"
	PurposeBusinessLogic  PurposeCategory = "business-logic"
	PurposeUtility        PurposeCategory = "utility"
)

// Annotation is the structured output record for one syntax node. Created
// fresh per generation call (or returned from cache), never mutated after
// construction. Signature and Summary are never empty strings.
type Annotation struct {
	NodeID       string          `json:"node_id"`
	FilePath     string          `json:"file_path,omitempty"`
	Signature    string          `json:"signature"`
	Summary      string          `json:"summary"`
	Parameters   []Parameter     `json:"parameters,omitempty"`
	ReturnType   string          `json:"return_type,omitempty"`
	Modifiers    []string        `json:"modifiers,omitempty"`
	Complexity   int             `json:"complexity"`
	LineCount    int             `json:"line_count"`
	CharCount    int             `json:"char_count"`
	Dependencies []string        `json:"dependencies,omitempty"`
	Calls        []string        `json:"calls,omitempty"`
	Snippet      string          `json:"snippet,omitempty"`
	Purpose      PurposeCategory `json:"purpose"`
	SemanticTags []string        `json:"semantic_tags,omitempty"`
	Completeness float64         `json:"completeness"`
	Confidence   float64         `json:"confidence"`
	Language     string          `json:"language"`
	GeneratedAt  time.Time       `json:"generated_at"`
	Version      string          `json:"version"`
}

// FileSummary aggregates the annotations of one file: node-kind counts,
// complexity tier distribution, and the union of external dependencies
// and semantic tags.
type FileSummary struct {
	FilePath               string         `json:"file_path"`
	TotalAnnotations       int            `json:"total_annotations"`
	NodeTypeCounts         map[string]int `json:"node_type_counts"`
	ComplexityDistribution map[string]int `json:"complexity_distribution"`
	ExternalDependencies   []string       `json:"external_dependencies,omitempty"`
	SemanticTags           []string       `json:"semantic_tags,omitempty"`
	Language               string         `json:"language,omitempty"`
}

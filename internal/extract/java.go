package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// JavaExtractor implements signature extraction for Java.
type JavaExtractor struct {
	methodPattern *regexp.Regexp
	typePattern   *regexp.Regexp
	fieldPattern  *regexp.Regexp
	modifierSet   []string
}

// NewJavaExtractor creates a new Java extractor
func NewJavaExtractor() *JavaExtractor {
	return &JavaExtractor{
		methodPattern: regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|final|abstract|synchronized|native|default)\s+)*(?:<[^>]+>\s+)?[\w.<>\[\],\s]+\s+\w+\s*\(`),
		typePattern:   regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|final|abstract)\s+)*(?:class|interface|enum|record)\s+\w+`),
		fieldPattern:  regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|final|volatile|transient)\s+)+[\w.<>\[\],\s]+\s+\w+\s*[=;]`),
		modifierSet: []string{
			"abstract", "default", "final", "native", "private",
			"protected", "public", "static", "synchronized", "transient", "volatile",
		},
	}
}

// Language returns the language identifier
func (e *JavaExtractor) Language() string { return "java" }

// ExtractSignature returns the declaration line for the node kind
func (e *JavaExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	lines := NodeLines(node, source)
	if len(lines) == 0 {
		return ""
	}

	kind := strings.ToLower(node.Type)
	var sig string
	switch {
	case strings.Contains(kind, "method"), strings.Contains(kind, "constructor"), strings.Contains(kind, "function"):
		sig = e.findMatch(lines, e.methodPattern)
	case strings.Contains(kind, "class"), strings.Contains(kind, "interface"),
		strings.Contains(kind, "enum"), strings.Contains(kind, "record"):
		sig = e.findMatch(lines, e.typePattern)
	case strings.Contains(kind, "field"), strings.Contains(kind, "variable"), strings.Contains(kind, "const"):
		sig = e.findMatch(lines, e.fieldPattern)
		if eq := indexTopLevel(sig, '='); eq >= 0 {
			sig = strings.TrimSpace(sig[:eq])
		}
	}

	if sig == "" {
		sig = FirstSignificantLine(lines)
	}
	return NormalizeSignature(sig)
}

func (e *JavaExtractor) findMatch(lines []string, pattern *regexp.Regexp) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@") || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if pattern.MatchString(line) {
			return trimmed
		}
	}
	return ""
}

// ExtractParameters recovers "Type name" parameters.
func (e *JavaExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	sig := e.ExtractSignature(node, source)
	group, ok := ParameterGroup(sig)
	if !ok {
		return nil
	}

	var params []types.Parameter
	for _, token := range SplitTopLevel(group) {
		params = append(params, parseTypeFirst(token, "final"))
	}
	return params
}

// ExtractReturnType reads the type token preceding the method name.
// Returns "" for void, constructors, and non-method kinds.
func (e *JavaExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
	if !IsFunctionKind(node.Type) {
		return ""
	}
	sig := e.ExtractSignature(node, source)
	open := strings.IndexByte(sig, '(')
	if open < 0 {
		return ""
	}

	head := strings.Fields(sig[:open])
	if len(head) < 2 {
		return "" // constructor form: modifiers + Name(
	}
	ret := head[len(head)-2]
	switch ret {
	case "void", "public", "private", "protected", "static", "final", "abstract", "synchronized":
		return ""
	}
	return ret
}

// ExtractModifiers scans the span for Java modifier keywords.
func (e *JavaExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	lines := NodeLines(node, source)
	if len(lines) == 0 {
		return nil
	}
	return ScanModifiers(strings.Join(lines, "\n"), e.modifierSet)
}

package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// CSharpExtractor implements signature extraction for C#.
type CSharpExtractor struct {
	methodPattern   *regexp.Regexp
	typePattern     *regexp.Regexp
	propertyPattern *regexp.Regexp
	modifierSet     []string
}

// NewCSharpExtractor creates a new C# extractor
func NewCSharpExtractor() *CSharpExtractor {
	return &CSharpExtractor{
		methodPattern:   regexp.MustCompile(`^\s*(?:\[[^\]]*\]\s*)*(?:(?:public|private|protected|internal|static|virtual|override|abstract|sealed|async|partial|extern)\s+)*[\w.<>\[\],?\s]+\s+\w+\s*(?:<[^>]*>)?\s*\(`),
		typePattern:     regexp.MustCompile(`^\s*(?:(?:public|private|protected|internal|static|abstract|sealed|partial)\s+)*(?:class|interface|struct|enum|record)\s+\w+`),
		propertyPattern: regexp.MustCompile(`^\s*(?:(?:public|private|protected|internal|static|virtual|override|readonly)\s+)+[\w.<>\[\],?\s]+\s+\w+\s*(?:{|=>|=|;)`),
		modifierSet: []string{
			"abstract", "async", "internal", "override", "partial", "private",
			"protected", "public", "readonly", "sealed", "static", "virtual",
		},
	}
}

// Language returns the language identifier
func (e *CSharpExtractor) Language() string { return "csharp" }

// ExtractSignature returns the declaration line for the node kind
func (e *CSharpExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
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
		strings.Contains(kind, "struct"), strings.Contains(kind, "enum"), strings.Contains(kind, "record"):
		sig = e.findMatch(lines, e.typePattern)
	case strings.Contains(kind, "property"), strings.Contains(kind, "field"), strings.Contains(kind, "variable"):
		sig = e.findMatch(lines, e.propertyPattern)
		sig = strings.TrimSuffix(strings.TrimSuffix(sig, "{"), "=>")
		if eq := indexTopLevel(sig, '='); eq >= 0 {
			sig = strings.TrimSpace(sig[:eq])
		}
	case strings.Contains(kind, "namespace"):
		sig = FindDeclarationLine(lines, "namespace ")
	}

	if sig == "" {
		sig = FirstSignificantLine(lines)
	}
	return NormalizeSignature(sig)
}

func (e *CSharpExtractor) findMatch(lines []string, pattern *regexp.Regexp) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if pattern.MatchString(line) {
			return trimmed
		}
	}
	return ""
}

// ExtractParameters recovers "Type name" parameters with ref/out/params
// passing keywords stripped.
func (e *CSharpExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	sig := e.ExtractSignature(node, source)
	group, ok := ParameterGroup(sig)
	if !ok {
		return nil
	}

	var params []types.Parameter
	for _, token := range SplitTopLevel(group) {
		params = append(params, parseTypeFirst(token, "ref", "out", "in", "params", "this"))
	}
	return params
}

// ExtractReturnType reads the type token preceding the method name.
func (e *CSharpExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
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
		return ""
	}
	ret := head[len(head)-2]
	switch ret {
	case "void", "public", "private", "protected", "internal", "static",
		"virtual", "override", "abstract", "sealed", "async", "partial":
		return ""
	}
	return ret
}

// ExtractModifiers scans the span for C# modifier keywords.
func (e *CSharpExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	lines := NodeLines(node, source)
	if len(lines) == 0 {
		return nil
	}
	return ScanModifiers(strings.Join(lines, "\n"), e.modifierSet)
}

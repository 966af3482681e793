package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// PythonExtractor implements signature extraction for Python. Decorators
// stand in for lexical modifiers.
type PythonExtractor struct {
	defPattern       *regexp.Regexp
	classPattern     *regexp.Regexp
	decoratorPattern *regexp.Regexp
}

// NewPythonExtractor creates a new Python extractor
func NewPythonExtractor() *PythonExtractor {
	return &PythonExtractor{
		defPattern:       regexp.MustCompile(`^\s*(async\s+)?def\s+\w+`),
		classPattern:     regexp.MustCompile(`^\s*class\s+\w+`),
		decoratorPattern: regexp.MustCompile(`^\s*@(\w+(?:\.\w+)*)`),
	}
}

// Language returns the language identifier
func (e *PythonExtractor) Language() string { return "python" }

// ExtractSignature returns the def/class line for the node kind
func (e *PythonExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	lines := NodeLines(node, source)
	if len(lines) == 0 {
		return ""
	}

	kind := strings.ToLower(node.Type)
	var sig string
	switch {
	case strings.Contains(kind, "function"), strings.Contains(kind, "method"), strings.Contains(kind, "lambda"):
		sig = e.findLine(lines, e.defPattern)
	case strings.Contains(kind, "class"):
		sig = e.findLine(lines, e.classPattern)
	case strings.Contains(kind, "variable"), strings.Contains(kind, "assignment"), strings.Contains(kind, "const"):
		sig = e.findAssignmentLine(lines)
	}

	if sig == "" {
		sig = FirstSignificantLine(lines)
	}
	return NormalizeSignature(sig)
}

func (e *PythonExtractor) findLine(lines []string, pattern *regexp.Regexp) string {
	for _, line := range lines {
		if pattern.MatchString(line) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

func (e *PythonExtractor) findAssignmentLine(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "@") {
			continue
		}
		if eq := indexTopLevel(trimmed, '='); eq >= 0 {
			return strings.TrimSpace(trimmed[:eq])
		}
		return trimmed
	}
	return ""
}

// ExtractParameters recovers "name: type = default" parameters, skipping
// self and cls receivers.
func (e *PythonExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	sig := e.ExtractSignature(node, source)
	group, ok := ParameterGroup(sig)
	if !ok {
		return nil
	}

	var params []types.Parameter
	for _, token := range SplitTopLevel(group) {
		if token == "self" || token == "cls" || token == "/" {
			continue
		}
		if token == "*" {
			continue // bare keyword-only separator
		}
		params = append(params, parseColonTyped(token))
	}
	return params
}

// ExtractReturnType looks for the "-> Type" annotation before the
// trailing colon.
func (e *PythonExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
	sig := e.ExtractSignature(node, source)
	arrow := strings.Index(sig, "->")
	if arrow < 0 {
		return ""
	}
	ret := strings.TrimSpace(sig[arrow+2:])
	ret = strings.TrimSuffix(ret, ":")
	ret = strings.TrimSpace(ret)
	if ret == "" || ret == "None" {
		return ""
	}
	return ret
}

// ExtractModifiers maps async and the well-known decorators to modifier
// names.
func (e *PythonExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	lines := NodeLines(node, source)
	if len(lines) == 0 {
		return nil
	}
	text := strings.Join(lines, "\n")

	var modifiers []string
	if strings.Contains(text, "async def") {
		modifiers = append(modifiers, "async")
	}
	if strings.Contains(text, "@staticmethod") {
		modifiers = append(modifiers, "static")
	}
	if strings.Contains(text, "@classmethod") {
		modifiers = append(modifiers, "classmethod")
	}
	if strings.Contains(text, "@property") {
		modifiers = append(modifiers, "property")
	}
	if strings.Contains(text, "@abstractmethod") {
		modifiers = append(modifiers, "abstract")
	}

	// Leading-underscore convention stands in for access keywords.
	if node.HasName() {
		if strings.HasPrefix(node.Name, "__") && !strings.HasSuffix(node.Name, "__") {
			modifiers = append(modifiers, "private")
		} else if strings.HasPrefix(node.Name, "_") {
			modifiers = append(modifiers, "protected")
		}
	}

	return dedupeSorted(modifiers)
}

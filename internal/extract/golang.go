package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/standardbeagle/anno/internal/types"
)

// GoExtractor implements signature extraction for Go. Go has no lexical
// access modifiers; identifier capitalization stands in for visibility.
type GoExtractor struct {
	funcPattern *regexp.Regexp
	typePattern *regexp.Regexp
	varPattern  *regexp.Regexp
}

// NewGoExtractor creates a new Go extractor
func NewGoExtractor() *GoExtractor {
	return &GoExtractor{
		funcPattern: regexp.MustCompile(`^\s*func\s+(?:\([^)]*\)\s+)?\w+`),
		typePattern: regexp.MustCompile(`^\s*type\s+\w+\s+(?:struct|interface|func|\w)`),
		varPattern:  regexp.MustCompile(`^\s*(?:var|const)\s+\w+`),
	}
}

// Language returns the language identifier
func (e *GoExtractor) Language() string { return "go" }

// ExtractSignature returns the declaration line for the node kind
func (e *GoExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	lines := NodeLines(node, source)
	if len(lines) == 0 {
		return ""
	}

	kind := strings.ToLower(node.Type)
	var sig string
	switch {
	case strings.Contains(kind, "function"), strings.Contains(kind, "method"):
		sig = e.findMatch(lines, e.funcPattern)
	case strings.Contains(kind, "struct"), strings.Contains(kind, "interface"), strings.Contains(kind, "type"):
		sig = e.findMatch(lines, e.typePattern)
	case strings.Contains(kind, "var"), strings.Contains(kind, "const"), strings.Contains(kind, "variable"):
		sig = e.findMatch(lines, e.varPattern)
		if eq := indexTopLevel(sig, '='); eq >= 0 {
			sig = strings.TrimSpace(sig[:eq])
		}
	}

	if sig == "" {
		sig = FirstSignificantLine(lines)
	}
	return NormalizeSignature(sig)
}

func (e *GoExtractor) findMatch(lines []string, pattern *regexp.Regexp) string {
	for _, line := range lines {
		if pattern.MatchString(line) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// ExtractParameters recovers "name type" parameters, expanding grouped
// declarations like "a, b int" by back-filling the shared type.
func (e *GoExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	sig := e.ExtractSignature(node, source)

	// Skip the receiver group of method declarations.
	search := sig
	if strings.HasPrefix(search, "func (") {
		if end := closingParen(search); end >= 0 {
			search = search[end+1:]
		}
	}

	group, ok := ParameterGroup(search)
	if !ok {
		return nil
	}

	params := make([]types.Parameter, 0, 4)
	for _, token := range SplitTopLevel(group) {
		params = append(params, parseNameType(token))
	}

	// Back-fill shared types: "a, b int" yields a typeless "a" followed
	// by "b int".
	for i := len(params) - 2; i >= 0; i-- {
		if params[i].Type == "" && params[i+1].Type != "" {
			params[i].Type = params[i+1].Type
		}
	}

	if len(params) == 0 {
		return nil
	}
	return params
}

// ExtractReturnType reads the result clause after the parameter group:
// ") Type {" or ") (A, B) {".
func (e *GoExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
	sig := e.ExtractSignature(node, source)
	if !strings.HasPrefix(sig, "func") {
		return ""
	}

	search := sig
	if strings.HasPrefix(search, "func (") {
		if end := closingParen(search); end >= 0 {
			search = search[end+1:]
		}
	}
	end := closingParen(search)
	if end < 0 {
		return ""
	}

	rest := strings.TrimSpace(search[end+1:])
	rest = strings.TrimSuffix(rest, "{")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return ""
	}
	return rest
}

// ExtractModifiers substitutes Go's capitalization rule: exported or
// unexported, plus receiver presence for methods.
func (e *GoExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	var modifiers []string

	name := node.Name
	if name == "" {
		sig := e.ExtractSignature(node, source)
		name = goIdentifierFrom(sig)
	}
	if name != "" {
		if unicode.IsUpper(rune(name[0])) {
			modifiers = append(modifiers, "exported")
		} else {
			modifiers = append(modifiers, "unexported")
		}
	}

	sig := e.ExtractSignature(node, source)
	if strings.HasPrefix(sig, "func (") {
		modifiers = append(modifiers, "method")
	}

	return dedupeSorted(modifiers)
}

// goIdentifierFrom pulls the declared identifier out of a func/type/var
// signature line.
func goIdentifierFrom(sig string) string {
	if strings.HasPrefix(sig, "func (") {
		if end := closingParen(sig); end >= 0 {
			sig = "func " + strings.TrimSpace(sig[end+1:])
		}
	}
	fields := strings.Fields(sig)
	if len(fields) < 2 {
		return ""
	}
	switch fields[0] {
	case "func", "type", "var", "const":
		candidate := fields[1]
		if idx := strings.IndexAny(candidate, "(<["); idx >= 0 {
			candidate = candidate[:idx]
		}
		return candidate
	}
	return ""
}

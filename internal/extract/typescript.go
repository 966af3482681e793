package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// TypeScriptExtractor implements signature extraction for TypeScript
// using line-oriented declaration heuristics over the node span.
type TypeScriptExtractor struct {
	funcPattern   *regexp.Regexp
	arrowPattern  *regexp.Regexp
	methodPattern *regexp.Regexp
	modifierSet   []string
}

// NewTypeScriptExtractor creates a new TypeScript extractor
func NewTypeScriptExtractor() *TypeScriptExtractor {
	return &TypeScriptExtractor{
		funcPattern:   regexp.MustCompile(`(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*\w*\s*(?:<[^>]*>)?\s*\(`),
		arrowPattern:  regexp.MustCompile(`(?:const|let|var)?\s*\w+\s*(?::[^=]+)?=\s*(?:async\s+)?(?:\([^)]*\)|\w+)\s*(?::[^=]+)?=>`),
		methodPattern: regexp.MustCompile(`(?:public|private|protected|static|async|override|\s)*\w+\s*(?:<[^>]*>)?\s*\([^)]*\)\s*(?::\s*[^({]+)?\s*{?`),
		modifierSet: []string{
			"abstract", "async", "default", "export", "override",
			"private", "protected", "public", "readonly", "static",
		},
	}
}

// Language returns the language identifier
func (e *TypeScriptExtractor) Language() string { return "typescript" }

// ExtractSignature returns the declaration signature for the node kind
func (e *TypeScriptExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	lines := NodeLines(node, source)
	if len(lines) == 0 {
		return ""
	}

	kind := strings.ToLower(node.Type)
	var sig string
	switch {
	case strings.Contains(kind, "constructor"):
		sig = FindDeclarationLine(lines, "constructor")
	case strings.Contains(kind, "function"), strings.Contains(kind, "method"), strings.Contains(kind, "arrow"):
		sig = e.findCallableLine(lines)
	case strings.Contains(kind, "class"):
		sig = FindDeclarationLine(lines, "class ", "export class ", "export default class ", "abstract class ", "export abstract class ")
	case strings.Contains(kind, "interface"):
		sig = FindDeclarationLine(lines, "interface ", "export interface ")
	case strings.Contains(kind, "enum"):
		sig = FindDeclarationLine(lines, "enum ", "export enum ", "const enum ", "export const enum ")
	case strings.Contains(kind, "type_alias"), kind == "type":
		sig = FindDeclarationLine(lines, "type ", "export type ")
	case strings.Contains(kind, "namespace"), strings.Contains(kind, "module"):
		sig = FindDeclarationLine(lines, "namespace ", "module ", "export namespace ", "declare module ")
	case strings.Contains(kind, "property"), strings.Contains(kind, "variable"), strings.Contains(kind, "const"):
		sig = e.findVariableLine(lines)
	}

	if sig == "" {
		sig = FirstSignificantLine(lines)
	}
	return NormalizeSignature(sig)
}

// findCallableLine locates the function, method, or arrow declaration
// line within the span.
func (e *TypeScriptExtractor) findCallableLine(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if e.funcPattern.MatchString(trimmed) || e.arrowPattern.MatchString(trimmed) {
			return trimmed
		}
	}
	// Class method forms carry no function keyword; accept any line with
	// a parameter group.
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, "(") && e.methodPattern.MatchString(trimmed) {
			return trimmed
		}
	}
	return ""
}

func (e *TypeScriptExtractor) findVariableLine(lines []string) string {
	line := FindDeclarationLine(lines,
		"const ", "let ", "var ",
		"export const ", "export let ", "export var ",
		"readonly ", "public ", "private ", "protected ", "static ")
	if line == "" {
		return ""
	}
	// Keep the declared shape, drop the initializer.
	if eq := indexTopLevel(line, '='); eq >= 0 {
		return strings.TrimSpace(line[:eq])
	}
	return line
}

// ExtractParameters recovers the parameter list using "name: type"
// declaration order.
func (e *TypeScriptExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	sig := e.ExtractSignature(node, source)
	group, ok := ParameterGroup(sig)
	if !ok {
		return nil
	}

	var params []types.Parameter
	for _, token := range SplitTopLevel(group) {
		if token == "this" || strings.HasPrefix(token, "this:") {
			continue // TypeScript this-parameter is not a real argument
		}
		params = append(params, parseColonTyped(token))
	}
	return params
}

// ExtractReturnType looks for the ": Type" annotation after the
// parameter group, or the "=> Type" form for arrow annotations.
func (e *TypeScriptExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
	sig := e.ExtractSignature(node, source)
	end := closingParen(sig)
	if end < 0 {
		return ""
	}

	rest := strings.TrimSpace(sig[end+1:])
	if !strings.HasPrefix(rest, ":") {
		return ""
	}
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	if arrow := strings.Index(rest, "=>"); arrow >= 0 {
		rest = strings.TrimSpace(rest[arrow+2:])
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), "{")
	rest = strings.TrimSpace(rest)

	if rest == "" || rest == "void" || rest == "undefined" {
		return ""
	}
	return rest
}

// ExtractModifiers scans the span for TypeScript modifier keywords.
func (e *TypeScriptExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	lines := NodeLines(node, source)
	if len(lines) == 0 {
		return nil
	}
	return ScanModifiers(strings.Join(lines, "\n"), e.modifierSet)
}

// closingParen returns the index of the parenthesis closing the first
// balanced group, or -1.
func closingParen(s string) int {
	start := strings.IndexByte(s, '(')
	if start < 0 {
		return -1
	}
	depth := 0
	var quote byte
	for i := start; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			if ch == '\\' {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"', '`':
			quote = ch
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// JavaScriptExtractor reuses the TypeScript line heuristics but drops
// type handling: JavaScript declarations carry no return annotations and
// no type-system modifiers.
type JavaScriptExtractor struct {
	ts          *TypeScriptExtractor
	modifierSet []string
}

// NewJavaScriptExtractor creates a JavaScript extractor delegating to ts
func NewJavaScriptExtractor(ts *TypeScriptExtractor) *JavaScriptExtractor {
	return &JavaScriptExtractor{
		ts:          ts,
		modifierSet: []string{"async", "default", "export", "static"},
	}
}

// Language returns the language identifier
func (e *JavaScriptExtractor) Language() string { return "javascript" }

// ExtractSignature delegates to the TypeScript line heuristics
func (e *JavaScriptExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	return e.ts.ExtractSignature(node, source)
}

// ExtractParameters parses untyped parameter tokens
func (e *JavaScriptExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	sig := e.ts.ExtractSignature(node, source)
	group, ok := ParameterGroup(sig)
	if !ok {
		return nil
	}

	var params []types.Parameter
	for _, token := range SplitTopLevel(group) {
		params = append(params, parseNameOnly(token))
	}
	return params
}

// ExtractReturnType always returns "": JavaScript has no explicit return
// annotations.
func (e *JavaScriptExtractor) ExtractReturnType(*types.SyntaxNode, string) string {
	return ""
}

// ExtractModifiers scans for the JavaScript modifier subset
func (e *JavaScriptExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	lines := NodeLines(node, source)
	if len(lines) == 0 {
		return nil
	}
	return ScanModifiers(strings.Join(lines, "\n"), e.modifierSet)
}

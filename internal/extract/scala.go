package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// ScalaExtractor extracts signatures from Scala source nodes.
type ScalaExtractor struct {
	defPattern  *regexp.Regexp
	typePattern *regexp.Regexp
	modifierSet []string
}

func NewScalaExtractor() *ScalaExtractor {
	return &ScalaExtractor{
		defPattern:  regexp.MustCompile(`^\s*(?:(?:private|protected|final|override|implicit|lazy)\s+)*def\s+[\w+\-*/=<>!&|^%]+`),
		typePattern: regexp.MustCompile(`^\s*(?:(?:private|protected|final|abstract|sealed|case|implicit)\s+)*(?:class|trait|object|enum)\s+\w+`),
		modifierSet: []string{"private", "protected", "final", "override", "implicit", "lazy", "abstract", "sealed", "case"},
	}
}

func (e *ScalaExtractor) Language() string { return "scala" }

func (e *ScalaExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	body := NodeLines(node, source)
	kind := strings.ToLower(node.Type)

	switch {
	case strings.Contains(kind, "function") || strings.Contains(kind, "method") ||
		strings.Contains(kind, "def"):
		for _, line := range body {
			if e.defPattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	case strings.Contains(kind, "class") || strings.Contains(kind, "trait") ||
		strings.Contains(kind, "object") || strings.Contains(kind, "enum"):
		for _, line := range body {
			if e.typePattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	case strings.Contains(kind, "val") || strings.Contains(kind, "var") ||
		strings.Contains(kind, "variable"):
		if line := FindDeclarationLine(body, "val ", "var ", "lazy val "); line != "" {
			return NormalizeSignature(line)
		}
	}
	return NormalizeSignature(FirstSignificantLine(body))
}

func (e *ScalaExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	sig := e.ExtractSignature(node, source)
	group, ok := ParameterGroup(sig)
	if !ok {
		return nil
	}
	var params []types.Parameter
	for _, token := range SplitTopLevel(group) {
		token = strings.TrimSpace(token)
		token = strings.TrimPrefix(token, "implicit ")
		for _, kw := range []string{"val ", "var "} {
			token = strings.TrimPrefix(token, kw)
		}
		if token == "" {
			continue
		}
		params = append(params, parseColonTyped(token))
	}
	return params
}

func (e *ScalaExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
	sig := e.ExtractSignature(node, source)
	end := closingParen(sig)
	if end < 0 {
		return ""
	}
	rest := strings.TrimSpace(sig[end+1:])
	if !strings.HasPrefix(rest, ":") {
		return ""
	}
	ret := strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	if cut := strings.IndexAny(ret, "={"); cut >= 0 {
		ret = strings.TrimSpace(ret[:cut])
	}
	if ret == "Unit" {
		return ""
	}
	return ret
}

func (e *ScalaExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	sig := e.ExtractSignature(node, source)
	return ScanModifiers(sig, e.modifierSet)
}

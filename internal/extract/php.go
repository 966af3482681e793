package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// PHPExtractor extracts signatures from PHP source nodes.
type PHPExtractor struct {
	funcPattern *regexp.Regexp
	typePattern *regexp.Regexp
	modifierSet []string
}

func NewPHPExtractor() *PHPExtractor {
	return &PHPExtractor{
		funcPattern: regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|abstract|final)\s+)*function\s+&?\w+`),
		typePattern: regexp.MustCompile(`^\s*(?:abstract\s+|final\s+)?(?:class|interface|trait|enum)\s+\w+`),
		modifierSet: []string{"public", "private", "protected", "static", "abstract", "final", "readonly"},
	}
}

func (e *PHPExtractor) Language() string { return "php" }

func (e *PHPExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	body := NodeLines(node, source)
	kind := strings.ToLower(node.Type)

	switch {
	case strings.Contains(kind, "function") || strings.Contains(kind, "method"):
		for _, line := range body {
			if e.funcPattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	case strings.Contains(kind, "class") || strings.Contains(kind, "interface") ||
		strings.Contains(kind, "trait") || strings.Contains(kind, "enum"):
		for _, line := range body {
			if e.typePattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	case strings.Contains(kind, "property") || strings.Contains(kind, "const"):
		if line := FindDeclarationLine(body, "public ", "private ", "protected ", "const ", "var "); line != "" {
			return NormalizeSignature(strings.TrimSuffix(line, ";"))
		}
	}
	return NormalizeSignature(FirstSignificantLine(body))
}

func (e *PHPExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	sig := e.ExtractSignature(node, source)
	group, ok := ParameterGroup(sig)
	if !ok {
		return nil
	}
	var params []types.Parameter
	for _, token := range SplitTopLevel(group) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		// PHP parameters read "?Type $name = default" or "$name = default".
		param := parseTypeFirst(token, "public", "private", "protected", "readonly")
		param.Name = strings.TrimPrefix(param.Name, "$")
		if strings.HasPrefix(param.Type, "?") {
			param.Type = strings.TrimPrefix(param.Type, "?")
			param.Optional = true
		}
		params = append(params, param)
	}
	return params
}

func (e *PHPExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
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
	if cut := strings.IndexAny(ret, "{;"); cut >= 0 {
		ret = strings.TrimSpace(ret[:cut])
	}
	if ret == "void" {
		return ""
	}
	return ret
}

func (e *PHPExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	sig := e.ExtractSignature(node, source)
	return ScanModifiers(sig, e.modifierSet)
}

package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// KotlinExtractor extracts signatures from Kotlin source nodes.
type KotlinExtractor struct {
	funPattern  *regexp.Regexp
	typePattern *regexp.Regexp
	modifierSet []string
}

func NewKotlinExtractor() *KotlinExtractor {
	return &KotlinExtractor{
		funPattern:  regexp.MustCompile(`^\s*(?:(?:public|private|protected|internal|open|override|abstract|final|suspend|inline|operator|infix|tailrec)\s+)*fun\s+(?:<[^>]*>\s+)?[\w.]+\s*\(`),
		typePattern: regexp.MustCompile(`^\s*(?:(?:public|private|protected|internal|open|abstract|final|sealed|data|enum|annotation|inner)\s+)*(?:class|interface|object)\s+\w+`),
		modifierSet: []string{
			"public", "private", "protected", "internal", "open", "override",
			"abstract", "final", "sealed", "data", "suspend", "inline",
			"operator", "infix", "lateinit", "const", "tailrec",
		},
	}
}

func (e *KotlinExtractor) Language() string { return "kotlin" }

func (e *KotlinExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	body := NodeLines(node, source)
	kind := strings.ToLower(node.Type)

	switch {
	case strings.Contains(kind, "function") || strings.Contains(kind, "method"):
		for _, line := range body {
			if e.funPattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	case strings.Contains(kind, "class") || strings.Contains(kind, "interface") ||
		strings.Contains(kind, "object"):
		for _, line := range body {
			if e.typePattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	case strings.Contains(kind, "property") || strings.Contains(kind, "variable"):
		if line := FindDeclarationLine(body, "val ", "var ", "const val ", "lateinit var "); line != "" {
			return NormalizeSignature(line)
		}
	}
	return NormalizeSignature(FirstSignificantLine(body))
}

func (e *KotlinExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
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
		// Constructor properties read "val name: Type"; drop the keyword.
		for _, kw := range []string{"val ", "var ", "vararg ", "crossinline ", "noinline "} {
			token = strings.TrimPrefix(token, kw)
		}
		params = append(params, parseColonTyped(token))
	}
	return params
}

func (e *KotlinExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
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
	if cut := strings.IndexAny(ret, "{="); cut >= 0 {
		ret = strings.TrimSpace(ret[:cut])
	}
	if ret == "Unit" {
		return ""
	}
	return ret
}

func (e *KotlinExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	sig := e.ExtractSignature(node, source)
	return ScanModifiers(sig, e.modifierSet)
}

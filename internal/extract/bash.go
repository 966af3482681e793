package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// BashExtractor extracts signatures from shell script nodes.
type BashExtractor struct {
	funcPattern *regexp.Regexp
	varPattern  *regexp.Regexp
}

func NewBashExtractor() *BashExtractor {
	return &BashExtractor{
		funcPattern: regexp.MustCompile(`^\s*(?:function\s+)?[\w.-]+\s*\(\)\s*\{?|^\s*function\s+[\w.-]+`),
		varPattern:  regexp.MustCompile(`^\s*(?:export\s+|readonly\s+|local\s+|declare\s+(?:-\w+\s+)?)?\w+=`),
	}
}

func (e *BashExtractor) Language() string { return "bash" }

func (e *BashExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	body := NodeLines(node, source)
	kind := strings.ToLower(node.Type)

	if strings.Contains(kind, "function") {
		for _, line := range body {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			if e.funcPattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	}
	if strings.Contains(kind, "variable") || strings.Contains(kind, "assignment") {
		for _, line := range body {
			if e.varPattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	}
	return NormalizeSignature(FirstSignificantLine(body))
}

// ExtractParameters reports positional parameters referenced in the body.
// Shell functions have no declared parameter list, so usage is the only
// signal available.
func (e *BashExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	body := NodeLines(node, source)
	seen := map[string]bool{}
	var params []types.Parameter
	positional := regexp.MustCompile(`\$\{?([1-9])\}?`)
	for _, line := range body {
		for _, m := range positional.FindAllStringSubmatch(line, -1) {
			name := "$" + m[1]
			if !seen[name] {
				seen[name] = true
				params = append(params, types.Parameter{Name: name})
			}
		}
	}
	return params
}

func (e *BashExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
	return ""
}

func (e *BashExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	sig := e.ExtractSignature(node, source)
	lower := " " + strings.ToLower(sig) + " "
	var mods []string
	for _, word := range []string{"declare", "export", "local", "readonly"} {
		if containsWord(lower, word) {
			mods = append(mods, word)
		}
	}
	return mods
}

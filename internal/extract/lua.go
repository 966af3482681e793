package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// LuaExtractor extracts signatures from Lua source nodes.
type LuaExtractor struct {
	funcPattern *regexp.Regexp
}

func NewLuaExtractor() *LuaExtractor {
	return &LuaExtractor{
		funcPattern: regexp.MustCompile(`^\s*(?:local\s+)?function\s+[\w.:]*|^\s*(?:local\s+)?[\w.]+\s*=\s*function\s*\(`),
	}
}

func (e *LuaExtractor) Language() string { return "lua" }

func (e *LuaExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	body := NodeLines(node, source)
	kind := strings.ToLower(node.Type)

	if strings.Contains(kind, "function") || strings.Contains(kind, "method") {
		for _, line := range body {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			if e.funcPattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	}
	if strings.Contains(kind, "variable") || strings.Contains(kind, "local") {
		if line := FindDeclarationLine(body, "local "); line != "" {
			return NormalizeSignature(line)
		}
	}
	return NormalizeSignature(FirstSignificantLine(body))
}

func (e *LuaExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	sig := e.ExtractSignature(node, source)
	group, ok := ParameterGroup(sig)
	if !ok {
		return nil
	}
	var params []types.Parameter
	for _, token := range SplitTopLevel(group) {
		token = strings.TrimSpace(token)
		if token == "" || token == "self" {
			continue
		}
		params = append(params, types.Parameter{Name: token})
	}
	return params
}

func (e *LuaExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
	return ""
}

func (e *LuaExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	sig := e.ExtractSignature(node, source)
	var mods []string
	if strings.HasPrefix(strings.TrimSpace(sig), "local ") {
		mods = append(mods, "local")
	}
	if strings.Contains(sig, ":") && strings.Contains(sig, "function ") {
		mods = append(mods, "method")
	}
	return mods
}

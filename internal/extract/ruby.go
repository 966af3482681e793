package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// RubyExtractor extracts signatures from Ruby source nodes.
type RubyExtractor struct {
	defPattern   *regexp.Regexp
	classPattern *regexp.Regexp
}

func NewRubyExtractor() *RubyExtractor {
	return &RubyExtractor{
		defPattern:   regexp.MustCompile(`^\s*def\s+(?:self\.)?[\w?!=\[\]<>+\-*/%]+`),
		classPattern: regexp.MustCompile(`^\s*(?:class|module)\s+\w+`),
	}
}

func (e *RubyExtractor) Language() string { return "ruby" }

func (e *RubyExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	body := NodeLines(node, source)
	kind := strings.ToLower(node.Type)

	switch {
	case strings.Contains(kind, "method") || strings.Contains(kind, "function") ||
		strings.Contains(kind, "def"):
		for _, line := range body {
			if e.defPattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	case strings.Contains(kind, "class") || strings.Contains(kind, "module"):
		for _, line := range body {
			if e.classPattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	}
	return NormalizeSignature(FirstSignificantLine(body))
}

func (e *RubyExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	sig := e.ExtractSignature(node, source)
	group, ok := ParameterGroup(sig)
	if !ok {
		// Ruby allows parameters without parentheses: "def add a, b".
		if idx := strings.Index(sig, "def "); idx >= 0 {
			rest := strings.TrimSpace(sig[idx+4:])
			if sp := strings.IndexByte(rest, ' '); sp > 0 {
				group = rest[sp+1:]
			}
		}
		if group == "" {
			return nil
		}
	}
	var params []types.Parameter
	for _, token := range SplitTopLevel(group) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		param := parseNameOnly(token)
		// Splat and block arguments keep their sigil out of the name.
		param.Name = strings.TrimLeft(param.Name, "*&")
		params = append(params, param)
	}
	return params
}

func (e *RubyExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
	// Ruby methods carry no return type annotation.
	return ""
}

func (e *RubyExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	body := NodeLines(node, source)
	var mods []string
	sig := e.ExtractSignature(node, source)
	if strings.Contains(sig, "def self.") {
		mods = append(mods, "class-method")
	}
	for _, line := range body {
		trimmed := strings.TrimSpace(line)
		if trimmed == "private" || strings.HasPrefix(trimmed, "private ") {
			mods = append(mods, "private")
			break
		}
		if trimmed == "protected" || strings.HasPrefix(trimmed, "protected ") {
			mods = append(mods, "protected")
			break
		}
	}
	return dedupeSorted(mods)
}

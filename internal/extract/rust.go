package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// RustExtractor extracts signatures from Rust source nodes.
type RustExtractor struct {
	fnPattern     *regexp.Regexp
	typePattern   *regexp.Regexp
	implPattern   *regexp.Regexp
	attrPattern   *regexp.Regexp
	modifierWords []string
}

func NewRustExtractor() *RustExtractor {
	return &RustExtractor{
		fnPattern:     regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:const\s+)?(?:async\s+)?(?:unsafe\s+)?(?:extern\s+"[^"]*"\s+)?fn\s+\w+`),
		typePattern:   regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:struct|enum|trait|union|type)\s+\w+`),
		implPattern:   regexp.MustCompile(`^\s*impl\b`),
		attrPattern:   regexp.MustCompile(`^\s*#\[`),
		modifierWords: []string{"pub", "async", "unsafe", "const", "static", "extern"},
	}
}

func (e *RustExtractor) Language() string { return "rust" }

func (e *RustExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	body := NodeLines(node, source)
	kind := strings.ToLower(node.Type)

	switch {
	case strings.Contains(kind, "function") || strings.Contains(kind, "method"):
		if line := e.findMatch(body, e.fnPattern); line != "" {
			return NormalizeSignature(line)
		}
	case strings.Contains(kind, "impl"):
		if line := e.findMatch(body, e.implPattern); line != "" {
			return NormalizeSignature(line)
		}
	case strings.Contains(kind, "struct") || strings.Contains(kind, "enum") ||
		strings.Contains(kind, "trait") || strings.Contains(kind, "union") ||
		strings.Contains(kind, "type"):
		if line := e.findMatch(body, e.typePattern); line != "" {
			return NormalizeSignature(line)
		}
	case strings.Contains(kind, "const") || strings.Contains(kind, "static"):
		if line := FindDeclarationLine(body, "const ", "static ", "pub const ", "pub static "); line != "" {
			return NormalizeSignature(line)
		}
	case strings.Contains(kind, "macro"):
		if line := FindDeclarationLine(body, "macro_rules!"); line != "" {
			return NormalizeSignature(line)
		}
	}
	return NormalizeSignature(FirstSignificantLine(body))
}

// findMatch returns the first line matching pattern, skipping attribute lines.
func (e *RustExtractor) findMatch(body []string, pattern *regexp.Regexp) string {
	for _, line := range body {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || e.attrPattern.MatchString(trimmed) || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if pattern.MatchString(line) {
			return line
		}
	}
	return ""
}

func (e *RustExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	sig := e.ExtractSignature(node, source)
	group, ok := ParameterGroup(sig)
	if !ok {
		return nil
	}
	var params []types.Parameter
	for _, token := range SplitTopLevel(group) {
		token = strings.TrimSpace(token)
		if token == "" || token == "self" || token == "&self" || token == "&mut self" ||
			strings.HasPrefix(token, "self:") {
			continue
		}
		params = append(params, parseColonTyped(token))
	}
	return params
}

func (e *RustExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
	sig := e.ExtractSignature(node, source)
	idx := strings.Index(sig, "->")
	if idx < 0 {
		return ""
	}
	ret := strings.TrimSpace(sig[idx+2:])
	if cut := strings.IndexAny(ret, "{;"); cut >= 0 {
		ret = strings.TrimSpace(ret[:cut])
	}
	if cut := strings.Index(ret, " where "); cut >= 0 {
		ret = strings.TrimSpace(ret[:cut])
	}
	if ret == "()" {
		return ""
	}
	return ret
}

func (e *RustExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	sig := e.ExtractSignature(node, source)
	mods := ScanModifiers(sig, e.modifierWords)
	// pub(crate) and friends do not match the bare word scan.
	if len(mods) == 0 && strings.HasPrefix(strings.TrimSpace(sig), "pub(") {
		mods = []string{"pub"}
	}
	return mods
}

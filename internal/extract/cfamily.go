package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// CFamilyExtractor covers C and C++ nodes. The two languages share enough
// declaration shape that one strategy handles both; C++ specifics (templates,
// access specifiers, virtual/override) degrade gracefully on plain C input.
type CFamilyExtractor struct {
	funcPattern   *regexp.Regexp
	typePattern   *regexp.Regexp
	structPattern *regexp.Regexp
	modifierSet   []string
}

func NewCFamilyExtractor() *CFamilyExtractor {
	return &CFamilyExtractor{
		funcPattern:   regexp.MustCompile(`^\s*(?:[\w:<>,*&~\[\]]+\s+)+[\w:~]+\s*\(`),
		typePattern:   regexp.MustCompile(`^\s*(?:template\s*<[^>]*>\s*)?(?:class|struct|union|enum)\s+\w+`),
		structPattern: regexp.MustCompile(`^\s*typedef\b`),
		modifierSet: []string{
			"static", "inline", "extern", "const", "constexpr", "virtual",
			"override", "final", "explicit", "friend", "volatile", "noexcept",
		},
	}
}

func (e *CFamilyExtractor) Language() string { return "c" }

func (e *CFamilyExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	body := NodeLines(node, source)
	kind := strings.ToLower(node.Type)

	switch {
	case strings.Contains(kind, "function") || strings.Contains(kind, "method") ||
		strings.Contains(kind, "constructor") || strings.Contains(kind, "destructor"):
		if line := e.findFunctionLine(body); line != "" {
			return NormalizeSignature(line)
		}
	case strings.Contains(kind, "class") || strings.Contains(kind, "struct") ||
		strings.Contains(kind, "union") || strings.Contains(kind, "enum"):
		for _, line := range body {
			if e.typePattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	case strings.Contains(kind, "typedef") || strings.Contains(kind, "alias"):
		for _, line := range body {
			if e.structPattern.MatchString(line) || strings.Contains(line, "using ") {
				return NormalizeSignature(line)
			}
		}
	case strings.Contains(kind, "macro") || strings.Contains(kind, "preproc"):
		if line := FindDeclarationLine(body, "#define"); line != "" {
			return NormalizeSignature(line)
		}
	}
	return NormalizeSignature(FirstSignificantLine(body))
}

func (e *CFamilyExtractor) findFunctionLine(body []string) string {
	for _, line := range body {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") ||
			strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "*") {
			continue
		}
		if e.funcPattern.MatchString(line) {
			return line
		}
	}
	return ""
}

func (e *CFamilyExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	sig := e.ExtractSignature(node, source)
	group, ok := ParameterGroup(sig)
	if !ok {
		return nil
	}
	var params []types.Parameter
	for _, token := range SplitTopLevel(group) {
		token = strings.TrimSpace(token)
		if token == "" || token == "void" {
			continue
		}
		params = append(params, parseTypeFirst(token, "const", "struct", "enum", "unsigned", "signed", "register", "volatile"))
	}
	return params
}

func (e *CFamilyExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
	sig := e.ExtractSignature(node, source)
	open := strings.Index(sig, "(")
	if open < 0 {
		return ""
	}
	head := strings.TrimSpace(sig[:open])
	fields := strings.Fields(head)
	if len(fields) < 2 {
		// Constructor or destructor; no return type.
		return ""
	}
	// Everything before the function name is the return type, minus
	// storage-class modifiers.
	ret := make([]string, 0, len(fields)-1)
	keywords := " " + strings.Join(e.modifierSet, " ") + " "
	for _, f := range fields[:len(fields)-1] {
		if containsWord(keywords, strings.ToLower(f)) {
			continue
		}
		ret = append(ret, f)
	}
	joined := strings.Join(ret, " ")
	if joined == "void" {
		return ""
	}
	return joined
}

func (e *CFamilyExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	sig := e.ExtractSignature(node, source)
	return ScanModifiers(sig, e.modifierSet)
}

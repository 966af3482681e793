package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// DartExtractor extracts signatures from Dart source nodes.
type DartExtractor struct {
	funcPattern *regexp.Regexp
	typePattern *regexp.Regexp
	modifierSet []string
}

func NewDartExtractor() *DartExtractor {
	return &DartExtractor{
		funcPattern: regexp.MustCompile(`^\s*(?:static\s+)?(?:[\w<>,?\s]+\s+)?[\w]+\s*\([^;]*$|^\s*(?:static\s+)?(?:[\w<>,?\s]+\s+)?[\w]+\s*\(.*\)\s*(?:async\s*)?(?:=>|\{)`),
		typePattern: regexp.MustCompile(`^\s*(?:abstract\s+|base\s+|final\s+|sealed\s+)?(?:class|mixin|enum|extension)\s+\w+`),
		modifierSet: []string{"static", "abstract", "final", "const", "late", "async", "external", "sealed", "base"},
	}
}

func (e *DartExtractor) Language() string { return "dart" }

func (e *DartExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	body := NodeLines(node, source)
	kind := strings.ToLower(node.Type)

	switch {
	case strings.Contains(kind, "function") || strings.Contains(kind, "method") ||
		strings.Contains(kind, "constructor"):
		for _, line := range body {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "@") {
				continue
			}
			if strings.Contains(trimmed, "(") {
				return NormalizeSignature(line)
			}
		}
	case strings.Contains(kind, "class") || strings.Contains(kind, "mixin") ||
		strings.Contains(kind, "enum") || strings.Contains(kind, "extension"):
		for _, line := range body {
			if e.typePattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	case strings.Contains(kind, "variable") || strings.Contains(kind, "field"):
		if line := FindDeclarationLine(body, "final ", "const ", "var ", "late ", "static "); line != "" {
			return NormalizeSignature(strings.TrimSuffix(line, ";"))
		}
	}
	return NormalizeSignature(FirstSignificantLine(body))
}

func (e *DartExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
	sig := e.ExtractSignature(node, source)
	group, ok := ParameterGroup(sig)
	if !ok {
		return nil
	}
	var params []types.Parameter
	for _, token := range SplitTopLevel(group) {
		token = strings.TrimSpace(token)
		// Optional and named groups are wrapped in [] or {}.
		token = strings.Trim(token, "[]{}")
		token = strings.TrimSpace(strings.TrimPrefix(token, "required "))
		if token == "" {
			continue
		}
		if strings.HasPrefix(token, "this.") || strings.HasPrefix(token, "super.") {
			name := token[strings.Index(token, ".")+1:]
			if eq := strings.Index(name, "="); eq >= 0 {
				params = append(params, types.Parameter{
					Name:         strings.TrimSpace(name[:eq]),
					DefaultValue: strings.TrimSpace(name[eq+1:]),
					Optional:     true,
				})
			} else {
				params = append(params, types.Parameter{Name: strings.TrimSpace(name)})
			}
			continue
		}
		params = append(params, parseTypeFirst(token, "final", "covariant"))
	}
	return params
}

func (e *DartExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
	sig := e.ExtractSignature(node, source)
	open := strings.Index(sig, "(")
	if open < 0 {
		return ""
	}
	head := strings.TrimSpace(sig[:open])
	fields := strings.Fields(head)
	if len(fields) < 2 {
		return ""
	}
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

func (e *DartExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	sig := e.ExtractSignature(node, source)
	mods := ScanModifiers(sig, e.modifierSet)
	name := node.Name
	if name != "" && strings.HasPrefix(name, "_") {
		mods = append(mods, "private")
	}
	return dedupeSorted(mods)
}

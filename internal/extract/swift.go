package extract

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// SwiftExtractor extracts signatures from Swift source nodes.
type SwiftExtractor struct {
	funcPattern *regexp.Regexp
	typePattern *regexp.Regexp
	modifierSet []string
}

func NewSwiftExtractor() *SwiftExtractor {
	return &SwiftExtractor{
		funcPattern: regexp.MustCompile(`^\s*(?:(?:public|private|fileprivate|internal|open|static|class|override|final|mutating)\s+)*func\s+[\w<>]+\s*\(`),
		typePattern: regexp.MustCompile(`^\s*(?:(?:public|private|fileprivate|internal|open|final|indirect)\s+)*(?:class|struct|enum|protocol|extension|actor)\s+\w+`),
		modifierSet: []string{
			"public", "private", "fileprivate", "internal", "open", "static",
			"override", "final", "mutating", "async", "throws", "lazy", "weak",
		},
	}
}

func (e *SwiftExtractor) Language() string { return "swift" }

func (e *SwiftExtractor) ExtractSignature(node *types.SyntaxNode, source string) string {
	body := NodeLines(node, source)
	kind := strings.ToLower(node.Type)

	switch {
	case strings.Contains(kind, "function") || strings.Contains(kind, "method") ||
		strings.Contains(kind, "initializer"):
		for _, line := range body {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "@") {
				continue
			}
			if e.funcPattern.MatchString(line) || strings.HasPrefix(trimmed, "init(") ||
				strings.Contains(trimmed, " init(") {
				return NormalizeSignature(line)
			}
		}
	case strings.Contains(kind, "class") || strings.Contains(kind, "struct") ||
		strings.Contains(kind, "enum") || strings.Contains(kind, "protocol") ||
		strings.Contains(kind, "extension") || strings.Contains(kind, "actor"):
		for _, line := range body {
			if e.typePattern.MatchString(line) {
				return NormalizeSignature(line)
			}
		}
	case strings.Contains(kind, "property") || strings.Contains(kind, "variable"):
		if line := FindDeclarationLine(body, "let ", "var ", "public var ", "private var ", "static let "); line != "" {
			return NormalizeSignature(line)
		}
	}
	return NormalizeSignature(FirstSignificantLine(body))
}

func (e *SwiftExtractor) ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter {
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
		// Swift parameters read "label name: Type"; the internal name is
		// the token right before the colon.
		param := parseColonTyped(token)
		if fields := strings.Fields(param.Name); len(fields) > 1 {
			if fields[0] == "_" {
				param.Name = fields[len(fields)-1]
			} else {
				param.Name = fields[0]
			}
		}
		params = append(params, param)
	}
	return params
}

func (e *SwiftExtractor) ExtractReturnType(node *types.SyntaxNode, source string) string {
	sig := e.ExtractSignature(node, source)
	idx := strings.Index(sig, "->")
	if idx < 0 {
		return ""
	}
	ret := strings.TrimSpace(sig[idx+2:])
	if cut := strings.IndexAny(ret, "{"); cut >= 0 {
		ret = strings.TrimSpace(ret[:cut])
	}
	if ret == "Void" || ret == "()" {
		return ""
	}
	return ret
}

func (e *SwiftExtractor) ExtractModifiers(node *types.SyntaxNode, source string) []string {
	sig := e.ExtractSignature(node, source)
	return ScanModifiers(sig, e.modifierSet)
}

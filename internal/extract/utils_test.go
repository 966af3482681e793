package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/anno/internal/types"
)

// testNode builds a node spanning the given 1-based line range.
func testNode(kind, name string, startLine, endLine int, language string) *types.SyntaxNode {
	return &types.SyntaxNode{
		Type:     kind,
		Name:     name,
		Language: language,
		Start:    types.Position{Line: startLine, Column: 0},
		End:      types.Position{Line: endLine, Column: 0},
	}
}

func TestNodeLines_SpanSelection(t *testing.T) {
	source := "a\nb\nc\nd"

	node := testNode("function", "f", 2, 3, "go")
	assert.Equal(t, []string{"b", "c"}, NodeLines(node, source))
}

func TestNodeLines_UnknownEndExtendsToEOF(t *testing.T) {
	source := "a\nb\nc"
	node := testNode("function", "f", 2, 0, "go")

	assert.Equal(t, []string{"b", "c"}, NodeLines(node, source))
}

func TestNodeLines_UnusableSpans(t *testing.T) {
	source := "a\nb"

	assert.Nil(t, NodeLines(nil, source))
	assert.Nil(t, NodeLines(testNode("function", "f", 0, 0, "go"), source), "unknown start")
	assert.Nil(t, NodeLines(testNode("function", "f", 10, 12, "go"), source), "start beyond EOF")
	assert.Nil(t, NodeLines(testNode("function", "f", 1, 1, "go"), ""), "empty source")
}

func TestNodeLines_EndBeforeStart(t *testing.T) {
	source := "a\nb\nc"
	node := testNode("function", "f", 2, 1, "go")

	// Inverted spans degrade to the single start line.
	assert.Equal(t, []string{"b"}, NodeLines(node, source))
}

func TestFirstSignificantLine(t *testing.T) {
	lines := []string{
		"",
		"// leading comment",
		"# shell comment",
		"/* block */",
		"  func main() {",
	}
	assert.Equal(t, "func main() {", FirstSignificantLine(lines))
	assert.Equal(t, "", FirstSignificantLine([]string{"", "// only comments"}))
}

func TestNormalizeSignature(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  func   foo()   {", "func foo()"},
		{"def f():", "def f()"},
		{"int max(int a, int b);", "int max(int a, int b)"},
		{"plain line", "plain line"},
		{"", ""},
	}
	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeSignature(tc.input))
		})
	}
}

func TestParameterGroup_Balanced(t *testing.T) {
	group, ok := ParameterGroup("function outer(x = fn(a, b), y) {")
	assert.True(t, ok)
	assert.Equal(t, "x = fn(a, b), y", group)
}

func TestParameterGroup_GenericsAndStrings(t *testing.T) {
	group, ok := ParameterGroup(`f(m: Map<K, V>, s = ")quoted(")`)
	assert.True(t, ok)
	assert.Equal(t, `m: Map<K, V>, s = ")quoted("`, group)
}

func TestParameterGroup_Unbalanced(t *testing.T) {
	_, ok := ParameterGroup("function broken(a, b")
	assert.False(t, ok)

	_, ok = ParameterGroup("no parens here")
	assert.False(t, ok)
}

func TestSplitTopLevel(t *testing.T) {
	tokens := SplitTopLevel("a, b<c, d>, e(f, g), 'h, i'")
	assert.Equal(t, []string{"a", "b<c, d>", "e(f, g)", "'h, i'"}, tokens)
}

func TestSplitTopLevel_DropsEmptyTokens(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitTopLevel("a, , b,"))
	assert.Nil(t, SplitTopLevel(""))
}

func TestScanModifiers_SortedDedup(t *testing.T) {
	mods := ScanModifiers("public static final static int x", []string{"public", "static", "final"})
	assert.Equal(t, []string{"final", "public", "static"}, mods)
}

func TestScanModifiers_WordBoundaries(t *testing.T) {
	// "staticky" must not count as "static".
	assert.Nil(t, ScanModifiers("staticky method", []string{"static"}))
	assert.Nil(t, ScanModifiers("", []string{"static"}))
}

func TestFallbackSignature(t *testing.T) {
	fn := testNode("function", "foo", 1, 1, "go")
	assert.Equal(t, "foo()", FallbackSignature(fn))

	class := testNode("class", "Widget", 1, 1, "python")
	assert.Equal(t, "Widget", FallbackSignature(class))

	assert.Equal(t, "unknown", FallbackSignature(&types.SyntaxNode{}))
}

func TestFallbackName(t *testing.T) {
	assert.Equal(t, "foo", FallbackName(testNode("function", "foo", 1, 1, "go")))
	assert.Equal(t, "class", FallbackName(&types.SyntaxNode{Type: "class"}))
	assert.Equal(t, "unknown", FallbackName(&types.SyntaxNode{}))
	assert.Equal(t, "unknown", FallbackName(nil))
}

func TestIsFunctionKind(t *testing.T) {
	for _, kind := range []string{"function_declaration", "method_definition", "constructor", "lambda", "arrow_function"} {
		assert.True(t, IsFunctionKind(kind), kind)
	}
	for _, kind := range []string{"class_declaration", "variable", "interface", ""} {
		assert.False(t, IsFunctionKind(kind), kind)
	}
}

func TestParseColonTyped(t *testing.T) {
	p := parseColonTyped("times: number = 1")
	assert.Equal(t, types.Parameter{Name: "times", Type: "number", DefaultValue: "1", Optional: true}, p)

	p = parseColonTyped("label?")
	assert.Equal(t, types.Parameter{Name: "label", Optional: true}, p)

	p = parseColonTyped("...rest: string[]")
	assert.Equal(t, "rest", p.Name)
	assert.Equal(t, "string[]", p.Type)
}

func TestParseTypeFirst(t *testing.T) {
	p := parseTypeFirst("final int count", "final")
	assert.Equal(t, types.Parameter{Name: "count", Type: "int"}, p)

	p = parseTypeFirst("char *buf")
	assert.Equal(t, "buf", p.Name)
	assert.Equal(t, "char", p.Type)
}

func TestParseNameOnly_Defaults(t *testing.T) {
	p := parseNameOnly("greeting = 'hi'")
	assert.Equal(t, types.Parameter{Name: "greeting", DefaultValue: "'hi'", Optional: true}, p)
}

func TestIndexTopLevel(t *testing.T) {
	assert.Equal(t, -1, indexTopLevel("Map<string, int>", ','))
	assert.Equal(t, strings.Index("a = b", "="), indexTopLevel("a = b", '='))
	assert.Equal(t, -1, indexTopLevel(`"a=b"`, '='))
}

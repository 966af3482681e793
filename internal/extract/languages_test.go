package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/anno/internal/types"
)

func TestRegistry_Languages(t *testing.T) {
	r := NewRegistry()
	languages := r.Languages()

	expected := []string{
		"bash", "c", "cpp", "csharp", "dart", "go", "java", "javascript",
		"kotlin", "lua", "php", "python", "ruby", "rust", "scala", "swift",
		"typescript",
	}
	assert.Equal(t, expected, languages)

	_, ok := r.Lookup("typescript")
	assert.True(t, ok)
	_, ok = r.Lookup("cobol")
	assert.False(t, ok)
}

func TestJava_StaticMethod(t *testing.T) {
	e := NewJavaExtractor()
	source := "public static int max(int a, int b) {\n" +
		"    return a > b ? a : b;\n" +
		"}"
	node := testNode("method_declaration", "max", 1, 3, "java")

	assert.Equal(t, "public static int max(int a, int b)", e.ExtractSignature(node, source))

	params := e.ExtractParameters(node, source)
	require.Len(t, params, 2)
	assert.Equal(t, types.Parameter{Name: "a", Type: "int"}, params[0])
	assert.Equal(t, types.Parameter{Name: "b", Type: "int"}, params[1])

	assert.Equal(t, "int", e.ExtractReturnType(node, source))
	assert.Equal(t, []string{"public", "static"}, e.ExtractModifiers(node, source))
}

func TestJava_VoidAndConstructor(t *testing.T) {
	e := NewJavaExtractor()

	source := "public void reset() {\n}"
	node := testNode("method_declaration", "reset", 1, 2, "java")
	assert.Equal(t, "", e.ExtractReturnType(node, source))

	source = "public Widget(String label) {\n}"
	node = testNode("constructor_declaration", "Widget", 1, 2, "java")
	assert.Equal(t, "", e.ExtractReturnType(node, source))
}

func TestJava_AnnotationLinesSkipped(t *testing.T) {
	e := NewJavaExtractor()
	source := "@Override\npublic String toString() {\n}"
	node := testNode("method_declaration", "toString", 1, 3, "java")

	assert.Equal(t, "public String toString()", e.ExtractSignature(node, source))
}

func TestRust_AsyncFunction(t *testing.T) {
	e := NewRustExtractor()
	source := "pub async fn fetch(&self, url: &str) -> Result<Response, Error> {\n" +
		"    self.client.get(url).await\n" +
		"}"
	node := testNode("function_item", "fetch", 1, 3, "rust")

	assert.Equal(t, "pub async fn fetch(&self, url: &str) -> Result<Response, Error>", e.ExtractSignature(node, source))

	params := e.ExtractParameters(node, source)
	require.Len(t, params, 1, "&self receiver is skipped")
	assert.Equal(t, types.Parameter{Name: "url", Type: "&str"}, params[0])

	assert.Equal(t, "Result<Response, Error>", e.ExtractReturnType(node, source))
	assert.Equal(t, []string{"async", "pub"}, e.ExtractModifiers(node, source))
}

func TestRust_UnitReturnIsEmpty(t *testing.T) {
	e := NewRustExtractor()
	source := "fn shutdown() -> () {\n}"
	node := testNode("function_item", "shutdown", 1, 2, "rust")

	assert.Equal(t, "", e.ExtractReturnType(node, source))
}

func TestRust_AttributesSkipped(t *testing.T) {
	e := NewRustExtractor()
	source := "#[derive(Debug)]\npub struct Config {\n}"
	node := testNode("struct_item", "Config", 1, 3, "rust")

	assert.Equal(t, "pub struct Config", e.ExtractSignature(node, source))
}

func TestRust_PubCrate(t *testing.T) {
	e := NewRustExtractor()
	source := "pub(crate) fn internal() {\n}"
	node := testNode("function_item", "internal", 1, 2, "rust")

	assert.Equal(t, []string{"pub"}, e.ExtractModifiers(node, source))
}

func TestRuby_ClassMethod(t *testing.T) {
	e := NewRubyExtractor()
	source := "def self.create(name)\n  new(name)\nend"
	node := testNode("method", "create", 1, 3, "ruby")

	assert.Equal(t, "def self.create(name)", e.ExtractSignature(node, source))
	assert.Equal(t, []string{"class-method"}, e.ExtractModifiers(node, source))

	params := e.ExtractParameters(node, source)
	require.Len(t, params, 1)
	assert.Equal(t, "name", params[0].Name)
}

func TestRuby_ParenlessParameters(t *testing.T) {
	e := NewRubyExtractor()
	source := "def add a, b\n  a + b\nend"
	node := testNode("method", "add", 1, 3, "ruby")

	params := e.ExtractParameters(node, source)
	require.Len(t, params, 2)
	assert.Equal(t, "a", params[0].Name)
	assert.Equal(t, "b", params[1].Name)
}

func TestRuby_KeywordArgument(t *testing.T) {
	e := NewRubyExtractor()
	source := "def configure(timeout: 30, &block)\nend"
	node := testNode("method", "configure", 1, 2, "ruby")

	params := e.ExtractParameters(node, source)
	require.Len(t, params, 2)
	assert.Equal(t, types.Parameter{Name: "timeout", DefaultValue: "30", Optional: true}, params[0])
	assert.Equal(t, "block", params[1].Name, "block sigil is stripped")

	assert.Equal(t, "", e.ExtractReturnType(node, source))
}

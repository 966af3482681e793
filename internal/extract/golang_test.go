package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/anno/internal/types"
)

func TestGo_MethodWithReceiver(t *testing.T) {
	e := NewGoExtractor()
	source := "func (s *Store) Get(ctx context.Context, key string) (string, error) {\n" +
		"\treturn s.data[key], nil\n" +
		"}"
	node := testNode("method_declaration", "Get", 1, 3, "go")

	sig := e.ExtractSignature(node, source)
	assert.Equal(t, "func (s *Store) Get(ctx context.Context, key string) (string, error)", sig)

	params := e.ExtractParameters(node, source)
	require.Len(t, params, 2, "receiver group is not a parameter")
	assert.Equal(t, types.Parameter{Name: "ctx", Type: "context.Context"}, params[0])
	assert.Equal(t, types.Parameter{Name: "key", Type: "string"}, params[1])

	assert.Equal(t, "(string, error)", e.ExtractReturnType(node, source))
	assert.Equal(t, []string{"exported", "method"}, e.ExtractModifiers(node, source))
}

func TestGo_GroupedParameters(t *testing.T) {
	e := NewGoExtractor()
	source := "func add(a, b int) int {\n\treturn a + b\n}"
	node := testNode("function_declaration", "add", 1, 3, "go")

	params := e.ExtractParameters(node, source)
	require.Len(t, params, 2)
	assert.Equal(t, types.Parameter{Name: "a", Type: "int"}, params[0], "grouped type is back-filled")
	assert.Equal(t, types.Parameter{Name: "b", Type: "int"}, params[1])

	assert.Equal(t, "int", e.ExtractReturnType(node, source))
	assert.Equal(t, []string{"unexported"}, e.ExtractModifiers(node, source))
}

func TestGo_VariadicParameter(t *testing.T) {
	e := NewGoExtractor()
	source := "func join(parts ...string) string {\n}"
	node := testNode("function_declaration", "join", 1, 2, "go")

	params := e.ExtractParameters(node, source)
	require.Len(t, params, 1)
	assert.Equal(t, "parts", params[0].Name)
	assert.Equal(t, "...string", params[0].Type)
}

func TestGo_TypeDeclaration(t *testing.T) {
	e := NewGoExtractor()
	source := "type Store struct {\n\tdata map[string]string\n}"
	node := testNode("type_declaration", "Store", 1, 3, "go")

	assert.Equal(t, "type Store struct", e.ExtractSignature(node, source))
	assert.Equal(t, "", e.ExtractReturnType(node, source), "types have no result clause")
}

func TestGo_VarDropsInitializer(t *testing.T) {
	e := NewGoExtractor()
	source := "var count = 0"
	node := testNode("variable_declaration", "count", 1, 1, "go")

	assert.Equal(t, "var count", e.ExtractSignature(node, source))
}

func TestGo_IdentifierFromSignature(t *testing.T) {
	// With no node name the declared identifier decides visibility.
	e := NewGoExtractor()
	source := "func (s *Store) Close() error {\n}"
	node := testNode("method_declaration", "", 1, 2, "go")

	assert.Equal(t, []string{"exported", "method"}, e.ExtractModifiers(node, source))
}

func TestGoIdentifierFrom(t *testing.T) {
	tests := []struct {
		sig      string
		expected string
	}{
		{"func add(a, b int) int", "add"},
		{"func (s *Store) Get(key string) string", "Get"},
		{"type Store struct", "Store"},
		{"var count int", "count"},
		{"const limit = 10", "limit"},
		{"func Map[K comparable](m map[K]bool)", "Map"},
		{"not a declaration", ""},
	}
	for _, tc := range tests {
		t.Run(tc.sig, func(t *testing.T) {
			assert.Equal(t, tc.expected, goIdentifierFrom(tc.sig))
		})
	}
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/anno/internal/types"
)

func TestPython_AsyncMethod(t *testing.T) {
	e := NewPythonExtractor()
	source := "async def fetch(self, url: str, timeout: int = 5) -> Response:\n" +
		"    return await client.get(url, timeout=timeout)"
	node := testNode("function_definition", "fetch", 1, 2, "python")

	sig := e.ExtractSignature(node, source)
	assert.Equal(t, "async def fetch(self, url: str, timeout: int = 5) -> Response", sig)

	params := e.ExtractParameters(node, source)
	require.Len(t, params, 2, "self receiver is skipped")
	assert.Equal(t, types.Parameter{Name: "url", Type: "str"}, params[0])
	assert.Equal(t, types.Parameter{Name: "timeout", Type: "int", DefaultValue: "5", Optional: true}, params[1])

	assert.Equal(t, "Response", e.ExtractReturnType(node, source))
	assert.Equal(t, []string{"async"}, e.ExtractModifiers(node, source))
}

func TestPython_NoneReturnIsEmpty(t *testing.T) {
	e := NewPythonExtractor()
	source := "def reset() -> None:\n    pass"
	node := testNode("function_definition", "reset", 1, 2, "python")

	assert.Equal(t, "", e.ExtractReturnType(node, source))
}

func TestPython_DecoratorsAndNaming(t *testing.T) {
	e := NewPythonExtractor()
	source := "@staticmethod\ndef _helper(value):\n    return value"
	node := testNode("function_definition", "_helper", 1, 3, "python")

	// The decorator maps to "static", the underscore prefix to "protected".
	assert.Equal(t, []string{"protected", "static"}, e.ExtractModifiers(node, source))
}

func TestPython_DunderPrefixIsPrivate(t *testing.T) {
	e := NewPythonExtractor()
	source := "def __secret(self):\n    pass"
	node := testNode("method_definition", "__secret", 1, 2, "python")

	assert.Equal(t, []string{"private"}, e.ExtractModifiers(node, source))
}

func TestPython_Class(t *testing.T) {
	e := NewPythonExtractor()
	source := "class Parser:\n    pass"
	node := testNode("class_definition", "Parser", 1, 2, "python")

	assert.Equal(t, "class Parser", e.ExtractSignature(node, source))
}

func TestPython_KeywordOnlySeparatorSkipped(t *testing.T) {
	e := NewPythonExtractor()
	source := "def run(self, *, verbose: bool = False):\n    pass"
	node := testNode("function_definition", "run", 1, 2, "python")

	params := e.ExtractParameters(node, source)
	require.Len(t, params, 1)
	assert.Equal(t, "verbose", params[0].Name)
}

func TestPython_AssignmentSignature(t *testing.T) {
	e := NewPythonExtractor()
	source := "MAX_RETRIES = 3"
	node := testNode("variable_assignment", "MAX_RETRIES", 1, 1, "python")

	assert.Equal(t, "MAX_RETRIES", e.ExtractSignature(node, source))
}

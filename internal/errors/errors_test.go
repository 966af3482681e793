package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipelineError_Message(t *testing.T) {
	underlying := stderrors.New("no such file")

	err := NewInputError("read dump", underlying).WithFile("nodes.json")
	assert.Equal(t, "input read dump failed for nodes.json: no such file", err.Error())

	bare := NewParseError("decode dump", underlying)
	assert.Equal(t, "parse decode dump failed: no such file", bare.Error())
}

func TestPipelineError_Unwrap(t *testing.T) {
	underlying := stderrors.New("disk full")
	err := NewOutputError("write annotations", underlying)

	assert.True(t, stderrors.Is(err, underlying))

	var pe *PipelineError
	assert.True(t, stderrors.As(err, &pe))
	assert.Equal(t, ErrorTypeOutput, pe.Type)
}

func TestPipelineError_Recoverable(t *testing.T) {
	err := NewConfigError("load", stderrors.New("bad toml")).WithRecoverable(true)
	assert.True(t, err.IsRecoverable())
	assert.False(t, err.Timestamp.IsZero())
}

package encoding

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// NodeID synthesizes a stable identifier for a syntax node that arrived
// without one. The same file, position, and kind always produce the same
// ID, so re-running a pipeline over an unchanged parse yields identical
// records.
func NodeID(filePath, nodeType string, line, column int) string {
	h := xxhash.New()
	_, _ = h.WriteString(filePath)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(nodeType)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(strconv.Itoa(line))
	_, _ = h.WriteString(":")
	_, _ = h.WriteString(strconv.Itoa(column))
	return Base63Encode(h.Sum64())
}

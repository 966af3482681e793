package engine

import (
	"sync"
	"time"
)

// maxErrorEntries caps the error log. When the cap is exceeded the oldest
// half is dropped, so memory stays bounded under sustained failure.
const maxErrorEntries = 100

// ErrorEntry is one recovered failure, kept for later inspection.
type ErrorEntry struct {
	Time    time.Time `json:"time"`
	Context string    `json:"context"`
	Message string    `json:"message"`
}

type errorLog struct {
	mu      sync.Mutex
	entries []ErrorEntry
}

func newErrorLog() *errorLog {
	return &errorLog{}
}

func (l *errorLog) append(context, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, ErrorEntry{
		Time:    time.Now(),
		Context: context,
		Message: message,
	})
	if len(l.entries) > maxErrorEntries {
		half := len(l.entries) / 2
		l.entries = append([]ErrorEntry(nil), l.entries[half:]...)
	}
}

// snapshot returns a copy of the current entries, oldest first.
func (l *errorLog) snapshot() []ErrorEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]ErrorEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *errorLog) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

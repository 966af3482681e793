package engine

import (
	"github.com/standardbeagle/anno/internal/config"
	"github.com/standardbeagle/anno/internal/types"
)

// CacheStats reports current entry counts across all pipeline caches.
type CacheStats struct {
	Annotations int `json:"annotations"`
	Summaries   int `json:"summaries"`
	Tags        int `json:"tags"`
}

// PerformanceMetrics returns the last recorded sample per metric name.
func (e *Engine) PerformanceMetrics() map[string]float64 {
	return e.metrics.snapshot()
}

// ErrorLog returns a copy of the bounded error log, oldest entry first.
func (e *Engine) ErrorLog() []ErrorEntry {
	return e.errors.snapshot()
}

// ClearCaches empties the annotation cache, the generator caches, and the
// dependency resolution cache. The error log and metrics survive; they
// have their own lifecycle.
func (e *Engine) ClearCaches() {
	e.cacheMu.Lock()
	e.cache = make(map[string]*types.Annotation)
	e.cacheMu.Unlock()
	e.summaries.Clear()
	e.dependency.Clear()
}

// CacheSizes reports entry counts for the annotation, summary, and tag
// caches.
func (e *Engine) CacheSizes() CacheStats {
	e.cacheMu.RLock()
	annotations := len(e.cache)
	e.cacheMu.RUnlock()

	summaries, tags := e.summaries.Sizes()
	return CacheStats{
		Annotations: annotations,
		Summaries:   summaries,
		Tags:        tags,
	}
}

// Languages lists the language identifiers with a registered extraction
// strategy, sorted.
func (e *Engine) Languages() []string {
	return e.registry.Languages()
}

// ValidateConfig checks cfg and returns human-readable issues. An empty
// list means the configuration is usable.
func (e *Engine) ValidateConfig(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"configuration is nil"}
	}
	return cfg.Validate()
}

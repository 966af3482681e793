package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// Default values used when a field is absent from the config file.
const (
	DefaultMaxSnippetLines     = 10
	DefaultContextLines        = 3
	DefaultBatchSize           = 100
	DefaultNodeTimeoutMs       = 5000
	DefaultMinCompleteness     = 0.3
	DefaultMinConfidence       = 0.3
	DefaultMaxSummaryLength    = 200
	DefaultNestingWeight       = 1.5
	DefaultNestingThreshold    = 3
	DefaultMaxTraversalDepth   = 5
	DefaultSummaryCacheSize    = 4096
	DefaultTagCacheSize        = 4096
	DefaultResolutionCacheSize = 1024
)

// Config is the full configuration surface consumed by the annotation
// engine. All values have documented defaults; Validate reports issues as
// human-readable strings rather than failing.
type Config struct {
	Engine     Engine     `toml:"engine"`
	Complexity Complexity `toml:"complexity"`
	Dependency Dependency `toml:"dependency"`
	Summary    Summary    `toml:"summary"`
	Cache      Cache      `toml:"cache"`
}

// Engine holds batching, timeout, and quality-threshold options.
type Engine struct {
	MaxSnippetLines     int     `toml:"max_snippet_lines"`
	ContextLinesBefore  int     `toml:"context_lines_before"`
	ContextLinesAfter   int     `toml:"context_lines_after"`
	BatchSize           int     `toml:"batch_size"`
	MaxConcurrency      int     `toml:"max_concurrency"` // 0 = auto-detect (NumCPU)
	NodeTimeoutMs       int     `toml:"node_timeout_ms"`
	MinCompleteness     float64 `toml:"min_completeness"`
	MinConfidence       float64 `toml:"min_confidence"`
	EnableDeduplication bool    `toml:"enable_deduplication"`
}

// Complexity holds the tunable constants of the cyclomatic analyzer. The
// weight and threshold are calibration knobs, not invariants.
type Complexity struct {
	NestingWeight    float64 `toml:"nesting_weight"`
	NestingThreshold int     `toml:"nesting_threshold"`
}

// Dependency controls import-chain traversal and external classification.
type Dependency struct {
	MaxDepth         int      `toml:"max_depth"`
	ProjectRoot      string   `toml:"project_root"`
	InternalPatterns []string `toml:"internal_patterns"` // doublestar globs treated as project-internal
}

// Summary controls summary rendering.
type Summary struct {
	MaxLength int `toml:"max_length"`
}

// Cache sizes the generator-level LRU caches. The engine's annotation
// cache is a dedup store and is not bounded here.
type Cache struct {
	SummaryEntries    int `toml:"summary_entries"`
	TagEntries        int `toml:"tag_entries"`
	ResolutionEntries int `toml:"resolution_entries"`
}

// Default returns a configuration populated with every default value.
func Default() *Config {
	return &Config{
		Engine: Engine{
			MaxSnippetLines:     DefaultMaxSnippetLines,
			ContextLinesBefore:  DefaultContextLines,
			ContextLinesAfter:   DefaultContextLines,
			BatchSize:           DefaultBatchSize,
			MaxConcurrency:      runtime.NumCPU(),
			NodeTimeoutMs:       DefaultNodeTimeoutMs,
			MinCompleteness:     DefaultMinCompleteness,
			MinConfidence:       DefaultMinConfidence,
			EnableDeduplication: true,
		},
		Complexity: Complexity{
			NestingWeight:    DefaultNestingWeight,
			NestingThreshold: DefaultNestingThreshold,
		},
		Dependency: Dependency{
			MaxDepth: DefaultMaxTraversalDepth,
			InternalPatterns: []string{
				"src/**",
				"lib/**",
				"internal/**",
			},
		},
		Summary: Summary{
			MaxLength: DefaultMaxSummaryLength,
		},
		Cache: Cache{
			SummaryEntries:    DefaultSummaryCacheSize,
			TagEntries:        DefaultTagCacheSize,
			ResolutionEntries: DefaultResolutionCacheSize,
		},
	}
}

// Load reads a TOML config file and merges it over the defaults. A missing
// file is not an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config from %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyFallbacks()
	return cfg, nil
}

// applyFallbacks restores defaults for zero values a partial file left
// unset, so an explicit file only has to name what it changes.
func (c *Config) applyFallbacks() {
	d := Default()
	if c.Engine.MaxSnippetLines == 0 {
		c.Engine.MaxSnippetLines = d.Engine.MaxSnippetLines
	}
	if c.Engine.BatchSize == 0 {
		c.Engine.BatchSize = d.Engine.BatchSize
	}
	if c.Engine.MaxConcurrency == 0 {
		c.Engine.MaxConcurrency = d.Engine.MaxConcurrency
	}
	if c.Engine.NodeTimeoutMs == 0 {
		c.Engine.NodeTimeoutMs = d.Engine.NodeTimeoutMs
	}
	if c.Engine.MinCompleteness == 0 {
		c.Engine.MinCompleteness = d.Engine.MinCompleteness
	}
	if c.Engine.MinConfidence == 0 {
		c.Engine.MinConfidence = d.Engine.MinConfidence
	}
	if c.Complexity.NestingWeight == 0 {
		c.Complexity.NestingWeight = d.Complexity.NestingWeight
	}
	if c.Complexity.NestingThreshold == 0 {
		c.Complexity.NestingThreshold = d.Complexity.NestingThreshold
	}
	if c.Dependency.MaxDepth == 0 {
		c.Dependency.MaxDepth = d.Dependency.MaxDepth
	}
	if len(c.Dependency.InternalPatterns) == 0 {
		c.Dependency.InternalPatterns = d.Dependency.InternalPatterns
	}
	if c.Summary.MaxLength == 0 {
		c.Summary.MaxLength = d.Summary.MaxLength
	}
	if c.Cache.SummaryEntries == 0 {
		c.Cache.SummaryEntries = d.Cache.SummaryEntries
	}
	if c.Cache.TagEntries == 0 {
		c.Cache.TagEntries = d.Cache.TagEntries
	}
	if c.Cache.ResolutionEntries == 0 {
		c.Cache.ResolutionEntries = d.Cache.ResolutionEntries
	}
}

// Validate checks the configurable values and returns a list of
// human-readable issues. An empty list means the configuration is usable.
func (c *Config) Validate() []string {
	var issues []string

	if c.Engine.BatchSize <= 0 {
		issues = append(issues, fmt.Sprintf("engine.batch_size must be positive, got %d", c.Engine.BatchSize))
	}
	if c.Engine.MaxConcurrency <= 0 {
		issues = append(issues, fmt.Sprintf("engine.max_concurrency must be positive, got %d", c.Engine.MaxConcurrency))
	}
	if c.Engine.NodeTimeoutMs <= 0 {
		issues = append(issues, fmt.Sprintf("engine.node_timeout_ms must be positive, got %d", c.Engine.NodeTimeoutMs))
	}
	if c.Engine.MinCompleteness <= 0 || c.Engine.MinCompleteness > 1 {
		issues = append(issues, fmt.Sprintf("engine.min_completeness must be positive and within [0, 1], got %v", c.Engine.MinCompleteness))
	}
	if c.Engine.MinConfidence <= 0 || c.Engine.MinConfidence > 1 {
		issues = append(issues, fmt.Sprintf("engine.min_confidence must be positive and within [0, 1], got %v", c.Engine.MinConfidence))
	}

	return issues
}

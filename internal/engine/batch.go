package engine

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/anno/internal/debug"
	"github.com/standardbeagle/anno/internal/types"
)

// BatchOptions controls batch generation. The zero value annotates every
// node with no progress reporting.
type BatchOptions struct {
	// MaxConcurrency bounds in-flight nodes for this call. Zero falls back
	// to the configured engine default.
	MaxConcurrency int

	// OnProgress is invoked after each group completes with the number of
	// completed nodes and the batch total. Calls are serialized.
	OnProgress func(completed, total int)

	// Node filters. Zero values disable each filter.
	MinLines     int
	MaxLines     int
	IncludeTypes []string
	ExcludeTypes []string
}

// GenerateBatch annotates nodes against one source text. Results preserve
// input order. Nodes run in groups bounded by the configured concurrency;
// a group completes fully before the next group starts, so in-flight work
// never exceeds the bound. One annotation is returned for every input
// node that passes the filters.
func (e *Engine) GenerateBatch(ctx context.Context, nodes []*types.SyntaxNode, sourceText, filePath string, opts BatchOptions) []*types.Annotation {
	selected := filterNodes(nodes, opts)
	total := len(selected)
	results := make([]*types.Annotation, total)
	if total == 0 {
		return results
	}

	groupSize := opts.MaxConcurrency
	if groupSize <= 0 {
		groupSize = e.cfg.Engine.MaxConcurrency
	}
	if groupSize <= 0 {
		groupSize = 1
	}
	debug.LogBatch("annotating %d nodes in groups of %d", total, groupSize)

	completed := 0
	for offset := 0; offset < total; offset += groupSize {
		end := offset + groupSize
		if end > total {
			end = total
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := offset; i < end; i++ {
			g.Go(func() error {
				results[i] = e.Generate(gctx, selected[i], sourceText, filePath)
				return nil
			})
		}
		// Generate never returns an error; Wait is a join.
		_ = g.Wait()

		completed = end
		if opts.OnProgress != nil {
			opts.OnProgress(completed, total)
		}
	}
	return results
}

// filterNodes applies the batch node filters, preserving input order.
func filterNodes(nodes []*types.SyntaxNode, opts BatchOptions) []*types.SyntaxNode {
	if opts.MinLines == 0 && opts.MaxLines == 0 &&
		len(opts.IncludeTypes) == 0 && len(opts.ExcludeTypes) == 0 {
		return nodes
	}

	var out []*types.SyntaxNode
	for _, node := range nodes {
		if node == nil {
			continue
		}
		span := node.LineCount()
		if opts.MinLines > 0 && span < opts.MinLines {
			continue
		}
		if opts.MaxLines > 0 && span > opts.MaxLines {
			continue
		}
		if len(opts.IncludeTypes) > 0 && !matchesAnyType(node.Type, opts.IncludeTypes) {
			continue
		}
		if matchesAnyType(node.Type, opts.ExcludeTypes) {
			continue
		}
		out = append(out, node)
	}
	return out
}

func matchesAnyType(nodeType string, patterns []string) bool {
	kind := strings.ToLower(nodeType)
	for _, p := range patterns {
		if strings.Contains(kind, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/anno/internal/config"
	"github.com/standardbeagle/anno/internal/types"
)

func batchNodes(n int) []*types.SyntaxNode {
	nodes := make([]*types.SyntaxNode, n)
	for i := range nodes {
		nodes[i] = engineNode(
			fmt.Sprintf("id-%d", i),
			"function_declaration",
			fmt.Sprintf("fn%d", i),
			1, 1,
			"javascript",
		)
	}
	return nodes
}

func TestGenerateBatch_OrderPreserved(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.MaxConcurrency = 2
	e := New(cfg, nil)

	nodes := batchNodes(5)
	results := e.GenerateBatch(context.Background(), nodes, "function fn() {}", "", BatchOptions{})

	require.Len(t, results, 5)
	for i, a := range results {
		require.NotNil(t, a, "node %d", i)
		assert.Equal(t, nodes[i].ID, a.NodeID)
	}
}

func TestGenerateBatch_ProgressPerGroup(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.MaxConcurrency = 2
	e := New(cfg, nil)

	var progress [][2]int
	opts := BatchOptions{
		OnProgress: func(completed, total int) {
			progress = append(progress, [2]int{completed, total})
		},
	}
	e.GenerateBatch(context.Background(), batchNodes(5), "function fn() {}", "", opts)

	assert.Equal(t, [][2]int{{2, 5}, {4, 5}, {5, 5}}, progress)
}

func TestGenerateBatch_ConcurrencyOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.MaxConcurrency = 4
	e := New(cfg, nil)

	var progress [][2]int
	opts := BatchOptions{
		MaxConcurrency: 2,
		OnProgress: func(completed, total int) {
			progress = append(progress, [2]int{completed, total})
		},
	}
	e.GenerateBatch(context.Background(), batchNodes(5), "function fn() {}", "", opts)

	// The per-call bound wins over the configured default.
	assert.Equal(t, [][2]int{{2, 5}, {4, 5}, {5, 5}}, progress)
}

func TestGenerateBatch_Empty(t *testing.T) {
	e := New(config.Default(), nil)
	results := e.GenerateBatch(context.Background(), nil, "", "", BatchOptions{})
	assert.Empty(t, results)
}

func TestGenerateBatch_LineFilters(t *testing.T) {
	e := New(config.Default(), nil)
	short := engineNode("short", "function_declaration", "a", 1, 2, "javascript")
	long := engineNode("long", "function_declaration", "b", 1, 30, "javascript")

	results := e.GenerateBatch(context.Background(),
		[]*types.SyntaxNode{short, long},
		"function a() {}", "",
		BatchOptions{MinLines: 5})

	require.Len(t, results, 1)
	assert.Equal(t, "long", results[0].NodeID)

	results = e.GenerateBatch(context.Background(),
		[]*types.SyntaxNode{short, long},
		"function a() {}", "",
		BatchOptions{MaxLines: 5})

	require.Len(t, results, 1)
	assert.Equal(t, "short", results[0].NodeID)
}

func TestGenerateBatch_TypeFilters(t *testing.T) {
	e := New(config.Default(), nil)
	fn := engineNode("fn", "function_declaration", "a", 1, 1, "javascript")
	class := engineNode("cls", "class_declaration", "B", 1, 1, "javascript")

	results := e.GenerateBatch(context.Background(),
		[]*types.SyntaxNode{fn, class}, "source", "",
		BatchOptions{IncludeTypes: []string{"function"}})
	require.Len(t, results, 1)
	assert.Equal(t, "fn", results[0].NodeID)

	results = e.GenerateBatch(context.Background(),
		[]*types.SyntaxNode{fn, class}, "source", "",
		BatchOptions{ExcludeTypes: []string{"class"}})
	require.Len(t, results, 1)
	assert.Equal(t, "fn", results[0].NodeID)
}

func TestGenerateBatch_NilNodesFiltered(t *testing.T) {
	e := New(config.Default(), nil)

	results := e.GenerateBatch(context.Background(),
		[]*types.SyntaxNode{nil, engineNode("fn", "function_declaration", "a", 1, 1, "javascript")},
		"source", "",
		BatchOptions{MinLines: 1})

	require.Len(t, results, 1)
	assert.Equal(t, "fn", results[0].NodeID)
}

func TestSummarizeFile(t *testing.T) {
	annotations := []*types.Annotation{
		{
			Language:     "typescript",
			Complexity:   3,
			SemanticTags: []string{"function"},
		},
		{
			Language:     "typescript",
			Complexity:   25,
			SemanticTags: []string{"class", "external-dependency"},
			Dependencies: []string{"lodash", "fs"},
		},
		nil,
	}

	s := SummarizeFile("src/app.ts", annotations)
	require.NotNil(t, s)

	assert.Equal(t, "src/app.ts", s.FilePath)
	assert.Equal(t, 3, s.TotalAnnotations)
	assert.Equal(t, "typescript", s.Language)
	assert.Equal(t, map[string]int{"function": 1, "class": 1}, s.NodeTypeCounts)
	assert.Equal(t, map[string]int{"low": 1, "high": 1}, s.ComplexityDistribution)
	assert.Equal(t, []string{"fs", "lodash"}, s.ExternalDependencies)
	assert.Equal(t, []string{"class", "external-dependency", "function"}, s.SemanticTags)
}

func TestSummarizeFile_Empty(t *testing.T) {
	s := SummarizeFile("src/empty.ts", nil)
	require.NotNil(t, s)
	assert.Zero(t, s.TotalAnnotations)
	assert.Empty(t, s.ExternalDependencies)
}

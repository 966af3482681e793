package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/anno/internal/config"
	"github.com/standardbeagle/anno/internal/types"
)

func analyzerNode(kind, name string, startLine, endLine int, language string) *types.SyntaxNode {
	return &types.SyntaxNode{
		Type:     kind,
		Name:     name,
		Language: language,
		Start:    types.Position{Line: startLine, Column: 0},
		End:      types.Position{Line: endLine, Column: 0},
	}
}

func TestComplexity_StraightLineFunction(t *testing.T) {
	a := NewComplexityAnalyzer(config.Complexity{})
	source := "function add(a, b) {\n  return a + b;\n}"
	node := analyzerNode("function_declaration", "add", 1, 3, "javascript")

	assert.Equal(t, 1, a.Analyze(node, source, ""))
}

func TestComplexity_NonCallableScoresBase(t *testing.T) {
	a := NewComplexityAnalyzer(config.Complexity{})
	source := "class Widget {\n  if (x) {}\n}"
	node := analyzerNode("class_declaration", "Widget", 1, 3, "javascript")

	assert.Equal(t, 1, a.Analyze(node, source, ""))
}

func TestComplexity_BranchesAndLogicalOperators(t *testing.T) {
	a := NewComplexityAnalyzer(config.Complexity{})
	lines := []string{
		"function f(a) {",
		"  if (a > 0 && a < 10) {",
		"    for (let i = 0; i < a; i++) {",
		"      log(i);",
		"    }",
		"  }",
		"}",
	}
	node := analyzerNode("function_declaration", "f", 1, len(lines), "javascript")

	// 1 base + (if + &&) + for
	assert.Equal(t, 4, a.Analyze(node, strings.Join(lines, "\n"), ""))
}

func TestComplexity_NestingWeight(t *testing.T) {
	a := NewComplexityAnalyzer(config.Complexity{})
	lines := []string{
		"function f(a) {",
		"  if (a) {",
		"    if (a) {",
		"      if (a) {",
		"        if (a) {",
		"          work();",
		"        }",
		"      }",
		"    }",
		"  }",
		"}",
	}
	node := analyzerNode("function_declaration", "f", 1, len(lines), "javascript")

	// The innermost branch sits above the nesting threshold and earns the
	// 1.5 weight: 1 + 1 + 1 + 1 + 1.5 rounds to 6.
	assert.Equal(t, 6, a.Analyze(node, strings.Join(lines, "\n"), ""))
}

func TestComplexity_PythonWordOperators(t *testing.T) {
	a := NewComplexityAnalyzer(config.Complexity{})
	lines := []string{
		"def f(a, b):",
		"    if a and b:",
		"        return 1",
		"    return 0",
	}
	node := analyzerNode("function_definition", "f", 1, len(lines), "python")

	// 1 base + if + and
	assert.Equal(t, 3, a.Analyze(node, strings.Join(lines, "\n"), ""))
}

func TestComplexity_CompoundElseIfCountsOnce(t *testing.T) {
	a := NewComplexityAnalyzer(config.Complexity{})
	lines := []string{
		"function f(a) {",
		"  if (a) {",
		"  } else if (a > 1) {",
		"  }",
		"}",
	}
	node := analyzerNode("function_declaration", "f", 1, len(lines), "javascript")

	// 1 base + if + else if; the "if" inside "else if" is not double
	// counted.
	assert.Equal(t, 3, a.Analyze(node, strings.Join(lines, "\n"), ""))
}

func TestComplexity_Ternaries(t *testing.T) {
	a := NewComplexityAnalyzer(config.Complexity{})
	lines := []string{
		"function f(x) {",
		"  const a = x ? 1 : 2;",
		"  const b = x ?: 3;",
		"  return a ?? b;",
		"}",
	}
	node := analyzerNode("function_declaration", "f", 1, len(lines), "javascript")

	// 1 base + the spaced ternary + the Elvis form; nullish coalescing is
	// not a branch.
	assert.Equal(t, 3, a.Analyze(node, strings.Join(lines, "\n"), ""))
}

func TestComplexity_LanguageParameterOverridesNode(t *testing.T) {
	a := NewComplexityAnalyzer(config.Complexity{})
	lines := []string{
		"def f(a, b):",
		"    if a and b:",
		"        return 1",
	}
	// The node is stamped javascript; the resolved language selects the
	// python keyword set, which counts word operators.
	node := analyzerNode("function_definition", "f", 1, len(lines), "javascript")

	assert.Equal(t, 3, a.Analyze(node, strings.Join(lines, "\n"), "python"))
	assert.Equal(t, 2, a.Analyze(node, strings.Join(lines, "\n"), ""))
}

func TestComplexity_CommentLinesIgnored(t *testing.T) {
	a := NewComplexityAnalyzer(config.Complexity{})
	lines := []string{
		"function f(a) {",
		"  // if this were code it would count",
		"  return a;",
		"}",
	}
	node := analyzerNode("function_declaration", "f", 1, len(lines), "javascript")

	assert.Equal(t, 1, a.Analyze(node, strings.Join(lines, "\n"), ""))
}

func TestComplexity_EmptySource(t *testing.T) {
	a := NewComplexityAnalyzer(config.Complexity{})
	node := analyzerNode("function_declaration", "f", 1, 1, "javascript")

	assert.Equal(t, 1, a.Analyze(node, "", ""))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{1, TierLow},
		{10, TierLow},
		{11, TierMedium},
		{20, TierMedium},
		{21, TierHigh},
		{50, TierHigh},
		{51, TierVeryHigh},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, Classify(tc.score), "score %d", tc.score)
	}
}

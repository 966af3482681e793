package analysis

import (
	"math"
	"strings"

	"github.com/standardbeagle/anno/internal/config"
	"github.com/standardbeagle/anno/internal/extract"
	"github.com/standardbeagle/anno/internal/types"
)

// Complexity tier boundaries. Tiers bucket the raw score for reporting;
// the raw score itself is what annotations carry.
const (
	TierLow      = "low"
	TierMedium   = "medium"
	TierHigh     = "high"
	TierVeryHigh = "very-high"
)

// ComplexityAnalyzer computes a cyclomatic complexity approximation from
// source text. It counts decision points line by line rather than walking
// an AST, which keeps it language-agnostic at the cost of counting
// keywords inside string literals on rare inputs.
type ComplexityAnalyzer struct {
	nestingWeight    float64
	nestingThreshold int
}

func NewComplexityAnalyzer(cfg config.Complexity) *ComplexityAnalyzer {
	weight := cfg.NestingWeight
	if weight <= 0 {
		weight = config.DefaultNestingWeight
	}
	threshold := cfg.NestingThreshold
	if threshold <= 0 {
		threshold = config.DefaultNestingThreshold
	}
	return &ComplexityAnalyzer{
		nestingWeight:    weight,
		nestingThreshold: threshold,
	}
}

// decisionKeywords maps a language to the branch keywords counted as
// decision points. Languages not listed fall back to the default set.
var decisionKeywords = map[string][]string{
	"python":     {"if", "elif", "while", "for", "except", "and", "or", "assert", "case"},
	"ruby":       {"if", "elsif", "unless", "while", "until", "for", "when", "rescue", "and", "or"},
	"rust":       {"if", "while", "for", "loop", "match", "else if"},
	"go":         {"if", "for", "case", "select", "switch"},
	"kotlin":     {"if", "while", "for", "when", "catch", "else if"},
	"scala":      {"if", "while", "for", "match", "case", "catch"},
	"swift":      {"if", "while", "for", "guard", "switch", "catch", "else if"},
	"lua":        {"if", "elseif", "while", "for", "repeat", "and", "or"},
	"bash":       {"if", "elif", "while", "for", "until", "case"},
	"typescript": defaultDecisionKeywords,
	"javascript": defaultDecisionKeywords,
}

var defaultDecisionKeywords = []string{"if", "else if", "while", "for", "case", "catch", "do"}

// Analyze returns the complexity score for a node. Non-callable nodes
// score the base value of 1. The language parameter selects the keyword
// table; empty falls back to the node's own language field.
func (a *ComplexityAnalyzer) Analyze(node *types.SyntaxNode, source string, language string) int {
	if !extract.IsFunctionKind(node.Type) {
		return 1
	}

	body := extract.NodeLines(node, source)
	if len(body) == 0 {
		return 1
	}

	if language == "" {
		language = node.Language
	}
	language = strings.ToLower(language)
	keywords, ok := decisionKeywords[language]
	if !ok {
		keywords = defaultDecisionKeywords
	}

	score := 1.0
	depth := 0
	indentNesting := language == "python"

	for _, line := range body {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isCommentLine(trimmed, language) {
			continue
		}

		if indentNesting {
			depth = indentDepth(line)
		}

		points := countDecisionPoints(trimmed, keywords)
		points += countLogicalOperators(trimmed, language)
		points += countTernaries(trimmed)
		if points > 0 {
			weight := 1.0
			if depth > a.nestingThreshold {
				weight = a.nestingWeight
			}
			score += float64(points) * weight
		}

		if !indentNesting {
			depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
			if depth < 0 {
				depth = 0
			}
		}
	}

	return int(math.Round(score))
}

// Classify buckets a raw complexity score into a reporting tier.
func Classify(score int) string {
	switch {
	case score <= 10:
		return TierLow
	case score <= 20:
		return TierMedium
	case score <= 50:
		return TierHigh
	default:
		return TierVeryHigh
	}
}

func countDecisionPoints(line string, keywords []string) int {
	lower := strings.ToLower(line)
	count := 0
	compound := 0
	for _, kw := range keywords {
		if strings.Contains(kw, " ") {
			// Compound keywords ("else if") are counted first so their
			// single-word component is not double counted.
			n := strings.Count(lower, kw)
			compound += n
			count += n
		}
	}
	for _, kw := range keywords {
		if strings.Contains(kw, " ") {
			continue
		}
		count += countWordOccurrences(lower, kw)
	}
	// "else if" matched both as compound and as bare "if".
	count -= compound
	return count
}

// countLogicalOperators counts short-circuit operators, which add a branch
// each. Word-operator languages already count and/or as keywords.
func countLogicalOperators(line string, language string) int {
	switch language {
	case "python", "ruby", "lua":
		return 0
	}
	return strings.Count(line, "&&") + strings.Count(line, "||")
}

// countTernaries counts conditional expressions: a '?' with a ':' later
// on the line. Optional chaining ("?.") and nullish coalescing ("??") are
// not branches and are skipped.
func countTernaries(line string) int {
	count := 0
	for i := 0; i < len(line); i++ {
		if line[i] != '?' {
			continue
		}
		if i+1 < len(line) && (line[i+1] == '.' || line[i+1] == '?') {
			i++
			continue
		}
		if strings.IndexByte(line[i+1:], ':') >= 0 {
			count++
		}
	}
	return count
}

func countWordOccurrences(lower, word string) int {
	count := 0
	idx := 0
	for {
		pos := strings.Index(lower[idx:], word)
		if pos < 0 {
			return count
		}
		pos += idx
		before := pos == 0 || !isWordChar(lower[pos-1])
		afterIdx := pos + len(word)
		after := afterIdx >= len(lower) || !isWordChar(lower[afterIdx])
		if before && after {
			count++
		}
		idx = pos + len(word)
	}
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isCommentLine(trimmed, language string) bool {
	switch language {
	case "python", "ruby", "bash":
		return strings.HasPrefix(trimmed, "#")
	case "lua":
		return strings.HasPrefix(trimmed, "--")
	}
	return strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}

// indentDepth approximates nesting from leading whitespace, four columns
// per level. Tabs count as one level each.
func indentDepth(line string) int {
	spaces := 0
	tabs := 0
	for _, c := range line {
		if c == ' ' {
			spaces++
		} else if c == '\t' {
			tabs++
		} else {
			break
		}
	}
	return tabs + spaces/4
}

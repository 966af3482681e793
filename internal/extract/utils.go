package extract

import (
	"sort"
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// NodeLines returns the source lines covered by the node, from its start
// line to its end line inclusive. Input positions are 1-based; the slice
// is clamped to the available text. Returns nil when the span is unusable.
func NodeLines(node *types.SyntaxNode, source string) []string {
	if node == nil || source == "" || !node.Start.Known() {
		return nil
	}

	lines := strings.Split(source, "\n")
	start := node.Start.Line - 1
	if start < 0 || start >= len(lines) {
		return nil
	}

	end := node.End.Line // exclusive index after converting to 0-based
	if !node.End.Known() || end > len(lines) {
		end = len(lines)
	}
	if end <= start {
		end = start + 1
	}

	return lines[start:end]
}

// FirstSignificantLine returns the first non-empty, non-comment line of
// the span, trimmed. Used as the generic extraction for unrecognized node
// kinds.
func FirstSignificantLine(lines []string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*") ||
			strings.HasPrefix(trimmed, "--") {
			continue
		}
		return trimmed
	}
	return ""
}

// FindDeclarationLine returns the first line whose trimmed form starts
// with any of the given prefixes, or "" when none matches.
func FindDeclarationLine(lines []string, prefixes ...string) string {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, prefix := range prefixes {
			if strings.HasPrefix(trimmed, prefix) {
				return trimmed
			}
		}
	}
	return ""
}

// NormalizeSignature collapses whitespace runs and strips trailing block
// punctuation so signatures from different formatting styles compare
// equal.
func NormalizeSignature(sig string) string {
	sig = strings.Join(strings.Fields(sig), " ")
	sig = strings.TrimSuffix(sig, "{")
	sig = strings.TrimSuffix(sig, ";")
	sig = strings.TrimSuffix(sig, ":")
	return strings.TrimSpace(sig)
}

// ParameterGroup locates the first balanced parenthesis group in text and
// returns its inner content. Nested parentheses, brackets, braces, angle
// brackets, and single/double-quoted string literals are respected so a
// default value like "fn(a, b)" or a generic like "Map<K, V>" does not
// terminate the group early.
func ParameterGroup(text string) (string, bool) {
	start := strings.IndexByte(text, '(')
	if start < 0 {
		return "", false
	}

	depth := 0
	angle := 0
	var quote byte
	for i := start; i < len(text); i++ {
		ch := text[i]

		if quote != 0 {
			if ch == '\\' {
				i++ // skip escaped character
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}

		switch ch {
		case '\'', '"', '`':
			quote = ch
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if ch == ')' && depth == 0 {
				return text[start+1 : i], true
			}
		case '<':
			angle++
		case '>':
			if angle > 0 {
				angle--
			}
		}
	}
	return "", false
}

// SplitTopLevel splits s on commas that are not nested inside
// parentheses, brackets, braces, angle brackets, or string literals.
// Empty tokens are dropped.
func SplitTopLevel(s string) []string {
	var tokens []string
	depth := 0
	angle := 0
	var quote byte
	start := 0

	flush := func(end int) {
		token := strings.TrimSpace(s[start:end])
		if token != "" {
			tokens = append(tokens, token)
		}
		start = end + 1
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if quote != 0 {
			if ch == '\\' {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}

		switch ch {
		case '\'', '"', '`':
			quote = ch
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '<':
			angle++
		case '>':
			if angle > 0 {
				angle--
			}
		case ',':
			if depth == 0 && angle == 0 {
				flush(i)
			}
		}
	}
	flush(len(s))

	return tokens
}

// ScanModifiers performs a case-insensitive word scan over the span and
// returns the de-duplicated, sorted set of keywords present.
func ScanModifiers(text string, keywords []string) []string {
	lower := " " + strings.ToLower(text) + " "
	found := make(map[string]bool)

	for _, kw := range keywords {
		if containsWord(lower, kw) {
			found[kw] = true
		}
	}

	if len(found) == 0 {
		return nil
	}
	result := make([]string, 0, len(found))
	for kw := range found {
		result = append(result, kw)
	}
	sort.Strings(result)
	return result
}

// containsWord reports whether lower (already lowercased, padded with
// spaces) contains the keyword bounded by non-identifier characters.
func containsWord(lower, word string) bool {
	idx := 0
	for {
		pos := strings.Index(lower[idx:], word)
		if pos < 0 {
			return false
		}
		pos += idx
		before := lower[pos-1]
		afterIdx := pos + len(word)
		var after byte = ' '
		if afterIdx < len(lower) {
			after = lower[afterIdx]
		}
		if !isIdentChar(before) && !isIdentChar(after) {
			return true
		}
		idx = pos + len(word)
		if idx >= len(lower) {
			return false
		}
	}
}

func isIdentChar(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9')
}

// dedupeSorted returns the sorted unique entries of a modifier list.
func dedupeSorted(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	sort.Strings(result)
	return result
}

// FallbackName returns the best available identifier for a node: its
// name, then its kind tag, then "unknown".
func FallbackName(node *types.SyntaxNode) string {
	if node == nil {
		return "unknown"
	}
	if node.Name != "" {
		return node.Name
	}
	if node.Type != "" {
		return node.Type
	}
	return "unknown"
}

// IsFunctionKind reports whether the node's kind tag names a callable
// form.
func IsFunctionKind(nodeType string) bool {
	lower := strings.ToLower(nodeType)
	return strings.Contains(lower, "function") || strings.Contains(lower, "method") ||
		strings.Contains(lower, "constructor") || strings.Contains(lower, "lambda")
}

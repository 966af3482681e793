package extract

import (
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// Parameter token parsers shared by the language strategies. Each takes
// one top-level comma token and returns a Parameter with a non-empty
// name; the declaration-order differences between languages live here.

// parseColonTyped handles "name: type = default" declaration order with
// "?" optional markers and leading sigils (*, **, &, ...). Used by
// TypeScript, Python, Kotlin, Swift, Scala, and Rust.
func parseColonTyped(token string) types.Parameter {
	p := types.Parameter{}

	// Default value after a top-level "="
	if eq := indexTopLevel(token, '='); eq >= 0 {
		p.DefaultValue = strings.TrimSpace(token[eq+1:])
		p.Optional = true
		token = strings.TrimSpace(token[:eq])
	}

	// Declared type after a top-level ":"
	if colon := indexTopLevel(token, ':'); colon >= 0 {
		p.Type = strings.TrimSpace(token[colon+1:])
		token = strings.TrimSpace(token[:colon])
	}

	if strings.HasSuffix(token, "?") {
		p.Optional = true
		token = strings.TrimSuffix(token, "?")
	}

	p.Name = strings.TrimLeft(token, "*&. \t")
	if p.Name == "" {
		p.Name = "param"
	}
	return p
}

// parseTypeFirst handles "type name = default" declaration order with
// storage keywords stripped. Used by Java, C#, C/C++, Dart, and PHP.
func parseTypeFirst(token string, skipKeywords ...string) types.Parameter {
	p := types.Parameter{}

	if eq := indexTopLevel(token, '='); eq >= 0 {
		p.DefaultValue = strings.TrimSpace(token[eq+1:])
		p.Optional = true
		token = strings.TrimSpace(token[:eq])
	}

	fields := strings.Fields(token)

	// Drop leading storage/passing keywords (final, ref, out, params, ...)
	for len(fields) > 1 {
		dropped := false
		for _, kw := range skipKeywords {
			if fields[0] == kw {
				fields = fields[1:]
				dropped = true
				break
			}
		}
		if !dropped {
			break
		}
	}

	switch len(fields) {
	case 0:
		p.Name = "param"
	case 1:
		p.Name = strings.TrimLeft(fields[0], "*&$.")
	default:
		p.Name = strings.TrimLeft(fields[len(fields)-1], "*&$.")
		p.Type = strings.Join(fields[:len(fields)-1], " ")
	}
	if p.Name == "" {
		p.Name = "param"
	}
	return p
}

// parseNameType handles Go's "name type" order with "...type" variadic
// forms and grouped declarations ("a, b int" arrives pre-split, so a bare
// name token is legal).
func parseNameType(token string) types.Parameter {
	p := types.Parameter{}
	fields := strings.Fields(token)

	switch len(fields) {
	case 0:
		p.Name = "param"
	case 1:
		if strings.HasPrefix(fields[0], "...") {
			p.Name = "param"
			p.Type = strings.TrimPrefix(fields[0], "...")
		} else {
			p.Name = fields[0]
		}
	default:
		p.Name = fields[0]
		p.Type = strings.Join(fields[1:], " ")
	}
	return p
}

// parseNameOnly handles untyped parameter lists (JavaScript, Ruby, Lua)
// where a token is a bare name with an optional default.
func parseNameOnly(token string) types.Parameter {
	p := types.Parameter{}

	if eq := indexTopLevel(token, '='); eq >= 0 {
		p.DefaultValue = strings.TrimSpace(token[eq+1:])
		p.Optional = true
		token = strings.TrimSpace(token[:eq])
	}

	// Ruby keyword argument "name:" or "name: default"
	if colon := indexTopLevel(token, ':'); colon >= 0 {
		rest := strings.TrimSpace(token[colon+1:])
		if rest != "" {
			p.DefaultValue = rest
		}
		p.Optional = true
		token = strings.TrimSpace(token[:colon])
	}

	p.Name = strings.TrimLeft(token, "*&$. \t")
	if p.Name == "" {
		p.Name = "param"
	}
	return p
}

// indexTopLevel returns the index of the first occurrence of ch that is
// not nested inside brackets, generics, or string literals.
func indexTopLevel(s string, ch byte) int {
	depth := 0
	angle := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
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
		default:
			if c == ch && depth == 0 && angle == 0 {
				return i
			}
		}
	}
	return -1
}

// Package encoding provides low-level encoding utilities with no
// dependencies beyond hashing. Base-63 keeps synthesized node IDs short:
// ~6 characters for typical values instead of ~16 for hex.
//
// Base-63 Alphabet: A-Z (0-25), a-z (26-51), 0-9 (52-61), _ (62)
package encoding

import "errors"

// Base-63 encoding constants
const (
	Base63     = 63
	Alphabet63 = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_"
)

// Common errors for encoding operations
var (
	ErrEmptyString = errors.New("empty encoded string")
	ErrInvalidChar = errors.New("invalid character in encoded string")
	ErrOverflow    = errors.New("decoded value overflow")
)

// Base63Encode encodes a uint64 value to a base-63 string.
// Returns "A" for zero (minimum non-empty encoding).
func Base63Encode(value uint64) string {
	if value == 0 {
		return "A"
	}

	// 11 chars is the max length of a base-63 uint64.
	var buf [11]byte
	pos := len(buf)

	for value > 0 {
		pos--
		buf[pos] = Alphabet63[value%Base63]
		value /= Base63
	}

	return string(buf[pos:])
}

// Base63Decode decodes a base-63 string to a uint64 value.
// Returns error for empty strings or invalid characters.
func Base63Decode(encoded string) (uint64, error) {
	if encoded == "" {
		return 0, ErrEmptyString
	}

	var value uint64
	for _, c := range encoded {
		charVal, err := charToValue(c)
		if err != nil {
			return 0, err
		}
		if value > (^uint64(0))/Base63 {
			return 0, ErrOverflow
		}
		value = value*Base63 + charVal
	}

	return value, nil
}

// Base63IsValid checks if a string is a valid base-63 encoded value.
func Base63IsValid(encoded string) bool {
	if encoded == "" {
		return false
	}
	for _, c := range encoded {
		if _, err := charToValue(c); err != nil {
			return false
		}
	}
	return true
}

func charToValue(c rune) (uint64, error) {
	switch {
	case c >= 'A' && c <= 'Z':
		return uint64(c - 'A'), nil
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 26, nil
	case c >= '0' && c <= '9':
		return uint64(c-'0') + 52, nil
	case c == '_':
		return 62, nil
	}
	return 0, ErrInvalidChar
}

// Package sanitize normalizes and constrains raw inputs before they reach
// validation or business logic. All functions are pure and never panic.
package sanitize

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

const maxStringLen = 500

// String trims whitespace, strips the literal characters '<' and '>' and
// truncates to 500 characters. Limits count characters, not bytes, so
// multibyte input is never cut mid-rune. Non-string input yields "".
func String(input any) string {
	s, ok := input.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	if utf8.RuneCountInString(s) > maxStringLen {
		s = string([]rune(s)[:maxStringLen])
	}
	return s
}

// Email trims and lowercases. It does not validate format; that is a
// separate step. Non-string input yields "".
func Email(input any) string {
	s, ok := input.(string)
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// Number coerces input to a float64. The second return value reports whether
// the coercion succeeded, so callers can tell "not a number" apart from a
// legitimate zero.
func Number(input any) (float64, bool) {
	switch v := input.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// URL returns the canonicalized absolute URL string, or "" when the input is
// not a string or does not parse as an absolute URL with a scheme and host.
func URL(input any) string {
	s, ok := input.(string)
	if !ok {
		return ""
	}
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ""
	}
	return u.String()
}

// IsURL reports whether s parses as an absolute URL. Used to reject URLs
// pasted into fields that must hold plain text, like a product name.
func IsURL(s string) bool {
	return URL(s) != ""
}

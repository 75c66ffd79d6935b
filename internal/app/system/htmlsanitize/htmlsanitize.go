// Package htmlsanitize strips markup from free-form text fields before they
// are persisted. Documents posted to the API are stored as sent, and their
// string fields are later rendered by web clients, so any HTML in them is
// removed with bluemonday's strict policy.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// IsPlainText reports whether s contains no tag-like markup.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}

// Sanitize removes all HTML elements from s. The text between tags is
// unescaped again, so "2 bags < 6pm" survives as sent.
func Sanitize(s string) string {
	if IsPlainText(s) {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Fields sanitizes every string value in m in place, descending into
// nested objects and arrays. It returns the number of values changed.
func Fields(m map[string]any) int {
	changed := 0
	for k, v := range m {
		nv, n := value(v)
		if n > 0 {
			m[k] = nv
			changed += n
		}
	}
	return changed
}

func value(v any) (any, int) {
	switch x := v.(type) {
	case string:
		s := Sanitize(x)
		if s != x {
			return s, 1
		}
		return x, 0
	case map[string]any:
		return x, Fields(x)
	case []any:
		n := 0
		for i, e := range x {
			ne, c := value(e)
			if c > 0 {
				x[i] = ne
				n += c
			}
		}
		return x, n
	default:
		return v, 0
	}
}

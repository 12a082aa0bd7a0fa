package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts a CamelCase or mixedCase identifier to snake_case,
// keeping acronyms intact (HTTPServer -> http_server, userID -> user_id).
func ToLowerSnake(s string) string {
	if s == "" {
		return ""
	}

	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range rs {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(rs[i-1]) || unicode.IsDigit(rs[i-1])
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if prevLower || (unicode.IsUpper(rs[i-1]) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

package carousel

import (
	"strconv"
	"strings"
	"unicode"
)

// IndexFromValue returns the position of value in values.
// Before any item has registered (values is empty) a value that starts with a
// non-negative integer ("2", " 3", "4th") is taken as that index. Anything
// else resolves to 0.
func IndexFromValue(value string, values []string) int {
	for i, v := range values {
		if v == value {
			return i
		}
	}

	if len(values) == 0 {
		if n, ok := leadingInt(value); ok && n >= 0 {
			return n
		}
	}

	return 0
}

// ValueFromIndex returns the value registered at index, or the stringified
// index as a placeholder when the slot is out of range.
func ValueFromIndex(index int, values []string) string {
	if index < 0 || index >= len(values) {
		return strconv.Itoa(index)
	}
	return values[index]
}

// leadingInt parses the integer prefix of s after any leading space and an
// optional sign.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(sign + s[:end])
	return n, err == nil
}

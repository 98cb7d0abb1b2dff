package datagen

import "strings"

// TrimPunctuation drops a single leading and trailing double quote, then a
// single trailing "?" and a single trailing ".", and removes every comma.
func TrimPunctuation(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSuffix(s, "?")
	s = strings.TrimSuffix(s, ".")
	return strings.ReplaceAll(s, ",", "")
}

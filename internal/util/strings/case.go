package strings

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// UpperFirst upper-cases the first character of s and leaves the rest alone
// (friends -> Friends, eTag -> ETag)
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// UpperFirstEach upper-cases the first character of every comma-separated
// name and concatenates them (Id,name -> IdName)
func UpperFirstEach(names string) string {
	var result strings.Builder
	for _, name := range strings.Split(names, ",") {
		result.WriteString(UpperFirst(strings.TrimSpace(name)))
	}
	return result.String()
}

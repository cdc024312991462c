package mindmap

import (
	"strings"
	"unicode"
)

// spaceClass is the regexp class of characters isSpace accepts.
const spaceClass = `[\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]`

// isSpace reports whether r is whitespace in the mindmap dialect: the
// Unicode space separators, the ASCII controls \t through \r, the line and
// paragraph separators and the byte order mark. NEL (U+0085) is not space.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return r == '\ufeff' || unicode.IsSpace(r)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

package mindmap

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Header is the first line of every canonical mindmap document.
const Header = "mindmap"

// rootHintPattern matches a hint group injected inside the root label, e.g.
// root((Mona (AI) Kit)). Group 1 is the label prefix, group 2 the remainder
// up to and including the closing "))".
var rootHintPattern = regexp.MustCompile(`(\(\([^()]*?)` + spaceClass + `+\([^()]*?\)(.*?\)\))`)

// Normalize rewrites loosely formatted mindmap text into the canonical
// dialect accepted by Parse. Inline (...) annotations are stripped from every
// line except the root's own ((...)) delimiter, and the "mindmap" header is
// prepended when missing. Normalize never fails; lines it cannot make sense
// of pass through untouched.
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.Contains(line, "root((") {
			lines[i] = stripRootHint(line)
		} else {
			lines[i] = stripAnnotations(line)
		}
	}

	out := strings.Join(lines, "\n")
	if !strings.HasPrefix(out, Header) {
		out = Header + "\n" + out
	}
	return out
}

// stripRootHint removes the first hint group found inside the root label.
func stripRootHint(line string) string {
	loc := rootHintPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return line
	}
	return line[:loc[0]] + line[loc[2]:loc[3]] + line[loc[4]:loc[5]] + line[loc[1]:]
}

// stripAnnotations deletes every "(...)" group on a non-root line, together
// with the whitespace around it, when the group is followed by ':', a word
// character or whitespace. A group closing the line is left alone.
func stripAnnotations(line string) string {
	var b strings.Builder
	last := 0
	for pos := 0; pos < len(line); {
		if end, ok := matchAnnotation(line, pos); ok {
			b.WriteString(line[last:pos])
			last = end
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(line[pos:])
		pos += size
	}
	if last == 0 {
		return line
	}
	b.WriteString(line[last:])
	return b.String()
}

// matchAnnotation tries to match an annotation starting at byte offset start
// and returns the offset just past it.
func matchAnnotation(line string, start int) (int, bool) {
	i := skipSpace(line, start)
	if i >= len(line) || line[i] != '(' {
		return 0, false
	}

	closing := -1
	for j := i + 1; j < len(line); j++ {
		if line[j] == '(' {
			return 0, false
		}
		if line[j] == ')' {
			closing = j
			break
		}
	}
	if closing < 0 {
		return 0, false
	}

	after := closing + 1
	end := skipSpace(line, after)
	if end < len(line) && followsAnnotation(line[end]) {
		return end, true
	}
	// Give back one whitespace character so it can serve as the follower.
	if end > after {
		_, size := utf8.DecodeLastRuneInString(line[after:end])
		return end - size, true
	}
	return 0, false
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isSpace(r) {
			break
		}
		i += size
	}
	return i
}

// followsAnnotation reports whether c may directly follow a stripped group:
// a colon or an ASCII word character.
func followsAnnotation(c byte) bool {
	return c == ':' || c == '_' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

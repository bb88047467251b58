package parser

import "strings"

// piece is either a run of text or a single tag.
type piece struct {
	isTag   bool
	text    string
	name    string // upper-case tag name
	closing bool
	attrs   string // raw attribute text
}

// lexer splits tag soup into pieces. It does not check nesting.
type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (piece, bool) {
	for l.pos < len(l.src) {
		rest := l.src[l.pos:]

		lt := strings.IndexByte(rest, '<')
		if lt != 0 {
			if lt < 0 {
				lt = len(rest)
			}
			l.pos += lt
			return piece{text: rest[:lt]}, true
		}

		if strings.HasPrefix(rest, "<!--") {
			l.pos += skipTo(rest, "-->", 4)
			continue
		}

		// Tags and declarations never span lines; comments may.
		line := rest
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			line = rest[:nl]
		}

		if strings.HasPrefix(line, "<!") || strings.HasPrefix(line, "<?") {
			if gt := strings.IndexByte(line, '>'); gt >= 0 {
				l.pos += gt + 1
				continue
			}
		}

		closing := len(line) > 1 && line[1] == '/'
		start := 1
		if closing {
			start = 2
		}
		end := start
		for end < len(line) && isNameByte(line[end]) {
			end++
		}
		tagEnd := -1
		if end > start {
			tagEnd = findTagEnd(line, end)
		}
		if tagEnd < 0 {
			// A '<' that does not start a tag on this line is plain text.
			l.pos++
			return piece{text: "<"}, true
		}

		l.pos += tagEnd + 1
		return piece{
			isTag:   true,
			name:    strings.ToUpper(line[start:end]),
			closing: closing,
			attrs:   line[end:tagEnd],
		}, true
	}
	return piece{}, false
}

// findTagEnd returns the index of the '>' closing the tag that starts at
// line[0], skipping quoted attribute values. If a quote is still open at
// the end of the line, the first '>' after from is used instead. It
// returns -1 when the line has no '>'.
func findTagEnd(line string, from int) int {
	var quote byte
	prev := byte(0)
	for i := from; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case (c == '"' || c == '\'') && prev == '=':
			quote = c
		case c == '>':
			return i
		}
		if !isSpace(c) {
			prev = c
		}
	}
	if quote != 0 {
		if gt := strings.IndexByte(line[from:], '>'); gt >= 0 {
			return from + gt
		}
	}
	return -1
}

func skipTo(s, marker string, from int) int {
	if i := strings.Index(s[from:], marker); i >= 0 {
		return from + i + len(marker)
	}
	return len(s)
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

package parser

import "strings"

// Attr is the upper-case name of a tag attribute the decoder understands.
type Attr string

const (
	AttrHref    Attr = "HREF"
	AttrIcon    Attr = "ICON"
	AttrAddDate Attr = "ADD_DATE"
	AttrTags    Attr = "TAGS"
	AttrPrivate Attr = "PRIVATE"
)

// Attributes maps upper-case attribute names to their raw values.
type Attributes map[string]string

// Get returns the raw value of a and whether the attribute was present.
func (a Attributes) Get(name Attr) (string, bool) {
	v, ok := a[string(name)]
	return v, ok
}

// ExtractAttributes parses the attribute part of a tag (everything after the
// tag name). Values are returned verbatim; they are not entity-decoded.
// A malformed attribute is dropped and extraction continues after it.
func ExtractAttributes(text string) Attributes {
	attrs := Attributes{}
	i, n := 0, len(text)

	for i < n {
		i = skipSpace(text, i)
		if i >= n {
			break
		}

		start := i
		for i < n && !isSpace(text[i]) && !strings.ContainsRune("=>/\"'", rune(text[i])) {
			i++
		}
		if i == start {
			// Stray delimiter where a name should be.
			i = skipJunk(text, i)
			continue
		}
		name := strings.ToUpper(text[start:i])

		j := skipSpace(text, i)
		if j >= n || text[j] != '=' {
			setOnce(attrs, name, "")
			i = j
			continue
		}
		i = skipSpace(text, j+1)
		if i >= n {
			setOnce(attrs, name, "")
			break
		}

		switch q := text[i]; q {
		case '"', '\'':
			end := strings.IndexByte(text[i+1:], q)
			if end < 0 {
				// Unterminated quote swallows the rest of the tag.
				return attrs
			}
			setOnce(attrs, name, text[i+1:i+1+end])
			i += end + 2
		default:
			start = i
			for i < n && !isSpace(text[i]) && text[i] != '>' {
				i++
			}
			setOnce(attrs, name, text[start:i])
		}
	}

	return attrs
}

func setOnce(attrs Attributes, name, value string) {
	if _, ok := attrs[name]; !ok {
		attrs[name] = value
	}
}

// skipJunk advances past a run of delimiters and any value that
// hangs off them, up to the next whitespace.
func skipJunk(s string, i int) int {
	if i < len(s) && (s[i] == '"' || s[i] == '\'') {
		if end := strings.IndexByte(s[i+1:], s[i]); end >= 0 {
			return i + end + 2
		}
		return len(s)
	}
	for i < len(s) && !isSpace(s[i]) {
		i++
	}
	return i
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

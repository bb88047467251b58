package parser

import (
	"iter"
	"strings"

	"golang.org/x/net/html"
)

// TokenKind identifies a structural event of a bookmark document.
type TokenKind int

const (
	TokenFolderOpen TokenKind = iota + 1
	TokenFolderClose
	TokenBookmark
	TokenDescription
)

func (k TokenKind) String() string {
	switch k {
	case TokenFolderOpen:
		return "FolderOpen"
	case TokenFolderClose:
		return "FolderClose"
	case TokenBookmark:
		return "Bookmark"
	case TokenDescription:
		return "Description"
	}
	return "Unknown"
}

// Token is one event produced by Tokenize.
// Text is the folder title, the link text or the description.
// Attrs is only set for bookmarks.
type Token struct {
	Kind  TokenKind
	Text  string
	Attrs Attributes
}

// Tokenize scans a bookmark document and yields its structural events in
// document order. It never fails: markup it does not understand is skipped.
func Tokenize(doc string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		t := &tokenizer{lex: lexer{src: normalizeLines(doc)}}
		for {
			tok, ok := t.next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// normalizeLines unifies line endings and strips the indentation and
// trailing blanks of every line.
func normalizeLines(doc string) string {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	doc = strings.ReplaceAll(doc, "\r", "\n")
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		lines[i] = strings.Trim(line, " \t")
	}
	return strings.Join(lines, "\n")
}

type scanMode int

const (
	modeIdle scanMode = iota
	modeRootTitle
	modeHeading
	modeAnchor
	modeAfterBookmark
)

type tokenizer struct {
	lex   lexer
	queue []Token

	mode  scanMode
	text  strings.Builder
	attrs Attributes

	// lists holds one entry per open <DL>; true when the list belongs to a folder.
	lists         []bool
	pendingFolder bool
	done          bool
}

func (t *tokenizer) next() (Token, bool) {
	for len(t.queue) == 0 {
		if t.done {
			return Token{}, false
		}
		p, ok := t.lex.next()
		if !ok {
			t.finish()
			t.done = true
			continue
		}
		if p.isTag {
			t.handleTag(p)
		} else {
			t.handleText(p.text)
		}
	}
	tok := t.queue[0]
	t.queue = t.queue[1:]
	return tok, true
}

func (t *tokenizer) emit(tok Token) {
	t.queue = append(t.queue, tok)
}

func (t *tokenizer) handleText(s string) {
	switch t.mode {
	case modeRootTitle, modeHeading, modeAnchor, modeAfterBookmark:
		t.text.WriteString(s)
	}
}

func (t *tokenizer) handleTag(p piece) {
	structural := isStructural(p)

	switch t.mode {
	case modeAnchor:
		if (p.closing && p.name == "A") || (!p.closing && p.name == "DD") {
			t.endAnchor()
			t.mode = modeAfterBookmark
			return
		}
		if !structural {
			return
		}
		t.endAnchor()
	case modeHeading:
		if p.closing && isHeading(p.name) {
			t.endHeading()
			return
		}
		if !structural {
			return
		}
		t.endHeading()
	case modeRootTitle:
		if p.closing && isHeading(p.name) {
			t.reset()
			return
		}
		if !structural {
			return
		}
		t.reset()
	case modeAfterBookmark:
		if !structural {
			return
		}
		t.endDescription()
	}

	if !structural {
		return
	}

	switch {
	case p.name == "DL" && p.closing:
		t.closePending()
		if len(t.lists) == 0 {
			t.emit(Token{Kind: TokenFolderClose})
			return
		}
		owned := t.lists[len(t.lists)-1]
		t.lists = t.lists[:len(t.lists)-1]
		if owned {
			t.emit(Token{Kind: TokenFolderClose})
		}
	case p.name == "DL":
		t.lists = append(t.lists, t.pendingFolder)
		t.pendingFolder = false
	case p.name == "H1":
		t.closePending()
		t.mode = modeRootTitle
	case isHeading(p.name):
		t.closePending()
		t.mode = modeHeading
	case p.name == "A":
		t.closePending()
		t.mode = modeAnchor
		t.attrs = ExtractAttributes(p.attrs)
	}
}

// closePending ends a folder whose heading was not followed by a list.
func (t *tokenizer) closePending() {
	if t.pendingFolder {
		t.pendingFolder = false
		t.emit(Token{Kind: TokenFolderClose})
	}
}

func (t *tokenizer) endAnchor() {
	t.emit(Token{
		Kind:  TokenBookmark,
		Text:  decodeText(t.text.String()),
		Attrs: t.attrs,
	})
	t.attrs = nil
	t.reset()
}

func (t *tokenizer) endHeading() {
	t.emit(Token{Kind: TokenFolderOpen, Text: decodeText(t.text.String())})
	t.pendingFolder = true
	t.reset()
}

func (t *tokenizer) endDescription() {
	if text := decodeText(t.text.String()); text != "" {
		t.emit(Token{Kind: TokenDescription, Text: text})
	}
	t.reset()
}

func (t *tokenizer) reset() {
	t.mode = modeIdle
	t.text.Reset()
}

func (t *tokenizer) finish() {
	switch t.mode {
	case modeAnchor:
		t.endAnchor()
	case modeAfterBookmark:
		t.endDescription()
	default:
		t.reset()
	}
}

func decodeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}

func isHeading(name string) bool {
	return len(name) == 2 && name[0] == 'H' && name[1] >= '1' && name[1] <= '6'
}

func isStructural(p piece) bool {
	if p.closing {
		return p.name == "DL"
	}
	switch p.name {
	case "DT", "DL", "A":
		return true
	}
	return isHeading(p.name)
}

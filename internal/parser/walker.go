package parser

import (
	"iter"
	"slices"
)

// Entry is a bookmark token together with its folder context, before
// normalization.
type Entry struct {
	Attrs       Attributes
	Name        string
	Description *string
	// Folders lists the enclosing folder titles, outermost first.
	Folders []string
}

// Walk consumes tokens once and returns one entry per bookmark token, in
// token order. Folder depth lives on an explicit stack; a close without a
// matching open is ignored.
func Walk(tokens iter.Seq[Token]) []Entry {
	var (
		entries []Entry
		folders []string
		pending *Entry
	)

	flush := func() {
		if pending != nil {
			entries = append(entries, *pending)
			pending = nil
		}
	}

	for tok := range tokens {
		switch tok.Kind {
		case TokenFolderOpen:
			flush()
			folders = append(folders, tok.Text)
		case TokenFolderClose:
			flush()
			if len(folders) > 0 {
				folders = folders[:len(folders)-1]
			}
		case TokenBookmark:
			flush()
			pending = &Entry{
				Attrs:   tok.Attrs,
				Name:    tok.Text,
				Folders: slices.Clone(folders),
			}
		case TokenDescription:
			// Only the token right after a bookmark describes it.
			if pending != nil {
				text := tok.Text
				pending.Description = &text
			}
			flush()
		}
	}
	flush()

	return entries
}

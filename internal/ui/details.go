package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dastanaron/netscape-bookmarks/internal/models"

	"github.com/rivo/tview"
)

// folderItem is one row of the folder list.
type folderItem struct {
	ID    *int // nil for "All Bookmarks"
	Name  string
	Level int
}

// folderTree orders folders depth-first under their parents, with the
// "All Bookmarks" row first. Folders whose parent is missing are roots.
func folderTree(folders []models.Folder) []folderItem {
	known := make(map[int]bool, len(folders))
	for _, f := range folders {
		known[f.ID] = true
	}
	children := make(map[int][]models.Folder)
	var roots []models.Folder
	for _, f := range folders {
		if f.ParentID == nil || !known[*f.ParentID] {
			roots = append(roots, f)
			continue
		}
		children[*f.ParentID] = append(children[*f.ParentID], f)
	}

	items := []folderItem{{Name: "All Bookmarks"}}
	// Iterative walk; level 0 is reserved for the "All" row.
	type frame struct {
		folder models.Folder
		level  int
	}
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{roots[i], 1})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := top.folder.ID
		items = append(items, folderItem{ID: &id, Name: top.folder.Name, Level: top.level})

		kids := children[id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], top.level + 1})
		}
	}
	return items
}

func (f folderItem) label() string {
	if f.Level <= 1 {
		return f.Name
	}
	return strings.Repeat("  ", f.Level-1) + "└─ " + f.Name
}

// renderBookmark formats the detail pane for a bookmark.
func renderBookmark(b *models.Bookmark) string {
	folderName := "/"
	if b.FolderName != nil {
		folderName = *b.FolderName
	}

	tags := "-"
	if len(b.Tags) > 0 {
		tags = strings.Join(b.Tags, ", ")
	}

	created := "-"
	if b.CreatedAt != nil {
		created = time.Unix(*b.CreatedAt, 0).UTC().Format("2006-01-02 15:04:05 MST")
	}

	visibility := "unknown"
	if b.Public != nil {
		visibility = "private"
		if *b.Public {
			visibility = "public"
		}
	}

	return fmt.Sprintf(
		"[::b]Title:[::-]\n%s\n\n[::b]URL:[::-]\n%s\n\n[::b]Tags:[::-]\n%s\n\n[::b]Created:[::-]\n%s\n\n[::b]Visibility:[::-]\n%s\n\n[::b]Folder:[::-]\n%s\n\n[::b]Description:[::-]\n%s",
		tview.Escape(b.Title), tview.Escape(b.URL), tview.Escape(tags), created, visibility,
		tview.Escape(folderName), tview.Escape(b.Description))
}

// renderFolder formats the detail pane for a folder.
func renderFolder(name, parent string) string {
	return fmt.Sprintf("[::b]Type:[::-]\nFolder\n\n[::b]Name:[::-]\n%s\n\n[::b]Parent:[::-]\n%s",
		tview.Escape(name), tview.Escape(parent))
}

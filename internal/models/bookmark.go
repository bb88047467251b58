package models

// ItemType represents the type of item (bookmark or folder)
type ItemType string

const (
	ItemTypeBookmark ItemType = "bookmark"
	ItemTypeFolder   ItemType = "folder"
)

// Record is one decoded entry of a bookmark export file.
// Optional fields are nil when the source carried no usable value.
type Record struct {
	Name        string   `json:"name"`
	Image       *string  `json:"image"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Description *string  `json:"description"`
	DateCreated *int64   `json:"dateCreated"`
	Public      *bool    `json:"public"`
}

// Folder represents a bookmark folder
type Folder struct {
	ID       int
	Name     string
	ParentID *int
}

// Bookmark represents a stored bookmark entry
type Bookmark struct {
	ID          int
	Title       string
	URL         string
	Description string
	Icon        *string // Base64-encoded icon image (nullable)
	Tags        []string
	CreatedAt   *int64 // Unix seconds
	Public      *bool
	FolderID    *int
	FolderName  *string
}

// BookmarkFromRecord converts a decoded record into a bookmark placed in folderID.
func BookmarkFromRecord(r Record, folderID *int) Bookmark {
	b := Bookmark{
		Title:     r.Name,
		URL:       r.URL,
		Icon:      r.Image,
		Tags:      append([]string(nil), r.Tags...),
		CreatedAt: r.DateCreated,
		Public:    r.Public,
		FolderID:  folderID,
	}
	if r.Description != nil {
		b.Description = *r.Description
	}
	return b
}

// Item represents a unified item that can be either a bookmark or a folder
// Used for displaying folder contents with both bookmarks and subfolders
type Item struct {
	Type        ItemType // "bookmark" or "folder"
	ID          int
	Name        string  // Title for bookmarks, Name for folders
	URL         *string // Only for bookmarks, nil for folders
	Description *string // Only for bookmarks, nil for folders
	Icon        *string // Only for bookmarks, nil for folders
	ParentID    *int    // folder_id for bookmarks, parent_id for folders
}

package repository

import "github.com/dastanaron/netscape-bookmarks/internal/models"

// BookmarkRepository defines operations for bookmarks
type BookmarkRepository interface {
	List() ([]models.Bookmark, error)
	GetByID(id int) (*models.Bookmark, error)
	GetByURL(url string) (*models.Bookmark, error)
	Create(b *models.Bookmark) error
	// Upsert creates a new bookmark if URL doesn't exist, otherwise updates the existing one.
	// Returns true if created, false if updated.
	Upsert(b *models.Bookmark) (bool, error)
	Delete(id int) error
}

// FolderRepository defines operations for folders
type FolderRepository interface {
	List() ([]models.Folder, error)
	GetByID(id int) (*models.Folder, error)
	Delete(id int) error
	// Upsert returns the folder called name under parentID, creating it if needed.
	Upsert(name string, parentID *int) (*models.Folder, error)
	// GetFolderContent returns subfolders and bookmarks of a folder; nil means the root.
	GetFolderContent(folderID *int) ([]models.Item, error)
}

// Repository combines all repositories
type Repository interface {
	Bookmarks() BookmarkRepository
	Folders() FolderRepository
	Close() error
}

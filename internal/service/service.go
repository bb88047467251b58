package service

import (
	"strings"

	"github.com/dastanaron/netscape-bookmarks/internal/models"
	"github.com/dastanaron/netscape-bookmarks/internal/repository"
)

// BookmarkService provides business logic for bookmarks
type BookmarkService struct {
	repo repository.Repository
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(repo repository.Repository) *BookmarkService {
	return &BookmarkService{repo: repo}
}

// ListAll returns all bookmarks
func (s *BookmarkService) ListAll() ([]models.Bookmark, error) {
	return s.repo.Bookmarks().List()
}

// Search filters all bookmarks by query string
func (s *BookmarkService) Search(query string) ([]models.Bookmark, error) {
	return s.SearchInFolder(query, nil)
}

// GetByFolderID returns bookmarks in a specific folder
func (s *BookmarkService) GetByFolderID(folderID *int) ([]models.Bookmark, error) {
	all, err := s.repo.Bookmarks().List()
	if err != nil {
		return nil, err
	}

	if folderID == nil {
		return all, nil
	}

	var filtered []models.Bookmark
	for _, b := range all {
		if b.FolderID != nil && *b.FolderID == *folderID {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// SearchInFolder filters bookmarks by query string within a specific folder.
// Title, URL, description and tags are matched case-insensitively.
func (s *BookmarkService) SearchInFolder(query string, folderID *int) ([]models.Bookmark, error) {
	all, err := s.GetByFolderID(folderID)
	if err != nil {
		return nil, err
	}

	if query == "" {
		return all, nil
	}

	var filtered []models.Bookmark
	for _, b := range all {
		if Matches(b, query) {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// Matches reports whether query occurs in the bookmark's title, URL,
// description or one of its tags.
func Matches(b models.Bookmark, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.URL), q) ||
		strings.Contains(strings.ToLower(b.Description), q) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// GetByID returns a bookmark by ID
func (s *BookmarkService) GetByID(id int) (*models.Bookmark, error) {
	return s.repo.Bookmarks().GetByID(id)
}

// Create creates a new bookmark
func (s *BookmarkService) Create(b *models.Bookmark) error {
	return s.repo.Bookmarks().Create(b)
}

// Upsert creates a new bookmark if its URL is not stored yet, otherwise it
// overwrites the oldest bookmark with that URL. Returns true if created.
func (s *BookmarkService) Upsert(b *models.Bookmark) (bool, error) {
	return s.repo.Bookmarks().Upsert(b)
}

// Delete deletes a bookmark by ID
func (s *BookmarkService) Delete(id int) error {
	return s.repo.Bookmarks().Delete(id)
}

// FolderService provides business logic for folders
type FolderService struct {
	repo repository.Repository
}

// NewFolderService creates a new folder service
func NewFolderService(repo repository.Repository) *FolderService {
	return &FolderService{repo: repo}
}

// ListAll returns all folders
func (s *FolderService) ListAll() ([]models.Folder, error) {
	return s.repo.Folders().List()
}

// GetByID returns a folder by ID
func (s *FolderService) GetByID(id int) (*models.Folder, error) {
	return s.repo.Folders().GetByID(id)
}

// EnsurePath creates the folder chain path (outermost first) as needed and
// returns the ID of the innermost folder. An empty path is the root (nil).
func (s *FolderService) EnsurePath(path []string) (*int, error) {
	var parentID *int
	for _, name := range path {
		folder, err := s.repo.Folders().Upsert(name, parentID)
		if err != nil {
			return nil, err
		}
		id := folder.ID
		parentID = &id
	}
	return parentID, nil
}

// Delete deletes a folder by ID
func (s *FolderService) Delete(id int) error {
	return s.repo.Folders().Delete(id)
}

// GetFolderContent returns all items (bookmarks and subfolders) in a folder
// If folderID is nil, returns all root items (bookmarks without folder and root folders)
func (s *FolderService) GetFolderContent(folderID *int) ([]models.Item, error) {
	return s.repo.Folders().GetFolderContent(folderID)
}

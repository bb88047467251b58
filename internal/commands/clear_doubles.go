package commands

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/dastanaron/netscape-bookmarks/internal/repository"
	"github.com/dastanaron/netscape-bookmarks/internal/service"
)

// ClearDoublesCommand handles removal of duplicate bookmarks
type ClearDoublesCommand struct {
	bookmarkSvc *service.BookmarkService
	logger      *slog.Logger
	out         io.Writer
}

// NewClearDoublesCommand creates a new clear doubles command
func NewClearDoublesCommand(repo repository.Repository, logger *slog.Logger, out io.Writer) *ClearDoublesCommand {
	return &ClearDoublesCommand{
		bookmarkSvc: service.NewBookmarkService(repo),
		logger:      logger,
		out:         out,
	}
}

// Execute removes duplicate bookmarks. The oldest row (lowest ID) of every
// URL is kept.
func (c *ClearDoublesCommand) Execute() error {
	allBookmarks, err := c.bookmarkSvc.ListAll()
	if err != nil {
		return fmt.Errorf("failed to get bookmarks: %w", err)
	}
	sort.SliceStable(allBookmarks, func(i, j int) bool {
		return allBookmarks[i].ID < allBookmarks[j].ID
	})

	seenURLs := make(map[string]int) // URL -> ID of bookmark to keep
	var duplicatesToDelete []int

	for _, bookmark := range allBookmarks {
		if bookmark.URL == "" {
			continue
		}

		if existingID, exists := seenURLs[bookmark.URL]; exists {
			duplicatesToDelete = append(duplicatesToDelete, bookmark.ID)
			c.logger.Debug("found duplicate", "title", bookmark.Title, "id", bookmark.ID, "keep", existingID)
		} else {
			seenURLs[bookmark.URL] = bookmark.ID
		}
	}

	if len(duplicatesToDelete) == 0 {
		fmt.Fprintln(c.out, "No duplicate bookmarks found.")
		return nil
	}

	deleted := 0
	for _, id := range duplicatesToDelete {
		if err := c.bookmarkSvc.Delete(id); err != nil {
			c.logger.Warn("failed to delete bookmark", "id", id, "err", err)
			continue
		}
		deleted++
	}

	fmt.Fprintf(c.out, "Deleted %d duplicate bookmark(s).\n", deleted)
	return nil
}

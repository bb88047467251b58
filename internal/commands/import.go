package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dastanaron/netscape-bookmarks/internal/models"
	"github.com/dastanaron/netscape-bookmarks/internal/parser"
	"github.com/dastanaron/netscape-bookmarks/internal/repository"
	"github.com/dastanaron/netscape-bookmarks/internal/service"
)

// ImportCommand handles bookmark import from HTML files
type ImportCommand struct {
	bookmarkSvc *service.BookmarkService
	folderSvc   *service.FolderService
	parser      *parser.Parser
	logger      *slog.Logger
	out         io.Writer
	Concurrency int
	// Merge overwrites a stored bookmark with the same URL instead of
	// adding another one.
	Merge bool
}

// NewImportCommand creates a new import command
func NewImportCommand(repo repository.Repository, p *parser.Parser, logger *slog.Logger, out io.Writer) *ImportCommand {
	return &ImportCommand{
		bookmarkSvc: service.NewBookmarkService(repo),
		folderSvc:   service.NewFolderService(repo),
		parser:      p,
		logger:      logger,
		out:         out,
		Concurrency: DefaultConcurrency,
	}
}

// Execute imports bookmarks from HTML files. Files are decoded in
// parallel and stored in argument order; every record keeps the folder
// it was found in.
func (c *ImportCommand) Execute(ctx context.Context, paths ...string) error {
	results, err := decodeFiles(ctx, c.parser, c.logger, c.Concurrency, paths)
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	folders := make(map[string]*int)
	imported, updated := 0, 0
	for i, located := range results {
		fileImported := 0
		for _, l := range located {
			key := strings.Join(l.Folders, "\x00")
			folderID, ok := folders[key]
			if !ok {
				folderID, err = c.folderSvc.EnsurePath(l.Folders)
				if err != nil {
					c.logger.Warn("failed to create folder",
						"file", paths[i], "folder", strings.Join(l.Folders, "/"), "err", err)
					continue
				}
				folders[key] = folderID
			}

			b := models.BookmarkFromRecord(l.Record, folderID)
			if !c.Merge {
				if err := c.bookmarkSvc.Create(&b); err != nil {
					c.logger.Warn("failed to import bookmark", "file", paths[i], "title", b.Title, "err", err)
					continue
				}
				fileImported++
				continue
			}

			created, err := c.bookmarkSvc.Upsert(&b)
			if err != nil {
				c.logger.Warn("failed to merge bookmark", "file", paths[i], "title", b.Title, "err", err)
				continue
			}
			if created {
				fileImported++
			} else {
				c.logger.Debug("updated bookmark", "id", b.ID, "url", b.URL)
				updated++
			}
		}
		c.logger.Info("imported file", "file", paths[i], "records", len(located), "imported", fileImported)
		imported += fileImported
	}

	if c.Merge {
		fmt.Fprintf(c.out, "Imported %d bookmarks, updated %d.\n", imported, updated)
		return nil
	}
	fmt.Fprintf(c.out, "Imported %d bookmarks.\n", imported)
	return nil
}

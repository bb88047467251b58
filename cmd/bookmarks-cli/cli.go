package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dastanaron/netscape-bookmarks/internal/commands"
	"github.com/dastanaron/netscape-bookmarks/internal/config"
	"github.com/dastanaron/netscape-bookmarks/internal/repository"
	"github.com/dastanaron/netscape-bookmarks/internal/service"
	"github.com/dastanaron/netscape-bookmarks/internal/ui"
)

// Dependencies holds configuration and services for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *config.Config

	repo *repository.SQLiteRepository
}

// Repository opens the database on first use.
func (d *Dependencies) Repository() (repository.Repository, error) {
	if d.repo != nil {
		return d.repo, nil
	}

	// Ensure database directory exists
	if err := os.MkdirAll(filepath.Dir(d.Config.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	repo, err := repository.NewSQLiteRepository(d.Config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database at %q: %w", d.Config.DBPath, err)
	}
	d.Logger.Debug("opened database", "path", d.Config.DBPath)
	d.repo = repo
	return repo, nil
}

// Close releases the database if it was opened.
func (d *Dependencies) Close() error {
	if d.repo != nil {
		return d.repo.Close()
	}
	return nil
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB           string `name:"db" type:"path" env:"BOOKMARKS_DB" help:"Path to database file (default: ~/.bookmarks/bookmarks.db)"`
	Encoding     string `env:"BOOKMARKS_ENCODING" help:"Charset of input files, e.g. windows-1252 (default: detect)"`
	NoNestedTags bool   `help:"Do not add enclosing folder titles to bookmark tags"`
	Verbose      bool   `short:"v" help:"Enable debug logging"`

	Import       ImportCmd       `cmd:"" help:"Import HTML bookmark files into the database"`
	Decode       DecodeCmd       `cmd:"" help:"Print the bookmarks of HTML bookmark files as JSON"`
	ClearDoubles ClearDoublesCmd `cmd:"" name:"clear-doubles" help:"Remove duplicate bookmarks (same URL)"`
	Browse       BrowseCmd       `cmd:"" default:"1" help:"Browse imported bookmarks in the terminal"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Files       []string `arg:"" type:"existingfile" help:"Bookmark files to import"`
	Concurrency int      `short:"c" default:"4" help:"Files decoded in parallel"`
	Merge       bool     `short:"m" help:"Update bookmarks whose URL is already stored instead of adding duplicates"`
}

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	repo, err := deps.Repository()
	if err != nil {
		return err
	}
	cmd := commands.NewImportCommand(repo, deps.Config.NewParser(), deps.Logger, deps.Stdout)
	cmd.Concurrency = c.Concurrency
	cmd.Merge = c.Merge
	if err := cmd.Execute(deps.Ctx, c.Files...); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return nil
}

// DecodeCmd is the "decode" subcommand.
type DecodeCmd struct {
	Files       []string `arg:"" type:"existingfile" help:"Bookmark files to decode"`
	Concurrency int      `short:"c" default:"4" help:"Files decoded in parallel"`
}

// Run executes the decode command.
func (c *DecodeCmd) Run(deps *Dependencies) error {
	cmd := commands.NewDecodeCommand(deps.Config.NewParser(), deps.Logger, deps.Stdout)
	cmd.Concurrency = c.Concurrency
	if err := cmd.Execute(deps.Ctx, c.Files...); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	return nil
}

// ClearDoublesCmd is the "clear-doubles" subcommand.
type ClearDoublesCmd struct{}

// Run executes the clear-doubles command.
func (c *ClearDoublesCmd) Run(deps *Dependencies) error {
	repo, err := deps.Repository()
	if err != nil {
		return err
	}
	if err := commands.NewClearDoublesCommand(repo, deps.Logger, deps.Stdout).Execute(); err != nil {
		return fmt.Errorf("clear doubles failed: %w", err)
	}
	return nil
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct{}

// Run starts the terminal browser.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	repo, err := deps.Repository()
	if err != nil {
		return err
	}
	app := ui.NewApp(service.NewBookmarkService(repo), service.NewFolderService(repo))
	return app.Run()
}

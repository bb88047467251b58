package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/alecthomas/kong"
	"github.com/dastanaron/netscape-bookmarks/internal/config"
)

func main() {
	if err := Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Run parses args and executes the selected command.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bookmarks-cli"),
		kong.Description("Import, decode and browse Netscape bookmark files."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Help must not fall through to the default command.
	if slices.Contains(args, "--help") || slices.Contains(args, "-h") {
		_, _ = parser.Parse(args)
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.NewConfig().
		WithKeepNestedTags(!cli.NoNestedTags).
		WithEncoding(cli.Encoding)
	if cli.DB != "" {
		cfg.WithDBPath(cli.DB)
	}
	deps.Config = cfg
	defer deps.Close()

	return kongCtx.Run(deps)
}

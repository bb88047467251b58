package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/dastanaron/netscape-bookmarks/internal/models"
	"github.com/dastanaron/netscape-bookmarks/internal/parser"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files decoded in parallel.
const DefaultConcurrency = 4

// DecodeCommand prints the records of bookmark files as JSON
type DecodeCommand struct {
	parser      *parser.Parser
	logger      *slog.Logger
	out         io.Writer
	Concurrency int
}

// NewDecodeCommand creates a new decode command writing to out
func NewDecodeCommand(p *parser.Parser, logger *slog.Logger, out io.Writer) *DecodeCommand {
	return &DecodeCommand{
		parser:      p,
		logger:      logger,
		out:         out,
		Concurrency: DefaultConcurrency,
	}
}

// Execute decodes every file and writes one JSON array with all records,
// in argument order.
func (c *DecodeCommand) Execute(ctx context.Context, paths ...string) error {
	results, err := decodeFiles(ctx, c.parser, c.logger, c.Concurrency, paths)
	if err != nil {
		return err
	}

	records := []models.Record{}
	for _, located := range results {
		for _, l := range located {
			records = append(records, l.Record)
		}
	}

	enc := json.NewEncoder(c.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// decodeFiles decodes paths concurrently. Results are indexed like paths.
// The first read error cancels the remaining work.
func decodeFiles(ctx context.Context, p *parser.Parser, logger *slog.Logger, concurrency int, paths []string) ([][]parser.LocatedRecord, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([][]parser.LocatedRecord, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			located, err := p.ParseFileLocated(path)
			if err != nil {
				return err
			}
			logger.Debug("decoded", "file", path, "records", len(located))
			results[i] = located
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

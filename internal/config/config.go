package config

import (
	"os"
	"path/filepath"

	"github.com/dastanaron/netscape-bookmarks/internal/parser"
)

// Config holds application configuration
type Config struct {
	DBPath string
	// KeepNestedTags adds enclosing folder titles to bookmark tags on decode.
	KeepNestedTags bool
	// Encoding of input files; empty means detect it.
	Encoding string
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		DBPath:         getDefaultDBPath(),
		KeepNestedTags: true,
	}
}

// WithDBPath sets a custom database path
func (c *Config) WithDBPath(path string) *Config {
	c.DBPath = path
	return c
}

// WithKeepNestedTags sets whether folder titles become tags
func (c *Config) WithKeepNestedTags(keep bool) *Config {
	c.KeepNestedTags = keep
	return c
}

// WithEncoding forces the charset used to read input files
func (c *Config) WithEncoding(label string) *Config {
	c.Encoding = label
	return c
}

// NewParser builds a bookmark parser from the configuration
func (c *Config) NewParser() *parser.Parser {
	p := parser.NewParser(parser.NewConfig().WithKeepNestedTags(c.KeepNestedTags))
	p.Encoding = c.Encoding
	return p
}

func getDefaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "bookmarks.db"
	}
	return filepath.Join(homeDir, ".bookmarks", "bookmarks.db")
}

package parser

import (
	"iter"

	"github.com/dastanaron/netscape-bookmarks/internal/models"
)

// Config holds decoder options
type Config struct {
	// KeepNestedTags adds the titles of enclosing folders to each record's tags.
	KeepNestedTags bool
}

// NewConfig creates a decoder configuration with defaults
func NewConfig() *Config {
	return &Config{KeepNestedTags: true}
}

// WithKeepNestedTags sets whether folder titles become tags
func (c *Config) WithKeepNestedTags(keep bool) *Config {
	c.KeepNestedTags = keep
	return c
}

// Decoder turns bookmark documents into records. It keeps no state between
// calls and may be shared between goroutines.
type Decoder struct {
	cfg Config
}

// NewDecoder creates a decoder. A nil cfg means NewConfig().
func NewDecoder(cfg *Config) *Decoder {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Decoder{cfg: *cfg}
}

// Decode returns the records of doc in document order.
func (d *Decoder) Decode(doc string) []models.Record {
	records := []models.Record{}
	for _, r := range d.Entries(doc) {
		records = append(records, r)
	}
	return records
}

// Entries yields every record of doc with the folder path it was found in.
func (d *Decoder) Entries(doc string) iter.Seq2[[]string, models.Record] {
	return func(yield func([]string, models.Record) bool) {
		for _, e := range Walk(Tokenize(doc)) {
			r, ok := Normalize(e, &d.cfg)
			if !ok {
				continue
			}
			if !yield(e.Folders, r) {
				return
			}
		}
	}
}

package parser

import (
	"github.com/dastanaron/netscape-bookmarks/internal/models"
	"github.com/dastanaron/netscape-bookmarks/internal/source"
)

// Parser parses bookmark files and strings
type Parser struct {
	decoder *Decoder
	// Encoding forces the charset of files; empty means detect it.
	Encoding string
}

// NewParser creates a new parser
func NewParser(cfg *Config) *Parser {
	return &Parser{decoder: NewDecoder(cfg)}
}

// ParseFile reads and decodes the bookmark file at path.
func (p *Parser) ParseFile(path string) ([]models.Record, error) {
	text, err := source.ReadFile(path, p.Encoding)
	if err != nil {
		return nil, err
	}
	return p.decoder.Decode(text), nil
}

// ParseString decodes an in-memory bookmark document.
func (p *Parser) ParseString(text string) []models.Record {
	return p.decoder.Decode(text)
}

// LocatedRecord is a record with the folder path it was found in.
type LocatedRecord struct {
	Folders []string
	Record  models.Record
}

// ParseFileLocated is ParseFile keeping the folder path of every record.
func (p *Parser) ParseFileLocated(path string) ([]LocatedRecord, error) {
	text, err := source.ReadFile(path, p.Encoding)
	if err != nil {
		return nil, err
	}

	var located []LocatedRecord
	for folders, r := range p.decoder.Entries(text) {
		located = append(located, LocatedRecord{Folders: folders, Record: r})
	}
	return located, nil
}

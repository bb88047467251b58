package parser

import (
	"strconv"
	"strings"

	"github.com/dastanaron/netscape-bookmarks/internal/models"
)

// Normalize turns a raw entry into a record. It reports false when the
// entry has no HREF attribute; such entries are placeholders, not links.
func Normalize(e Entry, cfg *Config) (models.Record, bool) {
	href, ok := e.Attrs.Get(AttrHref)
	if !ok {
		return models.Record{}, false
	}

	r := models.Record{
		Name: strings.TrimSpace(e.Name),
		URL:  href,
	}

	if icon, ok := e.Attrs.Get(AttrIcon); ok {
		r.Image = &icon
	}

	if e.Description != nil {
		if desc := strings.TrimSpace(*e.Description); desc != "" {
			r.Description = &desc
		}
	}

	if raw, ok := e.Attrs.Get(AttrAddDate); ok {
		if ts, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && ts >= 0 {
			r.DateCreated = &ts
		}
	}

	if raw, ok := e.Attrs.Get(AttrPrivate); ok {
		if private, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
			public := !private
			r.Public = &public
		}
	}

	raw, _ := e.Attrs.Get(AttrTags)
	candidates := splitTags(raw)
	if cfg.KeepNestedTags {
		for _, folder := range e.Folders {
			if folder = strings.TrimSpace(folder); folder != "" {
				candidates = append(candidates, folder)
			}
		}
	}
	r.Tags = uniqueTags(candidates)

	return r, true
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// uniqueTags keeps the first occurrence of every tag. The result is never nil.
func uniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

package parser_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/dastanaron/netscape-bookmarks/internal/models"
	"github.com/dastanaron/netscape-bookmarks/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestDecoder_Decode(t *testing.T) {
	t.Parallel()

	t.Run("flat file", func(t *testing.T) {
		t.Parallel()

		records := parser.NewDecoder(nil).Decode(readFixture(t, "flat.htm"))

		assert.Equal(t, []models.Record{
			{
				Name:        "Cozy - Simple, versatile, yours",
				Image:       ptr("data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAABAAAAAQCAYAAAAf8/9hAAAAjElEQVQ4jaVTMRLA="),
				URL:         "https://cozy.io/en/",
				Tags:        []string{},
				DateCreated: ptr(int64(1466009029)),
			},
			{
				Name:        "Framasoft ~ Page portail du réseau",
				URL:         "https://framasoft.org/",
				Tags:        []string{},
				DateCreated: ptr(int64(1466009059)),
			},
			{
				Name:        "The Linux Kernel Archives",
				URL:         "https://www.kernel.org/",
				Tags:        []string{},
				DateCreated: ptr(int64(1466009167)),
			},
			{
				Name:        "Regex Crossword",
				URL:         "https://regexcrossword.com/",
				Tags:        []string{},
				DateCreated: ptr(int64(1466009412)),
			},
			{
				Name:        "Timeline of the Elves in Tolkien’s works | LotrProject Blog",
				URL:         "http://lotrproject.com/blog/2013/02/08/timeline-of-the-elves-in-tolkiens-works/",
				Tags:        []string{},
				DateCreated: ptr(int64(1466010205)),
			},
		}, records)
	})

	t.Run("nested folders become tags", func(t *testing.T) {
		t.Parallel()

		records := parser.NewDecoder(parser.NewConfig()).Decode(readFixture(t, "nested.htm"))

		assert.Equal(t, []models.Record{
			{
				Name:        "jabber.org - the original XMPP instant messaging service",
				URL:         "http://www.jabber.org/",
				Tags:        []string{"Bookmarks bar"},
				DateCreated: ptr(int64(1466010266)),
			},
			{
				Name:        "Regex Crossword",
				URL:         "https://regexcrossword.com/",
				Tags:        []string{},
				DateCreated: ptr(int64(1466009412)),
			},
			{
				Name:        "PHP Standards Recommendations - PHP-FIG",
				URL:         "http://www.php-fig.org/psr/",
				Tags:        []string{"dev", "php"},
				DateCreated: ptr(int64(1466013084)),
			},
			{
				Name:        "Regex Crossword",
				URL:         "https://regexcrossword.com/",
				Tags:        []string{"dev"},
				DateCreated: ptr(int64(1466011700)),
			},
			{
				Name:        "GitHub - lhartikk/ArnoldC: Arnold Schwarzenegger based programming language",
				URL:         "https://github.com/lhartikk/ArnoldC",
				Tags:        []string{"dev"},
				DateCreated: ptr(int64(1466011676)),
			},
			{
				Name:        "The Linux Kernel Archives",
				URL:         "https://www.kernel.org/",
				Tags:        []string{},
				DateCreated: ptr(int64(1466011739)),
			},
		}, records)
	})

	t.Run("nested folders ignored when disabled", func(t *testing.T) {
		t.Parallel()

		cfg := parser.NewConfig().WithKeepNestedTags(false)
		records := parser.NewDecoder(cfg).Decode(readFixture(t, "nested.htm"))

		require.Len(t, records, 6)
		for _, r := range records {
			assert.Empty(t, r.Tags, r.Name)
		}
	})

	t.Run("indentation mixing tabs and spaces", func(t *testing.T) {
		t.Parallel()

		cfg := parser.NewConfig().WithKeepNestedTags(false)
		records := parser.NewDecoder(cfg).Decode(readFixture(t, "shaarli_tabs_spaces.htm"))

		require.Len(t, records, 1)
		r := records[0]
		assert.Equal(t, "Note: Code tests", r.Name)
		assert.Equal(t, "?KvNdlQ", r.URL)
		assert.Equal(t, []string{"dev"}, r.Tags)
		assert.Equal(t, ptr(int64(1591456706)), r.DateCreated)
		assert.Equal(t, ptr(false), r.Public)
		assert.Nil(t, r.Image)
		require.NotNil(t, r.Description)
		assert.Equal(t,
			"Checks whether the input is valid:\n\n```go\nif err != nil {\nreturn err\n}\n```\n\nRuns with \"go test ./...\" & friends.",
			*r.Description)
	})

	t.Run("description inside a folder", func(t *testing.T) {
		t.Parallel()

		doc := "<DL><p>\n\t<DT><H3>notes</H3>\n\t<DL><p>\n" +
			"\t\t<DT><A HREF=\"?KvNdlQ\" PRIVATE=\"0\" TAGS=\"dev,notes\">Note</A>\n" +
			"  \t<DD>line one\n\t   line two\n" +
			"\t</DL><p>\n</DL><p>\n"

		records := parser.NewDecoder(nil).Decode(doc)

		require.Len(t, records, 1)
		assert.Equal(t, []string{"dev", "notes"}, records[0].Tags)
		assert.Equal(t, ptr(true), records[0].Public)
		assert.Equal(t, ptr("line one\nline two"), records[0].Description)
	})

	t.Run("one record per link with an HREF", func(t *testing.T) {
		t.Parallel()

		anchors := regexp.MustCompile(`(?i)<a\s[^>]*\bhref\s*=`)
		for _, name := range []string{"flat.htm", "nested.htm", "shaarli_tabs_spaces.htm"} {
			doc := readFixture(t, name)
			records := parser.NewDecoder(nil).Decode(doc)
			assert.Len(t, records, len(anchors.FindAllString(doc, -1)), name)
		}
	})

	t.Run("malformed line does not affect its neighbours", func(t *testing.T) {
		t.Parallel()

		doc := `<DL><p>
<DT><H3>dev</H3>
<DL><p>
<DT><A HREF="https://a.example/" ADD_DATE="1>Broken</A>
<DT><A HREF="https://b.example/" ADD_DATE="2">B</A>
<DD>use x<y for comparisons
</DL><p>
<DT><A HREF="https://c.example/">C</A>
</DL><p>`
		records := parser.NewDecoder(nil).Decode(doc)

		require.Len(t, records, 3)
		assert.Equal(t, "Broken", records[0].Name)
		assert.Equal(t, "https://a.example/", records[0].URL)
		assert.Nil(t, records[0].DateCreated)
		assert.Equal(t, "https://b.example/", records[1].URL)
		assert.Equal(t, ptr(int64(2)), records[1].DateCreated)
		assert.Equal(t, ptr("use x<y for comparisons"), records[1].Description)
		assert.Equal(t, []string{"dev"}, records[1].Tags)
		assert.Equal(t, "C", records[2].Name)
		assert.Empty(t, records[2].Tags)
	})

	t.Run("tags are unique", func(t *testing.T) {
		t.Parallel()

		doc := `<DT><H3>dev</H3>
<DL><p>
<DT><H3>dev</H3>
<DL><p>
<DT><A HREF="x" TAGS="dev,go,dev">dup</A>
</DL><p>
</DL><p>`
		records := parser.NewDecoder(nil).Decode(doc)

		require.Len(t, records, 1)
		assert.Equal(t, []string{"dev", "go"}, records[0].Tags)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		doc := readFixture(t, "nested.htm")
		d := parser.NewDecoder(nil)

		assert.Equal(t, d.Decode(doc), d.Decode(doc))
	})

	t.Run("empty and garbage input", func(t *testing.T) {
		t.Parallel()

		d := parser.NewDecoder(nil)
		for _, doc := range []string{"", "not html at all", "<<<>>>", "</DL></DL><DT><H3>"} {
			records := d.Decode(doc)
			assert.NotNil(t, records, doc)
			assert.Empty(t, records, doc)
		}
	})

	t.Run("absent values encode as null", func(t *testing.T) {
		t.Parallel()

		records := parser.NewDecoder(nil).Decode(`<DT><A HREF="https://go.dev/">Go</A>`)
		data, err := json.Marshal(records)
		require.NoError(t, err)

		assert.JSONEq(t, `[{
			"name": "Go",
			"image": null,
			"url": "https://go.dev/",
			"tags": [],
			"description": null,
			"dateCreated": null,
			"public": null
		}]`, string(data))
	})
}

func TestDecoder_Entries(t *testing.T) {
	t.Parallel()

	var paths [][]string
	var names []string
	for folders, r := range parser.NewDecoder(nil).Entries(readFixture(t, "nested.htm")) {
		paths = append(paths, folders)
		names = append(names, r.Name)
	}

	require.Len(t, names, 6)
	assert.Equal(t, []string{"Bookmarks bar"}, paths[0])
	assert.Empty(t, paths[1])
	assert.Equal(t, []string{"dev", "php"}, paths[2])
	assert.Equal(t, []string{"dev"}, paths[3])
	assert.Equal(t, "The Linux Kernel Archives", names[5])
}

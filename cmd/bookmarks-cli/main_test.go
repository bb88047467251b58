package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dastanaron/netscape-bookmarks/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3>dev</H3>
    <DL><p>
        <DT><A HREF="https://go.dev/" ADD_DATE="1466009029" TAGS="go">Go</A>
    </DL><p>
    <DT><A HREF="https://go.dev/">Go (duplicate)</A>
</DL><p>
`

func writeDoc(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bookmarks.html")
	require.NoError(t, os.WriteFile(path, []byte(testDoc), 0o644))
	return path
}

func TestRun_Decode(t *testing.T) {
	t.Parallel()

	t.Run("prints records as JSON", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := Run(context.Background(), []string{"decode", writeDoc(t)}, &stdout, &stderr)
		require.NoError(t, err)

		var records []models.Record
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &records))
		require.Len(t, records, 2)
		assert.Equal(t, []string{"go", "dev"}, records[0].Tags)
		require.NotNil(t, records[0].DateCreated)
		assert.Equal(t, int64(1466009029), *records[0].DateCreated)
		assert.Empty(t, records[1].Tags)
	})

	t.Run("without nested tags", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := Run(context.Background(), []string{"--no-nested-tags", "decode", writeDoc(t)}, &stdout, &stderr)
		require.NoError(t, err)

		var records []models.Record
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &records))
		require.Len(t, records, 2)
		assert.Equal(t, []string{"go"}, records[0].Tags)
	})

	t.Run("missing file is rejected", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := Run(context.Background(),
			[]string{"decode", filepath.Join(t.TempDir(), "missing.html")}, &stdout, &stderr)

		require.Error(t, err)
		assert.Empty(t, stdout.String())
	})
}

func TestRun_ImportAndClearDoubles(t *testing.T) {
	t.Parallel()

	db := filepath.Join(t.TempDir(), "data", "bookmarks.db")
	doc := writeDoc(t)

	var stdout, stderr bytes.Buffer
	require.NoError(t, Run(context.Background(), []string{"--db", db, "import", doc}, &stdout, &stderr))
	assert.Equal(t, "Imported 2 bookmarks.\n", stdout.String())
	assert.Contains(t, stderr.String(), "imported file")
	assert.FileExists(t, db)

	stdout.Reset()
	require.NoError(t, Run(context.Background(), []string{"--db", db, "clear-doubles"}, &stdout, &stderr))
	assert.Equal(t, "Deleted 1 duplicate bookmark(s).\n", stdout.String())

	stdout.Reset()
	require.NoError(t, Run(context.Background(), []string{"--db", db, "clear-doubles"}, &stdout, &stderr))
	assert.Equal(t, "No duplicate bookmarks found.\n", stdout.String())
}

func TestRun_ImportMerge(t *testing.T) {
	t.Parallel()

	db := filepath.Join(t.TempDir(), "bookmarks.db")

	var stdout, stderr bytes.Buffer
	require.NoError(t, Run(context.Background(), []string{"--db", db, "import", "--merge", writeDoc(t)}, &stdout, &stderr))
	assert.Equal(t, "Imported 1 bookmarks, updated 1.\n", stdout.String())

	stdout.Reset()
	require.NoError(t, Run(context.Background(), []string{"--db", db, "clear-doubles"}, &stdout, &stderr))
	assert.Equal(t, "No duplicate bookmarks found.\n", stdout.String())
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	require.NoError(t, Run(context.Background(), []string{"--help"}, &stdout, &stderr))

	assert.Contains(t, stdout.String(), "decode")
	assert.Contains(t, stdout.String(), "clear-doubles")
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), []string{"frobnicate"}, &stdout, &stderr)

	assert.Error(t, err)
}

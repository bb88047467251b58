package ui

import (
	"testing"

	"github.com/dastanaron/netscape-bookmarks/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestFolderTree(t *testing.T) {
	t.Parallel()

	items := folderTree([]models.Folder{
		{ID: 1, Name: "Bookmarks bar"},
		{ID: 2, Name: "dev"},
		{ID: 3, Name: "php", ParentID: intPtr(2)},
		{ID: 4, Name: "laravel", ParentID: intPtr(3)},
		{ID: 5, Name: "go", ParentID: intPtr(2)},
		{ID: 6, Name: "orphan", ParentID: intPtr(99)},
	})

	var names []string
	var levels []int
	for _, item := range items {
		names = append(names, item.Name)
		levels = append(levels, item.Level)
	}

	assert.Equal(t, []string{"All Bookmarks", "Bookmarks bar", "dev", "php", "laravel", "go", "orphan"}, names)
	assert.Equal(t, []int{0, 1, 1, 2, 3, 2, 1}, levels)
	assert.Nil(t, items[0].ID)
	require.NotNil(t, items[3].ID)
	assert.Equal(t, 3, *items[3].ID)
}

func TestFolderTree_Empty(t *testing.T) {
	t.Parallel()

	items := folderTree(nil)

	require.Len(t, items, 1)
	assert.Equal(t, "All Bookmarks", items[0].Name)
}

func TestFolderItem_label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "All Bookmarks", folderItem{Name: "All Bookmarks"}.label())
	assert.Equal(t, "dev", folderItem{Name: "dev", Level: 1}.label())
	assert.Equal(t, "  └─ php", folderItem{Name: "php", Level: 2}.label())
	assert.Equal(t, "    └─ laravel", folderItem{Name: "laravel", Level: 3}.label())
}

func TestRenderBookmark(t *testing.T) {
	t.Parallel()

	t.Run("all fields", func(t *testing.T) {
		t.Parallel()

		created := int64(1466009029)
		public := false
		folder := "dev"
		text := renderBookmark(&models.Bookmark{
			Title:       "[go] The Go site",
			URL:         "https://go.dev/",
			Description: "Build simple software.",
			Tags:        []string{"go", "dev"},
			CreatedAt:   &created,
			Public:      &public,
			FolderName:  &folder,
		})

		assert.Contains(t, text, "[go[] The Go site")
		assert.Contains(t, text, "https://go.dev/")
		assert.Contains(t, text, "go, dev")
		assert.Contains(t, text, "2016-06-15 16:43:49 UTC")
		assert.Contains(t, text, "private")
		assert.Contains(t, text, "Folder:[::-]\ndev")
		assert.Contains(t, text, "Build simple software.")
	})

	t.Run("absent fields", func(t *testing.T) {
		t.Parallel()

		text := renderBookmark(&models.Bookmark{Title: "bare", URL: "https://example.com/"})

		assert.Contains(t, text, "Tags:[::-]\n-")
		assert.Contains(t, text, "Created:[::-]\n-")
		assert.Contains(t, text, "unknown")
		assert.Contains(t, text, "Folder:[::-]\n/")
	})
}

func TestRenderFolder(t *testing.T) {
	t.Parallel()

	text := renderFolder("php", "dev")

	assert.Contains(t, text, "Folder")
	assert.Contains(t, text, "Name:[::-]\nphp")
	assert.Contains(t, text, "Parent:[::-]\ndev")
}

package repository

import (
	"database/sql"
	"fmt"

	"github.com/dastanaron/netscape-bookmarks/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db        *sql.DB
	bookmarks *bookmarkRepo
	folders   *folderRepo
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	repo := &SQLiteRepository{
		db: db,
	}
	repo.bookmarks = &bookmarkRepo{db: db}
	repo.folders = &folderRepo{db: db}

	return repo, nil
}

func initSchema(db *sql.DB) error {
	createTables := `
	CREATE TABLE IF NOT EXISTS folders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		parent_id INTEGER,
		FOREIGN KEY(parent_id) REFERENCES folders(id)
	);

	CREATE TABLE IF NOT EXISTS bookmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT,
		folder_id INTEGER,
		FOREIGN KEY(folder_id) REFERENCES folders(id)
	);

	CREATE TABLE IF NOT EXISTS bookmark_tags (
		bookmark_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		tag TEXT NOT NULL,
		PRIMARY KEY(bookmark_id, position),
		FOREIGN KEY(bookmark_id) REFERENCES bookmarks(id)
	);

	CREATE INDEX IF NOT EXISTS idx_bookmarks_folder ON bookmarks(folder_id);
	CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);
	CREATE INDEX IF NOT EXISTS idx_folders_parent ON folders(parent_id);
	`
	if _, err := db.Exec(createTables); err != nil {
		return err
	}

	// Columns added after the first release. SQLite has no
	// ADD COLUMN IF NOT EXISTS, so check pragma_table_info first.
	for _, col := range []struct{ name, typ string }{
		{"icon", "TEXT"},
		{"created_at", "INTEGER"},
		{"public", "INTEGER"},
	} {
		if err := addColumnIfMissing(db, "bookmarks", col.name, col.typ); err != nil {
			return err
		}
	}

	return nil
}

func addColumnIfMissing(db *sql.DB, table, column, typ string) error {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = db.Exec(fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, typ))
	return err
}

// Bookmarks returns the bookmark repository
func (r *SQLiteRepository) Bookmarks() BookmarkRepository {
	return r.bookmarks
}

// Folders returns the folder repository
func (r *SQLiteRepository) Folders() FolderRepository {
	return r.folders
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// bookmarkRepo implements BookmarkRepository
type bookmarkRepo struct {
	db *sql.DB
}

const selectBookmarks = `
	SELECT b.id, b.title, b.url, b.description, b.icon, b.created_at, b.public, b.folder_id, f.name
	FROM bookmarks AS b
	LEFT JOIN folders AS f ON f.id = b.folder_id
`

type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(s scanner) (models.Bookmark, error) {
	var b models.Bookmark
	var desc sql.NullString
	err := s.Scan(&b.ID, &b.Title, &b.URL, &desc, &b.Icon, &b.CreatedAt, &b.Public, &b.FolderID, &b.FolderName)
	b.Description = desc.String
	return b, err
}

func (r *bookmarkRepo) List() ([]models.Bookmark, error) {
	rows, err := r.db.Query(selectBookmarks + `
		WHERE b.url <> ''
		ORDER BY b.title, b.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookmarks []models.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tags, err := r.allTags()
	if err != nil {
		return nil, err
	}
	for i := range bookmarks {
		bookmarks[i].Tags = tags[bookmarks[i].ID]
	}
	return bookmarks, nil
}

func (r *bookmarkRepo) GetByID(id int) (*models.Bookmark, error) {
	return r.getOne(selectBookmarks+`WHERE b.id = ?`, id)
}

func (r *bookmarkRepo) GetByURL(url string) (*models.Bookmark, error) {
	return r.getOne(selectBookmarks+`WHERE b.url = ? ORDER BY b.id LIMIT 1`, url)
}

func (r *bookmarkRepo) getOne(query string, arg any) (*models.Bookmark, error) {
	b, err := scanBookmark(r.db.QueryRow(query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	b.Tags, err = r.tagsOf(b.ID)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookmarkRepo) Create(b *models.Bookmark) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO bookmarks(title, url, description, icon, created_at, public, folder_id) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.Title, b.URL, b.Description, b.Icon, b.CreatedAt, b.Public, b.FolderID,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	if err := writeTags(tx, int(id), b.Tags); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	b.ID = int(id)
	return nil
}

func (r *bookmarkRepo) update(b *models.Bookmark) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE bookmarks SET title = ?, url = ?, description = ?, icon = ?, created_at = ?, public = ?, folder_id = ? WHERE id = ?`,
		b.Title, b.URL, b.Description, b.Icon, b.CreatedAt, b.Public, b.FolderID, b.ID,
	)
	if err != nil {
		return err
	}
	if err := writeTags(tx, b.ID, b.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *bookmarkRepo) Upsert(b *models.Bookmark) (bool, error) {
	existing, err := r.GetByURL(b.URL)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return true, r.Create(b)
	}
	b.ID = existing.ID
	return false, r.update(b)
}

func (r *bookmarkRepo) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM bookmark_tags WHERE bookmark_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM bookmarks WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func writeTags(tx *sql.Tx, bookmarkID int, tags []string) error {
	if _, err := tx.Exec(`DELETE FROM bookmark_tags WHERE bookmark_id = ?`, bookmarkID); err != nil {
		return err
	}
	for pos, tag := range tags {
		_, err := tx.Exec(
			`INSERT INTO bookmark_tags(bookmark_id, position, tag) VALUES (?, ?, ?)`,
			bookmarkID, pos, tag,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *bookmarkRepo) tagsOf(id int) ([]string, error) {
	rows, err := r.db.Query(`SELECT tag FROM bookmark_tags WHERE bookmark_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *bookmarkRepo) allTags() (map[int][]string, error) {
	rows, err := r.db.Query(`SELECT bookmark_id, tag FROM bookmark_tags ORDER BY bookmark_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make(map[int][]string)
	for rows.Next() {
		var id int
		var tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return nil, err
		}
		tags[id] = append(tags[id], tag)
	}
	return tags, rows.Err()
}

// folderRepo implements FolderRepository
type folderRepo struct {
	db *sql.DB
}

func (r *folderRepo) List() ([]models.Folder, error) {
	rows, err := r.db.Query(`SELECT id, name, parent_id FROM folders ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.ParentID); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func (r *folderRepo) GetByID(id int) (*models.Folder, error) {
	var f models.Folder
	err := r.db.QueryRow(`SELECT id, name, parent_id FROM folders WHERE id = ?`, id).
		Scan(&f.ID, &f.Name, &f.ParentID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *folderRepo) create(name string, parentID *int) (*models.Folder, error) {
	res, err := r.db.Exec(`INSERT INTO folders(name, parent_id) VALUES (?, ?)`, name, parentID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Folder{ID: int(id), Name: name, ParentID: parentID}, nil
}

// Delete removes a folder and moves its bookmarks and subfolders to its parent.
func (r *folderRepo) Delete(id int) error {
	f, err := r.GetByID(id)
	if err != nil || f == nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE bookmarks SET folder_id = ? WHERE folder_id = ?`, f.ParentID, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE folders SET parent_id = ? WHERE parent_id = ?`, f.ParentID, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM folders WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *folderRepo) Upsert(name string, parentID *int) (*models.Folder, error) {
	var id int
	err := r.db.QueryRow(
		`SELECT id FROM folders WHERE name = ? AND parent_id IS ? ORDER BY id LIMIT 1`,
		name, parentID,
	).Scan(&id)

	if err == nil {
		return &models.Folder{ID: id, Name: name, ParentID: parentID}, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	return r.create(name, parentID)
}

func (r *folderRepo) GetFolderContent(folderID *int) ([]models.Item, error) {
	var items []models.Item

	rows, err := r.db.Query(
		`SELECT id, name, parent_id FROM folders WHERE parent_id IS ? ORDER BY name, id`, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := models.Item{Type: models.ItemTypeFolder}
		if err := rows.Scan(&item.ID, &item.Name, &item.ParentID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(`
		SELECT id, title, url, description, icon, folder_id
		FROM bookmarks
		WHERE folder_id IS ? AND url <> ''
		ORDER BY title, id
	`, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := models.Item{Type: models.ItemTypeBookmark}
		var url string
		var desc sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &url, &desc, &item.Icon, &item.ParentID); err != nil {
			return nil, err
		}
		item.URL = &url
		if desc.Valid {
			item.Description = &desc.String
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

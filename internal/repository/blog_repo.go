package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"miniblog/internal/models"

	"github.com/google/uuid"
)

type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

var _ Blogs = (*BlogRepository)(nil)

const (
	insertBlogSQL       = `INSERT INTO blogs (id, title, body, user_id, created_at) VALUES (?, ?, ?, ?, ?)`
	selectBlogByIDSQL   = `SELECT id, title, body, user_id, created_at FROM blogs WHERE id = ?`
	selectBlogsOwnerSQL = `SELECT id, title, body, user_id, created_at FROM blogs WHERE user_id = ?`
	countBlogsSQL       = `SELECT COUNT(*) FROM blogs`
	updateBlogSQL       = `UPDATE blogs SET title = ?, body = ? WHERE id = ? AND user_id = ?`
	deleteBlogSQL       = `DELETE FROM blogs WHERE id = ? AND user_id = ?`

	timestampLayout = "2006-01-02 15:04:05"
)

// sortColumns maps caller-facing sort keys to real columns. List refuses
// anything outside this table, so no caller-supplied text reaches SQL.
var sortColumns = map[string]string{
	"title":   "title",
	"body":    "body",
	"created": "created_at",
}

// List returns at most limit blogs ordered ascending by the given sort
// key, skipping offset rows. Negative offsets are clamped to zero.
func (r *BlogRepository) List(ctx context.Context, sortColumn string, limit, offset int) ([]models.Blog, error) {
	col, ok := sortColumns[sortColumn]
	if !ok {
		col = "title"
	}
	if offset < 0 {
		offset = 0
	}

	q := fmt.Sprintf(`SELECT id, title, body, user_id, created_at FROM blogs ORDER BY %s ASC LIMIT ? OFFSET ?`, col)
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select blogs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanBlogs(rows)
}

// Count returns the current total number of blogs.
func (r *BlogRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countBlogsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count blogs: %w", err)
	}
	return n, nil
}

// ListByOwner returns every blog owned by userID, unpaginated.
func (r *BlogRepository) ListByOwner(ctx context.Context, userID int) ([]models.Blog, error) {
	rows, err := r.db.QueryContext(ctx, selectBlogsOwnerSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select blogs for user %d: %w", userID, err)
	}
	defer func() { _ = rows.Close() }()

	return scanBlogs(rows)
}

// GetByID fetches a blog by id. Returns (nil, nil) if not found.
func (r *BlogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	var (
		b  models.Blog
		ts string
	)
	err := r.db.QueryRowContext(ctx, selectBlogByIDSQL, id).
		Scan(&b.ID, &b.Title, &b.Body, &b.UserID, &ts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select blog %q: %w", id, err)
	}
	b.CreatedAt = parseTimestamp(ts)
	return &b, nil
}

// Create inserts a new blog. If ID or CreatedAt are empty, they’re set.
func (r *BlogRepository) Create(ctx context.Context, b models.Blog) (string, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	} else {
		b.CreatedAt = b.CreatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertBlogSQL,
		b.ID, b.Title, b.Body, b.UserID, b.CreatedAt.Format(timestampLayout))
	if err != nil {
		return "", fmt.Errorf("insert blog %q: %w", b.ID, err)
	}
	return b.ID, nil
}

// Update rewrites title/body of the blog owned by userID. The second
// return reports whether a row matched.
func (r *BlogRepository) Update(ctx context.Context, id string, userID int, title, body string) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateBlogSQL, title, body, id, userID)
	if err != nil {
		return false, fmt.Errorf("update blog %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for blog %q: %w", id, err)
	}
	return n > 0, nil
}

// Delete removes the blog owned by userID. The second return reports
// whether a row matched.
func (r *BlogRepository) Delete(ctx context.Context, id string, userID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteBlogSQL, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete blog %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for blog %q: %w", id, err)
	}
	return n > 0, nil
}

func scanBlogs(rows *sql.Rows) ([]models.Blog, error) {
	var blogs []models.Blog
	for rows.Next() {
		var (
			b  models.Blog
			ts string
		)
		if err := rows.Scan(&b.ID, &b.Title, &b.Body, &b.UserID, &ts); err != nil {
			return nil, fmt.Errorf("scan blog row: %w", err)
		}
		b.CreatedAt = parseTimestamp(ts)
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog rows: %w", err)
	}
	return blogs, nil
}

// parseTimestamp reads the SQLite TIMESTAMP format; zero time on mismatch.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

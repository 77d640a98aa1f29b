package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"miniblog/internal/models"
)

func newMockBlogRepo(t *testing.T) (*BlogRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewBlogRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func blogRows(blogs ...models.Blog) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "body", "user_id", "created_at"})
	for _, b := range blogs {
		rows.AddRow(b.ID, b.Title, b.Body, b.UserID, b.CreatedAt.Format(timestampLayout))
	}
	return rows
}

func TestBlogRepository_List(t *testing.T) {
	tests := []struct {
		name       string
		sortKey    string
		offset     int
		wantCol    string
		wantOffset int
	}{
		{name: "known sort key", sortKey: "created", offset: 5, wantCol: "created_at", wantOffset: 5},
		{name: "unknown sort key falls back to title", sortKey: "user_id", offset: 0, wantCol: "title", wantOffset: 0},
		{name: "negative offset clamped", sortKey: "title", offset: -5, wantCol: "title", wantOffset: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockBlogRepo(t)
			defer cleanup()

			q := `SELECT id, title, body, user_id, created_at FROM blogs ORDER BY ` + tt.wantCol + ` ASC LIMIT ? OFFSET ?`
			mock.ExpectQuery(regexp.QuoteMeta(q)).
				WithArgs(5, tt.wantOffset).
				WillReturnRows(blogRows(models.Blog{ID: "b1", Title: "a", Body: "x", UserID: 1}))

			blogs, err := repo.List(context.Background(), tt.sortKey, 5, tt.offset)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(blogs) != 1 || blogs[0].ID != "b1" {
				t.Fatalf("unexpected blogs: %+v", blogs)
			}
		})
	}
}

func TestBlogRepository_Count(t *testing.T) {
	repo, mock, cleanup := newMockBlogRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(countBlogsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 12 {
		t.Fatalf("expected 12, got %d", n)
	}
}

func TestBlogRepository_ListByOwner(t *testing.T) {
	repo, mock, cleanup := newMockBlogRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectBlogsOwnerSQL)).
		WithArgs(7).
		WillReturnRows(blogRows(
			models.Blog{ID: "b1", Title: "first", Body: "x", UserID: 7},
			models.Blog{ID: "b2", Title: "second", Body: "y", UserID: 7},
		))

	blogs, err := repo.ListByOwner(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blogs) != 2 {
		t.Fatalf("expected 2 blogs, got %d", len(blogs))
	}
	for _, b := range blogs {
		if b.UserID != 7 {
			t.Fatalf("expected owner 7, got %d", b.UserID)
		}
	}
}

func TestBlogRepository_GetByID(t *testing.T) {
	tests := []struct {
		name       string
		mockExpect func(sqlmock.Sqlmock)
		wantBlog   bool
		wantErr    bool
	}{
		{
			name: "found",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBlogByIDSQL)).
					WithArgs("b1").
					WillReturnRows(blogRows(models.Blog{ID: "b1", Title: "t", Body: "b", UserID: 1}))
			},
			wantBlog: true,
		},
		{
			name: "not found (ErrNoRows)",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBlogByIDSQL)).
					WithArgs("b1").
					WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name: "query error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBlogByIDSQL)).
					WithArgs("b1").
					WillReturnError(errors.New("db query failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockBlogRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			b, err := repo.GetByID(context.Background(), "b1")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantBlog != (b != nil) {
				t.Fatalf("wantBlog=%v, got %+v", tt.wantBlog, b)
			}
		})
	}
}

func TestBlogRepository_Create_FillsIDAndTimestamp(t *testing.T) {
	repo, mock, cleanup := newMockBlogRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertBlogSQL)).
		WithArgs(sqlmock.AnyArg(), "title", "body", 3, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := repo.Create(context.Background(), models.Blog{Title: "title", Body: "body", UserID: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id, got empty string")
	}
}

func TestBlogRepository_Update_OwnerScoped(t *testing.T) {
	tests := []struct {
		name        string
		result      sql.Result
		wantMatched bool
	}{
		{name: "row matched", result: sqlmock.NewResult(0, 1), wantMatched: true},
		{name: "no row matched", result: sqlmock.NewResult(0, 0), wantMatched: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockBlogRepo(t)
			defer cleanup()

			mock.ExpectExec(regexp.QuoteMeta(updateBlogSQL)).
				WithArgs("new title", "new body", "b1", 7).
				WillReturnResult(tt.result)

			matched, err := repo.Update(context.Background(), "b1", 7, "new title", "new body")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if matched != tt.wantMatched {
				t.Fatalf("matched: want %v, got %v", tt.wantMatched, matched)
			}
		})
	}
}

func TestBlogRepository_Delete_OwnerScoped(t *testing.T) {
	tests := []struct {
		name        string
		result      sql.Result
		wantMatched bool
	}{
		{name: "row matched", result: sqlmock.NewResult(0, 1), wantMatched: true},
		{name: "no row matched", result: sqlmock.NewResult(0, 0), wantMatched: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockBlogRepo(t)
			defer cleanup()

			mock.ExpectExec(regexp.QuoteMeta(deleteBlogSQL)).
				WithArgs("b1", 7).
				WillReturnResult(tt.result)

			matched, err := repo.Delete(context.Background(), "b1", 7)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if matched != tt.wantMatched {
				t.Fatalf("matched: want %v, got %v", tt.wantMatched, matched)
			}
		})
	}
}

package repository

import (
	"context"
	"database/sql"

	"miniblog/internal/models"
)

// Users persists registered accounts.
type Users interface {
	Create(ctx context.Context, name, email, passwordHash string) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// Blogs persists posts. Update and Delete are owner-scoped and report
// whether a row was actually affected.
type Blogs interface {
	List(ctx context.Context, sortColumn string, limit, offset int) ([]models.Blog, error)
	Count(ctx context.Context) (int, error)
	ListByOwner(ctx context.Context, userID int) ([]models.Blog, error)
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	Create(ctx context.Context, b models.Blog) (string, error)
	Update(ctx context.Context, id string, userID int, title, body string) (bool, error)
	Delete(ctx context.Context, id string, userID int) (bool, error)
}

type Repository struct {
	Users Users
	Blogs Blogs
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Blogs: NewBlogRepository(db),
	}
}

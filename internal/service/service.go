package service

import (
	"context"
	"time"

	"miniblog/internal/models"
	"miniblog/internal/repository"
)

// Authorization handles registration and credential checks.
type Authorization interface {
	SignUp(ctx context.Context, name, email, password string) (int, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Sessions is the process-wide session store. Create returns the signed
// cookie token for a new session; Resolve maps a cookie token back to a
// user id, rejecting expired or tampered tokens.
type Sessions interface {
	Create(userID int) (string, error)
	Resolve(token string) (int, bool)
	Destroy(token string)
}

// Sweeper runs the background loop that reaps expired sessions.
// Stop via context cancellation in main() for graceful shutdown.
type Sweeper interface {
	Run(ctx context.Context, tick time.Duration)
}

// BlogPage is one page of the public listing.
type BlogPage struct {
	Blogs   []models.Blog
	Current int
	Pages   int
	Sort    string
}

// Blogs exposes the post CRUD and listing operations.
type Blogs interface {
	List(ctx context.Context, page int, sortKey string) (BlogPage, error)
	ListMine(ctx context.Context, userID int) ([]models.Blog, error)
	Get(ctx context.Context, id string) (*models.Blog, error)
	Create(ctx context.Context, userID int, title, body string) (string, error)
	Update(ctx context.Context, userID int, id, title, body string) error
	Delete(ctx context.Context, userID int, id string) error
}

// Root Service aggregates all sub-services.
type Service struct {
	Authorization
	Blogs
	Sessions
	Sweeper
}

// NewService wires the repository layer into concrete services. The
// session store doubles as the sweeper.
func NewService(repos *repository.Repository, signingKey string) *Service {
	sessions := NewSessionService(signingKey)
	return &Service{
		Authorization: NewAuthService(repos.Users),
		Blogs:         NewBlogService(repos.Blogs),
		Sessions:      sessions,
		Sweeper:       sessions,
	}
}

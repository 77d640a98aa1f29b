package service

import (
	"context"
	"errors"
	"strings"

	"miniblog/internal/models"
	"miniblog/internal/repository"
)

// ErrBlogNotFound covers a missing id, a lookup miss, and a mutation
// that matched no row owned by the caller.
var ErrBlogNotFound = errors.New("blog not found")

// Fixed page size of the public listing.
const blogsPerPage = 5

// defaultSortKey is used when the requested sort field is absent or not
// on the allow-list.
const defaultSortKey = "title"

// allowedSortKeys is the enumerated set of sortable fields; raw query
// strings never reach the repository.
var allowedSortKeys = map[string]bool{
	"title":   true,
	"body":    true,
	"created": true,
}

// BlogService layers validation and pagination math over the blog repo.
type BlogService struct {
	blogs repository.Blogs
}

func NewBlogService(blogs repository.Blogs) *BlogService {
	return &BlogService{blogs: blogs}
}

// normalizeSortKey lowercases the requested field and falls back to the
// default for anything outside the allow-list.
func normalizeSortKey(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	if !allowedSortKeys[key] {
		return defaultSortKey
	}
	return key
}

// List returns page `page` of all blogs sorted ascending by sortKey.
// The page count is computed from the live total at read time; offset
// pagination drifts under concurrent writes and that is accepted.
func (s *BlogService) List(ctx context.Context, page int, sortKey string) (BlogPage, error) {
	if page == 0 {
		page = 1
	}
	sort := normalizeSortKey(sortKey)
	offset := (blogsPerPage * page) - blogsPerPage

	blogs, err := s.blogs.List(ctx, sort, blogsPerPage, offset)
	if err != nil {
		return BlogPage{}, err
	}
	count, err := s.blogs.Count(ctx)
	if err != nil {
		return BlogPage{}, err
	}

	pages := (count + blogsPerPage - 1) / blogsPerPage
	return BlogPage{Blogs: blogs, Current: page, Pages: pages, Sort: sort}, nil
}

// ListMine returns all blogs owned by userID, unpaginated.
func (s *BlogService) ListMine(ctx context.Context, userID int) ([]models.Blog, error) {
	return s.blogs.ListByOwner(ctx, userID)
}

// Get fetches one blog for the edit form.
func (s *BlogService) Get(ctx context.Context, id string) (*models.Blog, error) {
	if id == "" {
		return nil, ErrBlogNotFound
	}
	b, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBlogNotFound
	}
	return b, nil
}

// Create persists a new blog owned by userID. Title and body are both
// required.
func (s *BlogService) Create(ctx context.Context, userID int, title, body string) (string, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		return "", ErrMissingFields
	}
	return s.blogs.Create(ctx, models.Blog{Title: title, Body: body, UserID: userID})
}

// Update rewrites title/body of the caller's own blog. A nonexistent id
// or a blog owned by someone else is reported as ErrBlogNotFound.
func (s *BlogService) Update(ctx context.Context, userID int, id, title, body string) error {
	if id == "" || strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		return ErrMissingFields
	}
	matched, err := s.blogs.Update(ctx, id, userID, title, body)
	if err != nil {
		return err
	}
	if !matched {
		return ErrBlogNotFound
	}
	return nil
}

// Delete removes the caller's own blog, with the same not-found
// semantics as Update.
func (s *BlogService) Delete(ctx context.Context, userID int, id string) error {
	if id == "" {
		return ErrMissingFields
	}
	matched, err := s.blogs.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !matched {
		return ErrBlogNotFound
	}
	return nil
}

package handlers

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"

	"miniblog/internal/models"
	"miniblog/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID   int
	signUpErr  error
	authUser   *models.User
	authErr    error
	users      []models.User
	listErr    error

	lastSignUpName  string
	lastSignUpEmail string
	lastAuthEmail   string
	signUpCalls     int
	authCalls       int
}

func (m *mockAuth) SignUp(ctx context.Context, name, email, password string) (int, error) {
	m.signUpCalls++
	m.lastSignUpName = name
	m.lastSignUpEmail = email
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	m.authCalls++
	m.lastAuthEmail = email
	return m.authUser, m.authErr
}

func (m *mockAuth) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.users, m.listErr
}

type mockSessions struct {
	createToken string
	createErr   error
	resolveID   int
	resolveOK   bool

	lastResolved  string
	lastDestroyed string
	createCalls   int
	destroyCalls  int
}

func (m *mockSessions) Create(userID int) (string, error) {
	m.createCalls++
	return m.createToken, m.createErr
}

func (m *mockSessions) Resolve(token string) (int, bool) {
	m.lastResolved = token
	return m.resolveID, m.resolveOK
}

func (m *mockSessions) Destroy(token string) {
	m.destroyCalls++
	m.lastDestroyed = token
}

type mockBlogs struct {
	page      service.BlogPage
	pageErr   error
	mine      []models.Blog
	mineErr   error
	blog      *models.Blog
	getErr    error
	createID  string
	createErr error
	updateErr error
	deleteErr error

	lastListPage int
	lastListSort string
	lastOwner    int
	lastID       string
	lastTitle    string
	lastBody     string
	createCalls  int
	updateCalls  int
	deleteCalls  int
}

func (m *mockBlogs) List(ctx context.Context, page int, sortKey string) (service.BlogPage, error) {
	m.lastListPage = page
	m.lastListSort = sortKey
	return m.page, m.pageErr
}

func (m *mockBlogs) ListMine(ctx context.Context, userID int) ([]models.Blog, error) {
	m.lastOwner = userID
	return m.mine, m.mineErr
}

func (m *mockBlogs) Get(ctx context.Context, id string) (*models.Blog, error) {
	m.lastID = id
	return m.blog, m.getErr
}

func (m *mockBlogs) Create(ctx context.Context, userID int, title, body string) (string, error) {
	m.createCalls++
	m.lastOwner = userID
	m.lastTitle = title
	m.lastBody = body
	return m.createID, m.createErr
}

func (m *mockBlogs) Update(ctx context.Context, userID int, id, title, body string) error {
	m.updateCalls++
	m.lastOwner = userID
	m.lastID = id
	m.lastTitle = title
	m.lastBody = body
	return m.updateErr
}

func (m *mockBlogs) Delete(ctx context.Context, userID int, id string) error {
	m.deleteCalls++
	m.lastOwner = userID
	m.lastID = id
	return m.deleteErr
}

// ---- Shared Test Helpers ----

// Minimal stand-ins for the real templates; each page renders markers
// the tests grep for.
const testTemplates = `
{{define "home.html"}}home error={{.Error}} current={{.Current}} pages={{.Pages}} sort={{.Sort}} blogs={{if .Blogs}}{{range .Blogs}}[{{.ID}}]{{end}}{{end}}{{end}}
{{define "login.html"}}login error={{.Error}} message={{.Message}}{{end}}
{{define "signup.html"}}signup error={{.Error}}{{end}}
{{define "addblog.html"}}addblog error={{.Error}}{{end}}
{{define "editblog.html"}}editblog {{with .Blog}}id={{.ID}} title={{.Title}}{{end}}{{end}}
{{define "myblogs.html"}}myblogs error={{.Error}} message={{.Message}} blogs={{if .Blogs}}{{range .Blogs}}[{{.ID}}]{{end}}{{end}}{{end}}
`

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	r := h.InitRoutes()
	r.SetHTMLTemplate(template.Must(template.New("test").Parse(testTemplates)))
	return r
}

// doRequest performs a request with an optional session cookie.
func doRequest(r *gin.Engine, method, target, body, cookie string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookie})
	}
	r.ServeHTTP(w, req)
	return w
}

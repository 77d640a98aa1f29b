package handlers

import (
	"miniblog/internal/logger"
	"miniblog/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes
// registered. Templates are attached by the caller: LoadHTMLGlob in
// main, SetHTMLTemplate in tests.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Resolves the session principal for every request; never blocks.
	router.Use(h.sessionMiddleware)

	h.registerPublicRoutes(router)
	h.registerPrivateRoutes(router)

	return router
}

func (h *Handler) registerPublicRoutes(r *gin.Engine) {
	r.GET("/", h.home)
	r.GET("/home", h.home)
	r.GET("/signup", h.signupPage)
	r.POST("/register", h.register)
	r.GET("/login", h.loginPage)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)
}

// The route groups here are the single public/protected table:
// everything below requires a live session principal.
func (h *Handler) registerPrivateRoutes(r *gin.Engine) {
	private := r.Group("/", h.requireAuth)
	{
		private.GET("/allUsers", h.allUsers)
		private.GET("/myBlogs", h.myBlogs)
		private.GET("/addBlog", h.addBlogPage)
		private.POST("/createBlog", h.createBlog)
		private.GET("/editblog", h.editBlogPage)
		private.POST("/updateBlog", h.updateBlog)
		private.GET("/deleteblog", h.deleteBlog)
	}
}

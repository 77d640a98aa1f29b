package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"miniblog/internal/service"

	"github.com/gin-gonic/gin"
)

// User-visible blog messages.
const (
	msgTitleBodyNeeded = "Title and body are required."
	msgCreateFailed    = "Error creating blog. Please try again."
	msgEditFailed      = "Error in editing blog. Please try again."
	msgUpdateFailed    = "Error updating blog. Please try again."
	msgDeleteFailed    = "Error deleting blog. Please try again."
	msgListFailed      = "Error fetching blogs. Please try again later."
	msgMineFailed      = "Error fetching your blogs."
)

// parsePage reads the 1-based page parameter; absence or a parse
// failure defaults to 1, any parsed integer passes through.
func parsePage(s string) int {
	if s == "" {
		return 1
	}
	page, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return page
}

// pageNumbers enumerates 1..n for the pagination links.
func pageNumbers(n int) []int {
	nums := make([]int, 0, n)
	for p := 1; p <= n; p++ {
		nums = append(nums, p)
	}
	return nums
}

// home renders the public paginated listing.
func (h *Handler) home(c *gin.Context) {
	page, err := h.services.Blogs.List(c.Request.Context(), parsePage(c.Query("page")), c.Query("sort"))
	if err != nil {
		if h.log != nil {
			h.log.Errorw("home_list_failed", "err", err)
		}
		c.HTML(http.StatusOK, "home.html", gin.H{"Error": msgListFailed})
		return
	}
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Blogs":    page.Blogs,
		"Current":  page.Current,
		"Pages":    page.Pages,
		"PageNums": pageNumbers(page.Pages),
		"Sort":     page.Sort,
	})
}

// myBlogs lists the principal's own posts and displays any feedback
// message carried over a redirect.
func (h *Handler) myBlogs(c *gin.Context) {
	message := decodeMessage(c.Query("message"))

	blogs, err := h.services.Blogs.ListMine(c.Request.Context(), h.currentUserID(c))
	if err != nil {
		if h.log != nil {
			h.log.Errorw("my_blogs_failed", "userId", h.currentUserID(c), "err", err)
		}
		c.HTML(http.StatusOK, "myblogs.html", gin.H{"Error": msgMineFailed})
		return
	}
	c.HTML(http.StatusOK, "myblogs.html", gin.H{
		"Blogs":   blogs,
		"Message": message,
	})
}

func (h *Handler) addBlogPage(c *gin.Context) {
	c.HTML(http.StatusOK, "addblog.html", gin.H{})
}

// createBlog persists a new post owned by the principal. Validation
// failures re-render the form; entered values are not preserved.
func (h *Handler) createBlog(c *gin.Context) {
	title := c.PostForm("title")
	body := c.PostForm("body")

	_, err := h.services.Blogs.Create(c.Request.Context(), h.currentUserID(c), title, body)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, "/myBlogs")
	case errors.Is(err, service.ErrMissingFields):
		c.HTML(http.StatusOK, "addblog.html", gin.H{"Error": msgTitleBodyNeeded})
	default:
		if h.log != nil {
			h.log.Errorw("create_blog_failed", "userId", h.currentUserID(c), "err", err)
		}
		c.HTML(http.StatusOK, "addblog.html", gin.H{"Error": msgCreateFailed})
	}
}

// editBlogPage renders the edit form. Any failure (missing id, lookup
// miss, store error) redirects to the owner listing with an encoded
// message instead of a dead-end error page.
func (h *Handler) editBlogPage(c *gin.Context) {
	blog, err := h.services.Blogs.Get(c.Request.Context(), c.Query("blogId"))
	if err != nil {
		if h.log != nil && !errors.Is(err, service.ErrBlogNotFound) {
			h.log.Errorw("edit_blog_lookup_failed", "blogId", c.Query("blogId"), "err", err)
		}
		redirectWithMessage(c, "/myBlogs", msgEditFailed, nil)
		return
	}
	c.HTML(http.StatusOK, "editblog.html", gin.H{"Blog": blog})
}

// updateBlog rewrites the principal's own post. Failures bounce back to
// the edit form for the same id, carrying an encoded message.
func (h *Handler) updateBlog(c *gin.Context) {
	blogID := c.Query("blogId")
	title := c.PostForm("title")
	body := c.PostForm("body")

	err := h.services.Blogs.Update(c.Request.Context(), h.currentUserID(c), blogID, title, body)
	if err != nil {
		if h.log != nil && !errors.Is(err, service.ErrMissingFields) && !errors.Is(err, service.ErrBlogNotFound) {
			h.log.Errorw("update_blog_failed", "blogId", blogID, "err", err)
		}
		redirectWithMessage(c, "/editblog", msgUpdateFailed, url.Values{"blogId": {blogID}})
		return
	}
	c.Redirect(http.StatusFound, "/myBlogs")
}

// deleteBlog removes the principal's own post.
func (h *Handler) deleteBlog(c *gin.Context) {
	blogID := c.Query("blogId")

	err := h.services.Blogs.Delete(c.Request.Context(), h.currentUserID(c), blogID)
	if err != nil {
		if h.log != nil && !errors.Is(err, service.ErrMissingFields) && !errors.Is(err, service.ErrBlogNotFound) {
			h.log.Errorw("delete_blog_failed", "blogId", blogID, "err", err)
		}
		redirectWithMessage(c, "/myBlogs", msgDeleteFailed, nil)
		return
	}
	c.Redirect(http.StatusFound, "/myBlogs")
}

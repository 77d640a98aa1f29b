package handlers

import (
	"errors"
	"net/http"

	"miniblog/internal/service"

	"github.com/gin-gonic/gin"
)

// User-visible auth messages. Always friendly static strings; the
// underlying error goes to the log, never to the page.
const (
	msgUserExists    = "User already exists. Please try logging in."
	msgRegistered    = "User registered successfully! Please log in."
	msgUserNotFound  = "User not found. Please sign up."
	msgWrongPassword = "Invalid password."
	msgFieldsNeeded  = "All fields are required."
	msgGenericError  = "Something went wrong. Please try again."
)

// Session cookie lifetime mirrors the server-side TTL (24h).
const sessionCookieMaxAge = 24 * 60 * 60

func (h *Handler) signupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *Handler) register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	_, err := h.services.Authorization.SignUp(c.Request.Context(), name, email, password)
	switch {
	case err == nil:
		c.HTML(http.StatusOK, "login.html", gin.H{"Message": msgRegistered})
	case errors.Is(err, service.ErrEmailTaken):
		c.HTML(http.StatusOK, "signup.html", gin.H{"Error": msgUserExists})
	case errors.Is(err, service.ErrMissingFields):
		c.HTML(http.StatusOK, "signup.html", gin.H{"Error": msgFieldsNeeded})
	default:
		if h.log != nil {
			h.log.Errorw("register_failed", "email", email, "err", err)
		}
		c.HTML(http.StatusOK, "signup.html", gin.H{"Error": msgGenericError})
	}
}

func (h *Handler) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.services.Authorization.Authenticate(c.Request.Context(), email, password)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": msgUserNotFound})
		return
	case errors.Is(err, service.ErrInvalidPassword):
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": msgWrongPassword})
		return
	case err != nil:
		if h.log != nil {
			h.log.Errorw("login_failed", "email", email, "err", err)
		}
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": msgGenericError})
		return
	}

	token, err := h.services.Sessions.Create(user.ID)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("session_create_failed", "userId", user.ID, "err", err)
		}
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": msgGenericError})
		return
	}

	c.SetCookie(sessionCookie, token, sessionCookieMaxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil && token != "" {
		h.services.Sessions.Destroy(token)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// allUsers dumps every registered account as JSON. Password hashes are
// excluded by the model's tags.
func (h *Handler) allUsers(c *gin.Context) {
	users, err := h.services.Authorization.ListUsers(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("list_users_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/auth"
	"taskmanager/internal/flash"
	"taskmanager/internal/forms"
	"taskmanager/internal/middleware"
	"taskmanager/internal/services"
)

type AuthHandler struct {
	users    services.UserService
	sessions *auth.Sessions
}

func NewAuthHandler(users services.UserService, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions}
}

// GET /
func (h *AuthHandler) Index(c *gin.Context) {
	render(c, http.StatusOK, "index.html", gin.H{"Title": "Task Manager"})
}

// GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"Title": "Log in",
		"Form":  &forms.LoginForm{},
	})
}

// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "bad form data")
		return
	}
	form := forms.ParseLoginForm(c.Request.PostForm)
	if !form.Validate() {
		render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in", "Form": form})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("[auth][login][err] username=%q: %v", form.Username, err)
		}
		form.Errors.Add("", "Please enter a correct username and password. "+
			"Note that both fields may be case-sensitive.")
		render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in", "Form": form})
		return
	}

	token, err := h.sessions.Issue(user.ID, user.Username)
	if err != nil {
		log.Printf("[auth][login][err] issue token for userID=%d: %v", user.ID, err)
		flash.Error(c, "Something went wrong, please try again")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	middleware.SetSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	log.Printf("[auth][login][ok] userID=%d username=%q", user.ID, user.Username)

	flash.Success(c, "You are logged in")
	c.Redirect(http.StatusFound, "/")
}

// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	flash.Info(c, "You are logged out")
	c.Redirect(http.StatusFound, "/")
}

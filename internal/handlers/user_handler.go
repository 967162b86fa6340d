package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/flash"
	"taskmanager/internal/forms"
	"taskmanager/internal/middleware"
	"taskmanager/internal/models"
	"taskmanager/internal/repositories"
	"taskmanager/internal/services"
)

type UserHandler struct {
	service services.UserService
	users   repositories.UserRepository
}

func NewUserHandler(service services.UserService, users repositories.UserRepository) *UserHandler {
	return &UserHandler{service: service, users: users}
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("[user][list][err] %v", err)
		flash.Error(c, "Something went wrong, please try again")
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, http.StatusOK, "users.html", gin.H{
		"Title": "Users",
		"Users": users,
	})
}

// GET /users/create
func (h *UserHandler) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "user_form.html", gin.H{
		"Title":        "Register",
		"ButtonText":   "Register",
		"Action":       "/users/create",
		"Registration": true,
		"Form":         &forms.RegisterForm{Errors: forms.Errors{}},
	})
}

// POST /users/create
func (h *UserHandler) Register(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "bad form data")
		return
	}
	form := forms.ParseRegisterForm(c.Request.PostForm)

	rerender := func() {
		render(c, http.StatusOK, "user_form.html", gin.H{
			"Title":        "Register",
			"ButtonText":   "Register",
			"Action":       "/users/create",
			"Registration": true,
			"Form":         form,
		})
	}

	if !form.Validate(c.Request.Context(), h.users) {
		rerender()
		return
	}

	user := &models.User{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	}
	if err := h.service.Register(c.Request.Context(), user, form.Password1); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			form.AddDuplicateUsername()
			rerender()
			return
		}
		log.Printf("[user][register][err] username=%q: %v", form.Username, err)
		flash.Error(c, "Something went wrong, please try again")
		c.Redirect(http.StatusFound, "/users/create")
		return
	}

	log.Printf("[user][register][ok] id=%d username=%q", user.ID, user.Username)
	flash.Success(c, "User was successfully registered")
	c.Redirect(http.StatusFound, "/login")
}

// requireSelf enforces the "a user edits only themself" rule. On mismatch
// the mutation never runs; the caller lands back on the user list with an
// error flash.
func requireSelf(c *gin.Context, targetID int64) bool {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok || callerID != targetID {
		flash.Error(c, "You do not have permission to change another user")
		c.Redirect(http.StatusFound, "/users")
		return false
	}
	return true
}

// GET /users/:id/update
func (h *UserHandler) UpdatePage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/users")
		return
	}
	if !requireSelf(c, id) {
		return
	}
	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		flash.Error(c, "User not found")
		c.Redirect(http.StatusFound, "/users")
		return
	}
	render(c, http.StatusOK, "user_form.html", gin.H{
		"Title":      "Edit user",
		"ButtonText": "Update",
		"Action":     c.Request.URL.Path,
		"Form": &forms.UserUpdateForm{
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Errors:    forms.Errors{},
		},
	})
}

// POST /users/:id/update
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/users")
		return
	}
	if !requireSelf(c, id) {
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "bad form data")
		return
	}
	form := forms.ParseUserUpdateForm(c.Request.PostForm)

	rerender := func() {
		render(c, http.StatusOK, "user_form.html", gin.H{
			"Title":      "Edit user",
			"ButtonText": "Update",
			"Action":     c.Request.URL.Path,
			"Form":       form,
		})
	}

	if !form.Validate(c.Request.Context(), h.users, id) {
		rerender()
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		flash.Error(c, "User not found")
		c.Redirect(http.StatusFound, "/users")
		return
	}
	user.Username = form.Username
	user.FirstName = form.FirstName
	user.LastName = form.LastName
	user.Email = form.Email

	passwordChanged, err := h.service.Update(c.Request.Context(), user, form.Password1)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			form.AddDuplicateUsername()
			rerender()
			return
		}
		log.Printf("[user][update][err] id=%d: %v", id, err)
		flash.Error(c, "Something went wrong, please try again")
		c.Redirect(http.StatusFound, "/users")
		return
	}

	log.Printf("[user][update][ok] id=%d username=%q password_changed=%v", id, user.Username, passwordChanged)
	flash.Success(c, "User was successfully changed")
	if passwordChanged {
		// the old session was minted for the old credentials
		middleware.ClearSessionCookie(c)
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/users")
}

// GET /users/:id/delete
func (h *UserHandler) DeletePage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/users")
		return
	}
	if !requireSelf(c, id) {
		return
	}
	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		flash.Error(c, "User not found")
		c.Redirect(http.StatusFound, "/users")
		return
	}
	render(c, http.StatusOK, "delete.html", gin.H{
		"Title":      "Delete User",
		"ObjectType": "User",
		"ObjectName": user.FullName(),
		"Action":     c.Request.URL.Path,
		"CancelURL":  "/users",
	})
}

// POST /users/:id/delete
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/users")
		return
	}
	if !requireSelf(c, id) {
		return
	}

	err := h.service.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		log.Printf("[user][delete][ok] id=%d", id)
		// self-deletion kills the session too
		middleware.ClearSessionCookie(c)
		flash.Success(c, "User was successfully deleted")
		flash.Info(c, "You are logged out")
	case errors.Is(err, repositories.ErrInUse):
		flash.Error(c, "Cannot delete a user because it is in use")
	case errors.Is(err, repositories.ErrNotFound):
		flash.Error(c, "User not found")
	default:
		log.Printf("[user][delete][err] id=%d: %v", id, err)
		flash.Error(c, "Something went wrong, please try again")
	}
	c.Redirect(http.StatusFound, "/users")
}

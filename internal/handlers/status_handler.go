package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/flash"
	"taskmanager/internal/forms"
	"taskmanager/internal/models"
	"taskmanager/internal/repositories"
	"taskmanager/internal/services"
)

type StatusHandler struct {
	service  services.StatusService
	statuses repositories.StatusRepository
}

func NewStatusHandler(service services.StatusService, statuses repositories.StatusRepository) *StatusHandler {
	return &StatusHandler{service: service, statuses: statuses}
}

// GET /statuses
func (h *StatusHandler) List(c *gin.Context) {
	statuses, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("[status][list][err] %v", err)
		flash.Error(c, "Something went wrong, please try again")
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, http.StatusOK, "statuses.html", gin.H{
		"Title":    "Statuses",
		"Statuses": statuses,
	})
}

// GET /statuses/create
func (h *StatusHandler) CreatePage(c *gin.Context) {
	render(c, http.StatusOK, "status_form.html", gin.H{
		"Title":      "Create Status",
		"ButtonText": "Create",
		"Action":     "/statuses/create",
		"Form":       &forms.StatusForm{Errors: forms.Errors{}},
	})
}

// POST /statuses/create
func (h *StatusHandler) Create(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "bad form data")
		return
	}
	form := forms.ParseStatusForm(c.Request.PostForm)

	rerender := func() {
		render(c, http.StatusOK, "status_form.html", gin.H{
			"Title":      "Create Status",
			"ButtonText": "Create",
			"Action":     "/statuses/create",
			"Form":       form,
		})
	}

	if !form.Validate(c.Request.Context(), h.statuses, 0) {
		rerender()
		return
	}

	status := &models.Status{Name: form.Name}
	if err := h.service.Create(c.Request.Context(), status); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// lost the race against a concurrent create of the same name
			form.AddDuplicateName()
			rerender()
			return
		}
		log.Printf("[status][create][err] name=%q: %v", form.Name, err)
		flash.Error(c, "Something went wrong, please try again")
		c.Redirect(http.StatusFound, "/statuses")
		return
	}

	log.Printf("[status][create][ok] id=%d name=%q", status.ID, status.Name)
	flash.Success(c, "Status was successfully created")
	c.Redirect(http.StatusFound, "/statuses")
}

// GET /statuses/:id/update
func (h *StatusHandler) UpdatePage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/statuses")
		return
	}
	status, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		flash.Error(c, "Status not found")
		c.Redirect(http.StatusFound, "/statuses")
		return
	}
	render(c, http.StatusOK, "status_form.html", gin.H{
		"Title":      "Edit Status",
		"ButtonText": "Edit",
		"Action":     c.Request.URL.Path,
		"Form":       &forms.StatusForm{Name: status.Name, Errors: forms.Errors{}},
	})
}

// POST /statuses/:id/update
func (h *StatusHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/statuses")
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "bad form data")
		return
	}
	form := forms.ParseStatusForm(c.Request.PostForm)

	rerender := func() {
		render(c, http.StatusOK, "status_form.html", gin.H{
			"Title":      "Edit Status",
			"ButtonText": "Edit",
			"Action":     c.Request.URL.Path,
			"Form":       form,
		})
	}

	if !form.Validate(c.Request.Context(), h.statuses, id) {
		rerender()
		return
	}

	status := &models.Status{ID: id, Name: form.Name}
	if err := h.service.Update(c.Request.Context(), status); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			form.AddDuplicateName()
			rerender()
		case errors.Is(err, repositories.ErrNotFound):
			flash.Error(c, "Status not found")
			c.Redirect(http.StatusFound, "/statuses")
		default:
			log.Printf("[status][update][err] id=%d: %v", id, err)
			flash.Error(c, "Something went wrong, please try again")
			c.Redirect(http.StatusFound, "/statuses")
		}
		return
	}

	log.Printf("[status][update][ok] id=%d name=%q", id, form.Name)
	flash.Success(c, "Status was successfully updated")
	c.Redirect(http.StatusFound, "/statuses")
}

// GET /statuses/:id/delete
func (h *StatusHandler) DeletePage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/statuses")
		return
	}
	status, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		flash.Error(c, "Status not found")
		c.Redirect(http.StatusFound, "/statuses")
		return
	}
	render(c, http.StatusOK, "delete.html", gin.H{
		"Title":      "Delete Status",
		"ObjectType": "Status",
		"ObjectName": status.Name,
		"Action":     c.Request.URL.Path,
		"CancelURL":  "/statuses",
	})
}

// POST /statuses/:id/delete
func (h *StatusHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/statuses")
		return
	}
	err := h.service.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		log.Printf("[status][delete][ok] id=%d", id)
		flash.Success(c, "Status was successfully deleted")
	case errors.Is(err, repositories.ErrInUse):
		flash.Error(c, "Cannot delete status because it is in use")
	case errors.Is(err, repositories.ErrNotFound):
		flash.Error(c, "Status not found")
	default:
		log.Printf("[status][delete][err] id=%d: %v", id, err)
		flash.Error(c, "Something went wrong, please try again")
	}
	c.Redirect(http.StatusFound, "/statuses")
}

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

type LabelHandler struct {
	service services.LabelService
	labels  repositories.LabelRepository
}

func NewLabelHandler(service services.LabelService, labels repositories.LabelRepository) *LabelHandler {
	return &LabelHandler{service: service, labels: labels}
}

// GET /labels
func (h *LabelHandler) List(c *gin.Context) {
	labels, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("[label][list][err] %v", err)
		flash.Error(c, "Something went wrong, please try again")
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, http.StatusOK, "labels.html", gin.H{
		"Title":  "Labels",
		"Labels": labels,
	})
}

// GET /labels/create
func (h *LabelHandler) CreatePage(c *gin.Context) {
	render(c, http.StatusOK, "label_form.html", gin.H{
		"Title":      "Create Label",
		"ButtonText": "Create",
		"Action":     "/labels/create",
		"Form":       &forms.LabelForm{Errors: forms.Errors{}},
	})
}

// POST /labels/create
func (h *LabelHandler) Create(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "bad form data")
		return
	}
	form := forms.ParseLabelForm(c.Request.PostForm)

	rerender := func() {
		render(c, http.StatusOK, "label_form.html", gin.H{
			"Title":      "Create Label",
			"ButtonText": "Create",
			"Action":     "/labels/create",
			"Form":       form,
		})
	}

	if !form.Validate(c.Request.Context(), h.labels, 0) {
		rerender()
		return
	}

	label := &models.Label{Name: form.Name}
	if err := h.service.Create(c.Request.Context(), label); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			form.AddDuplicateName()
			rerender()
			return
		}
		log.Printf("[label][create][err] name=%q: %v", form.Name, err)
		flash.Error(c, "Something went wrong, please try again")
		c.Redirect(http.StatusFound, "/labels")
		return
	}

	log.Printf("[label][create][ok] id=%d name=%q", label.ID, label.Name)
	flash.Success(c, "Label was successfully created")
	c.Redirect(http.StatusFound, "/labels")
}

// GET /labels/:id/update
func (h *LabelHandler) UpdatePage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/labels")
		return
	}
	label, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		flash.Error(c, "Label not found")
		c.Redirect(http.StatusFound, "/labels")
		return
	}
	render(c, http.StatusOK, "label_form.html", gin.H{
		"Title":      "Edit Label",
		"ButtonText": "Update",
		"Action":     c.Request.URL.Path,
		"Form":       &forms.LabelForm{Name: label.Name, Errors: forms.Errors{}},
	})
}

// POST /labels/:id/update
func (h *LabelHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/labels")
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "bad form data")
		return
	}
	form := forms.ParseLabelForm(c.Request.PostForm)

	rerender := func() {
		render(c, http.StatusOK, "label_form.html", gin.H{
			"Title":      "Edit Label",
			"ButtonText": "Update",
			"Action":     c.Request.URL.Path,
			"Form":       form,
		})
	}

	if !form.Validate(c.Request.Context(), h.labels, id) {
		rerender()
		return
	}

	label := &models.Label{ID: id, Name: form.Name}
	if err := h.service.Update(c.Request.Context(), label); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			form.AddDuplicateName()
			rerender()
		case errors.Is(err, repositories.ErrNotFound):
			flash.Error(c, "Label not found")
			c.Redirect(http.StatusFound, "/labels")
		default:
			log.Printf("[label][update][err] id=%d: %v", id, err)
			flash.Error(c, "Something went wrong, please try again")
			c.Redirect(http.StatusFound, "/labels")
		}
		return
	}

	log.Printf("[label][update][ok] id=%d name=%q", id, form.Name)
	flash.Success(c, "Label was successfully updated")
	c.Redirect(http.StatusFound, "/labels")
}

// GET /labels/:id/delete
func (h *LabelHandler) DeletePage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/labels")
		return
	}
	label, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		flash.Error(c, "Label not found")
		c.Redirect(http.StatusFound, "/labels")
		return
	}
	render(c, http.StatusOK, "delete.html", gin.H{
		"Title":      "Delete Label",
		"ObjectType": "Label",
		"ObjectName": label.Name,
		"Action":     c.Request.URL.Path,
		"CancelURL":  "/labels",
	})
}

// POST /labels/:id/delete
func (h *LabelHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/labels")
		return
	}
	err := h.service.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		log.Printf("[label][delete][ok] id=%d", id)
		flash.Success(c, "Label was successfully deleted")
	case errors.Is(err, repositories.ErrInUse):
		flash.Error(c, "Cannot delete label because it is in use")
	case errors.Is(err, repositories.ErrNotFound):
		flash.Error(c, "Label not found")
	default:
		log.Printf("[label][delete][err] id=%d: %v", id, err)
		flash.Error(c, "Something went wrong, please try again")
	}
	c.Redirect(http.StatusFound, "/labels")
}

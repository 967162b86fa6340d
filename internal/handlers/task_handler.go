package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/flash"
	"taskmanager/internal/forms"
	"taskmanager/internal/middleware"
	"taskmanager/internal/models"
	"taskmanager/internal/pdf"
	"taskmanager/internal/repositories"
	"taskmanager/internal/services"
)

type TaskHandler struct {
	service  services.TaskService
	tasks    repositories.TaskRepository
	statuses repositories.StatusRepository
	users    repositories.UserRepository
	labels   repositories.LabelRepository
	reports  pdf.Generator
}

func NewTaskHandler(
	service services.TaskService,
	tasks repositories.TaskRepository,
	statuses repositories.StatusRepository,
	users repositories.UserRepository,
	labels repositories.LabelRepository,
	reports pdf.Generator,
) *TaskHandler {
	return &TaskHandler{
		service:  service,
		tasks:    tasks,
		statuses: statuses,
		users:    users,
		labels:   labels,
		reports:  reports,
	}
}

// filterFromQuery builds the task filter from the list's query parameters.
// Empty and malformed values impose no constraint, matching how the filter
// selects on the page behave (the blank option submits "").
func filterFromQuery(c *gin.Context) models.TaskFilter {
	var filter models.TaskFilter
	if v := c.Query("status"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.StatusID = &id
		} else {
			log.Printf("[task][list][warn] bad status=%q: %v", v, err)
		}
	}
	if v := c.Query("executor"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.ExecutorID = &id
		} else {
			log.Printf("[task][list][warn] bad executor=%q: %v", v, err)
		}
	}
	if v := c.Query("label"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.LabelID = &id
		} else {
			log.Printf("[task][list][warn] bad label=%q: %v", v, err)
		}
	}
	if v := c.Query("my_tasks"); v != "" {
		if callerID, ok := middleware.CurrentUserID(c); ok {
			filter.CreatorID = &callerID
		}
	}
	return filter
}

// GET /tasks
func (h *TaskHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	filter := filterFromQuery(c)

	tasks, err := h.service.GetAll(ctx, filter)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		flash.Error(c, "Something went wrong, please try again")
		c.Redirect(http.StatusFound, "/")
		return
	}

	statuses, err := h.statuses.List(ctx)
	if err != nil {
		log.Printf("[task][list][err] statuses: %v", err)
	}
	users, err := h.users.List(ctx)
	if err != nil {
		log.Printf("[task][list][err] users: %v", err)
	}
	labels, err := h.labels.List(ctx)
	if err != nil {
		log.Printf("[task][list][err] labels: %v", err)
	}

	render(c, http.StatusOK, "tasks.html", gin.H{
		"Title":    "Tasks",
		"Tasks":    tasks,
		"Statuses": statuses,
		"Users":    users,
		"Labels":   labels,
		"Query": gin.H{
			"Status":   c.Query("status"),
			"Executor": c.Query("executor"),
			"Label":    c.Query("label"),
			"MyTasks":  c.Query("my_tasks") != "",
		},
	})
}

// GET /tasks/export.pdf
//
// Exports the list under the same filter parameters the list page uses.
func (h *TaskHandler) ExportPDF(c *gin.Context) {
	tasks, err := h.service.GetAll(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		log.Printf("[task][export][err] %v", err)
		flash.Error(c, "Something went wrong, please try again")
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="tasks.pdf"`)
	if err := h.reports.TaskList(c.Writer, tasks, time.Now()); err != nil {
		log.Printf("[task][export][err] render: %v", err)
	}
}

// GET /tasks/:id
func (h *TaskHandler) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/tasks")
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		flash.Error(c, "Task not found")
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	labels := h.taskLabels(c, task)
	render(c, http.StatusOK, "task_detail.html", gin.H{
		"Title":      task.Name,
		"Task":       task,
		"TaskLabels": labels,
	})
}

// taskLabels resolves a task's label ids for display.
func (h *TaskHandler) taskLabels(c *gin.Context, task *models.Task) []models.Label {
	var out []models.Label
	for _, id := range task.LabelIDs {
		label, err := h.labels.GetByID(c.Request.Context(), id)
		if err != nil {
			log.Printf("[task][labels][warn] task=%d label=%d: %v", task.ID, id, err)
			continue
		}
		out = append(out, *label)
	}
	return out
}

func (h *TaskHandler) formDeps() forms.TaskFormDeps {
	return forms.TaskFormDeps{
		Tasks:    h.tasks,
		Statuses: h.statuses,
		Users:    h.users,
		Labels:   h.labels,
	}
}

func (h *TaskHandler) renderForm(c *gin.Context, title, button, action string, form *forms.TaskForm) {
	ctx := c.Request.Context()
	statuses, err := h.statuses.List(ctx)
	if err != nil {
		log.Printf("[task][form][err] statuses: %v", err)
	}
	users, err := h.users.List(ctx)
	if err != nil {
		log.Printf("[task][form][err] users: %v", err)
	}
	labels, err := h.labels.List(ctx)
	if err != nil {
		log.Printf("[task][form][err] labels: %v", err)
	}
	render(c, http.StatusOK, "task_form.html", gin.H{
		"Title":      title,
		"ButtonText": button,
		"Action":     action,
		"Form":       form,
		"Statuses":   statuses,
		"Users":      users,
		"Labels":     labels,
	})
}

// GET /tasks/create
func (h *TaskHandler) CreatePage(c *gin.Context) {
	h.renderForm(c, "Create Task", "Create", "/tasks/create",
		&forms.TaskForm{Errors: forms.Errors{}})
}

// POST /tasks/create
func (h *TaskHandler) Create(c *gin.Context) {
	callerID, _ := middleware.CurrentUserID(c)
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "bad form data")
		return
	}
	form := forms.ParseTaskForm(c.Request.PostForm)

	if !form.Validate(c.Request.Context(), h.formDeps(), 0) {
		h.renderForm(c, "Create Task", "Create", "/tasks/create", form)
		return
	}

	task := &models.Task{
		Name:        form.Name,
		Description: form.Description,
		StatusID:    form.StatusID,
		ExecutorID:  form.ExecutorID,
		LabelIDs:    form.LabelIDs,
	}
	created, err := h.service.Create(c.Request.Context(), task, callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			form.AddDuplicateName()
			h.renderForm(c, "Create Task", "Create", "/tasks/create", form)
			return
		}
		log.Printf("[task][create][err] name=%q: %v", form.Name, err)
		flash.Error(c, "Something went wrong, please try again")
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	log.Printf("[task][create][ok] id=%d name=%q creator=%d", created.ID, created.Name, callerID)
	flash.Success(c, "Task was successfully created")
	c.Redirect(http.StatusFound, "/tasks")
}

// GET /tasks/:id/update
func (h *TaskHandler) UpdatePage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/tasks")
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		flash.Error(c, "Task not found")
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	form := &forms.TaskForm{
		Name:        task.Name,
		Description: task.Description,
		RawStatus:   strconv.FormatInt(task.StatusID, 10),
		Errors:      forms.Errors{},
	}
	if task.ExecutorID != nil {
		form.RawExecutor = strconv.FormatInt(*task.ExecutorID, 10)
	}
	for _, labelID := range task.LabelIDs {
		form.RawLabels = append(form.RawLabels, strconv.FormatInt(labelID, 10))
	}
	h.renderForm(c, "Edit Task", "Update", c.Request.URL.Path, form)
}

// POST /tasks/:id/update
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/tasks")
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "bad form data")
		return
	}
	form := forms.ParseTaskForm(c.Request.PostForm)

	if !form.Validate(c.Request.Context(), h.formDeps(), id) {
		h.renderForm(c, "Edit Task", "Update", c.Request.URL.Path, form)
		return
	}

	updateData := &models.Task{
		Name:        form.Name,
		Description: form.Description,
		StatusID:    form.StatusID,
		ExecutorID:  form.ExecutorID,
		LabelIDs:    form.LabelIDs,
	}
	if _, err := h.service.Update(c.Request.Context(), id, updateData); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			form.AddDuplicateName()
			h.renderForm(c, "Edit Task", "Update", c.Request.URL.Path, form)
		case errors.Is(err, repositories.ErrNotFound):
			flash.Error(c, "Task not found")
			c.Redirect(http.StatusFound, "/tasks")
		default:
			log.Printf("[task][update][err] id=%d: %v", id, err)
			flash.Error(c, "Something went wrong, please try again")
			c.Redirect(http.StatusFound, "/tasks")
		}
		return
	}

	log.Printf("[task][update][ok] id=%d name=%q", id, form.Name)
	flash.Success(c, "Task was successfully updated")
	c.Redirect(http.StatusFound, "/tasks")
}

// GET /tasks/:id/delete
func (h *TaskHandler) DeletePage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/tasks")
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		flash.Error(c, "Task not found")
		c.Redirect(http.StatusFound, "/tasks")
		return
	}
	callerID, _ := middleware.CurrentUserID(c)
	if task.CreatorID != callerID {
		flash.Error(c, "You don't have permission to delete this task. Only the task creator can delete it.")
		c.Redirect(http.StatusFound, "/tasks")
		return
	}
	render(c, http.StatusOK, "delete.html", gin.H{
		"Title":      "Delete Task",
		"ObjectType": "Task",
		"ObjectName": task.Name,
		"Action":     c.Request.URL.Path,
		"CancelURL":  "/tasks",
	})
}

// POST /tasks/:id/delete
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/tasks")
		return
	}
	callerID, _ := middleware.CurrentUserID(c)

	err := h.service.Delete(c.Request.Context(), id, callerID)
	switch {
	case err == nil:
		log.Printf("[task][delete][ok] id=%d by=%d", id, callerID)
		flash.Success(c, "Task was successfully deleted")
	case errors.Is(err, services.ErrNotCreator):
		flash.Error(c, "You don't have permission to delete this task. Only the task creator can delete it.")
	case errors.Is(err, repositories.ErrNotFound):
		flash.Error(c, "Task not found")
	default:
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		flash.Error(c, "Something went wrong, please try again")
	}
	c.Redirect(http.StatusFound, "/tasks")
}

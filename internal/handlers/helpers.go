package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/flash"
	"taskmanager/internal/middleware"
)

// render wraps c.HTML with the context every page needs: queued flash
// messages and the authenticated caller for the navbar.
func render(c *gin.Context, status int, template string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = flash.Pop(c)
	if id, ok := middleware.CurrentUserID(c); ok {
		data["CurrentUserID"] = id
		data["CurrentUsername"] = middleware.CurrentUsername(c)
	}
	c.HTML(status, template, data)
}

// paramID parses the :id path segment; ok=false covers both garbage and
// non-positive values.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

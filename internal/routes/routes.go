package routes

import (
	"github.com/gin-gonic/gin"

	"taskmanager/internal/handlers"
	"taskmanager/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	statusHandler *handlers.StatusHandler,
	labelHandler *handlers.LabelHandler,
	taskHandler *handlers.TaskHandler,
) *gin.Engine {

	// ---- public
	r.GET("/", authHandler.Index)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	// the user list and registration are open; everything mutating an
	// existing user is owner-only behind the auth gate
	r.GET("/users", userHandler.List)
	r.GET("/users/create", userHandler.RegisterPage)
	r.POST("/users/create", userHandler.Register)

	users := r.Group("/users", middleware.RequireAuth())
	{
		users.GET("/:id/update", userHandler.UpdatePage)
		users.POST("/:id/update", userHandler.Update)
		users.GET("/:id/delete", userHandler.DeletePage)
		users.POST("/:id/delete", userHandler.Delete)
	}

	statuses := r.Group("/statuses", middleware.RequireAuth())
	{
		statuses.GET("", statusHandler.List)
		statuses.GET("/create", statusHandler.CreatePage)
		statuses.POST("/create", statusHandler.Create)
		statuses.GET("/:id/update", statusHandler.UpdatePage)
		statuses.POST("/:id/update", statusHandler.Update)
		statuses.GET("/:id/delete", statusHandler.DeletePage)
		statuses.POST("/:id/delete", statusHandler.Delete)
	}

	labels := r.Group("/labels", middleware.RequireAuth())
	{
		labels.GET("", labelHandler.List)
		labels.GET("/create", labelHandler.CreatePage)
		labels.POST("/create", labelHandler.Create)
		labels.GET("/:id/update", labelHandler.UpdatePage)
		labels.POST("/:id/update", labelHandler.Update)
		labels.GET("/:id/delete", labelHandler.DeletePage)
		labels.POST("/:id/delete", labelHandler.Delete)
	}

	tasks := r.Group("/tasks", middleware.RequireAuth())
	{
		tasks.GET("", taskHandler.List)
		tasks.GET("/export.pdf", taskHandler.ExportPDF)
		tasks.GET("/create", taskHandler.CreatePage)
		tasks.POST("/create", taskHandler.Create)
		tasks.GET("/:id", taskHandler.Detail)
		tasks.GET("/:id/update", taskHandler.UpdatePage)
		tasks.POST("/:id/update", taskHandler.Update)
		tasks.GET("/:id/delete", taskHandler.DeletePage)
		tasks.POST("/:id/delete", taskHandler.Delete)
	}

	return r
}

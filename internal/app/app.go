package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"taskmanager/internal/auth"
	"taskmanager/internal/config"
	"taskmanager/internal/handlers"
	"taskmanager/internal/middleware"
	"taskmanager/internal/pdf"
	"taskmanager/internal/repositories"
	"taskmanager/internal/routes"
	"taskmanager/internal/services"
)

func Run() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatal("database is unreachable: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	statusRepo := repositories.NewStatusRepository(db)
	labelRepo := repositories.NewLabelRepository(db)
	taskRepo := repositories.NewTaskRepository(db)

	// === Services ===
	notifier := services.NewEmailNotifier(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	userService := services.NewUserService(userRepo)
	statusService := services.NewStatusService(statusRepo)
	labelService := services.NewLabelService(labelRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, notifier)

	sessions := auth.NewSessions(cfg.Session.Secret, cfg.Session.TTL())
	reports := pdf.NewReportGenerator()

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, sessions)
	userHandler := handlers.NewUserHandler(userService, userRepo)
	statusHandler := handlers.NewStatusHandler(statusService, statusRepo)
	labelHandler := handlers.NewLabelHandler(labelService, labelRepo)
	taskHandler := handlers.NewTaskHandler(taskService, taskRepo, statusRepo, userRepo, labelRepo, reports)

	// === Gin ===
	router := gin.Default()
	router.Use(middleware.Identify(sessions))
	router.LoadHTMLGlob("web/templates/*.html")

	routes.SetupRoutes(
		router,
		authHandler,
		userHandler,
		statusHandler,
		labelHandler,
		taskHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server stopped: ", err)
	}
}

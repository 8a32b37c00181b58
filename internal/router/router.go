package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-manager/internal/config"
	"github.com/yukikurage/task-manager/internal/handlers"
	"github.com/yukikurage/task-manager/internal/middleware"
	"github.com/yukikurage/task-manager/internal/policy"
	"github.com/yukikurage/task-manager/internal/repository"
	"github.com/yukikurage/task-manager/internal/services"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers onto a gin engine. Shared
// between the server entrypoint and the handler tests so both exercise the
// same routing and middleware chain.
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	statusRepo := repository.NewTaskStatusRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := services.NewAuthService(userRepo, tokenService)
	userService := services.NewUserService(userRepo, taskRepo)
	statusService := services.NewTaskStatusService(statusRepo, taskRepo)
	labelService := services.NewLabelService(labelRepo, taskRepo)
	taskService := services.NewTaskService(taskRepo, statusRepo, userRepo, labelRepo)

	accessPolicy := policy.New(taskRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, accessPolicy)
	statusHandler := handlers.NewTaskStatusHandler(statusService)
	labelHandler := handlers.NewLabelHandler(labelService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := gin.Default()

	// The gate runs on every request; it only establishes the principal and
	// never rejects. RequireAuth below produces the 401s.
	r.Use(middleware.Authenticate(tokenService, userRepo))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Task Manager"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/login", authHandler.Login)

		users := api.Group("/users")
		{
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.Get)
			users.POST("", userHandler.Create)
			users.PUT("/:id", middleware.RequireAuth(), userHandler.Update)
			users.DELETE("/:id", middleware.RequireAuth(), userHandler.Delete)
		}

		statuses := api.Group("/task_statuses")
		{
			statuses.GET("", statusHandler.List)
			statuses.GET("/:id", statusHandler.Get)
			statuses.GET("/slug/:slug", statusHandler.GetBySlug)
			statuses.POST("", middleware.RequireAuth(), statusHandler.Create)
			statuses.PUT("/:id", middleware.RequireAuth(), statusHandler.Update)
			statuses.DELETE("/:id", middleware.RequireAuth(), statusHandler.Delete)
		}

		labels := api.Group("/labels")
		labels.Use(middleware.RequireAuth())
		{
			labels.GET("", labelHandler.List)
			labels.GET("/:id", labelHandler.Get)
			labels.POST("", labelHandler.Create)
			labels.PUT("/:id", labelHandler.Update)
			labels.DELETE("/:id", labelHandler.Delete)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.List)
			tasks.GET("/:id", taskHandler.Get)
			tasks.POST("", taskHandler.Create)
			tasks.PUT("/:id", taskHandler.Update)
			tasks.DELETE("/:id", taskHandler.Delete)
		}
	}

	return r
}

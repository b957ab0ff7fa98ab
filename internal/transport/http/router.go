package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"github.com/taskloop/taskloop/internal/token"
	"github.com/taskloop/taskloop/internal/transport/http/handler"
	"github.com/taskloop/taskloop/internal/transport/http/middleware"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	taskHandler *handler.TaskHandler,
	tokens *token.Manager,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	r.NoRoute(handler.RouteNotFound)

	v1 := r.Group("/api/v1")
	v1.GET("/health", handler.Health)

	auth := v1.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	authMW := middleware.Auth(tokens)

	me := v1.Group("/me", authMW)
	me.GET("", userHandler.Me)
	me.PUT("", userHandler.UpdateMe)

	tasks := v1.Group("/tasks", authMW)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.GetByID)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	return r
}

package task

import (
	"lemonpay/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		tasks.GET("", middleware.RBACAuthorize(rbacService, "task", "read"), handler.GetAll)
		tasks.GET("/me", middleware.RBACAuthorize(rbacService, "task", "read"), handler.GetMine)
		tasks.GET("/:id", middleware.RBACAuthorize(rbacService, "task", "read"), handler.GetById)
		tasks.POST("", middleware.RBACAuthorize(rbacService, "task", "create"), handler.Create)
		tasks.PUT("/:id/status", middleware.RBACAuthorize(rbacService, "task", "update"), handler.SetStatus)
	}
}

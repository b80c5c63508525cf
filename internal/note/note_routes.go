package note

import (
	"lemonpay/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	notes := r.Group("/notes")
	notes.Use(middleware.AuthMiddleware())
	{
		notes.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "note", "read"), handler.GetByEmployee)
		notes.POST("", middleware.RBACAuthorize(rbacService, "note", "create"), handler.Create)
		notes.PUT("/:id", middleware.RBACAuthorize(rbacService, "note", "update"), handler.Update)
		notes.DELETE("/:id", middleware.RBACAuthorize(rbacService, "note", "update"), handler.Delete)
	}
}

package attendance

import (
	"lemonpay/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/punch-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), handler.PunchIn)
		attendances.POST("/punch-out", middleware.RBACAuthorize(rbacService, "attendance", "create"), handler.PunchOut)
		attendances.GET("/me", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetMine)
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), handler.GetAll)
	}
}

package expense

import (
	"lemonpay/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	expenses := r.Group("/expenses")
	expenses.Use(middleware.AuthMiddleware())
	{
		expenses.GET("", middleware.RBACAuthorize(rbacService, "expense", "read"), handler.GetAll)
		expenses.GET("/me", middleware.RBACAuthorize(rbacService, "expense", "read"), handler.GetMine)
		expenses.GET("/:id", middleware.RBACAuthorize(rbacService, "expense", "read"), handler.GetById)
		expenses.PUT("/:id/status", middleware.RBACAuthorize(rbacService, "expense", "approve"), handler.SetStatus)

		if redisClient != nil {
			expenses.POST("",
				middleware.RBACAuthorize(rbacService, "expense", "create"),
				middleware.Idempotency(redisClient),
				handler.Submit,
			)
		} else {
			expenses.POST("", middleware.RBACAuthorize(rbacService, "expense", "create"), handler.Submit)
		}
	}
}

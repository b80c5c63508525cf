package leave

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

	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/balance", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.Balance)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		leaves.PUT("/:id/status", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.SetStatus)

		if redisClient != nil {
			leaves.POST("",
				middleware.RBACAuthorize(rbacService, "leave", "create"),
				middleware.Idempotency(redisClient),
				handler.Submit,
			)
		} else {
			leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Submit)
		}
	}
}

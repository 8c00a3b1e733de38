package user

import (
	"github.com/gin-gonic/gin"

	"github.com/roshaanmaqsood02/btms-api/internal/authz"
	"github.com/roshaanmaqsood02/btms-api/internal/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, verifier middleware.TokenVerifier) {
	users := rg.Group("/users")
	users.Use(middleware.RequireAuth(verifier))

	users.GET("/options", handler.Options)
	users.GET("", middleware.RequireAction(authz.ActionResourceRead), handler.List)
	users.POST("", middleware.RequireAction(authz.ActionUserCreate), handler.Create)

	users.GET("/:uuid", handler.Get)
	users.PUT("/:uuid", handler.Update)
	users.PATCH("/:uuid/role", middleware.RequireAction(authz.ActionUserChangeRole), handler.ChangeRole)
	users.PUT("/:uuid/profile-picture", handler.UpdatePicture)
	users.DELETE("/:uuid", middleware.RequireAction(authz.ActionUserDelete), handler.Delete)
}

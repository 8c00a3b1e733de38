package education

import (
	"github.com/gin-gonic/gin"

	"github.com/roshaanmaqsood02/btms-api/internal/authz"
	"github.com/roshaanmaqsood02/btms-api/internal/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, verifier middleware.TokenVerifier) {
	educations := rg.Group("/educations")
	educations.Use(middleware.RequireAuth(verifier))

	read := middleware.RequireAction(authz.ActionResourceRead)
	write := middleware.RequireAction(authz.ActionResourceWrite)

	educations.GET("/user/:userUuid", read, handler.ListByUser)
	educations.GET("/user/:userUuid/latest", read, handler.Latest)
	educations.GET("/:uuid", read, handler.Get)

	educations.POST("", write, handler.Create)
	educations.PUT("/:uuid", write, handler.Update)
	educations.DELETE("/:uuid", write, handler.Delete)
}

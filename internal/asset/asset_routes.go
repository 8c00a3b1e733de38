package asset

import (
	"github.com/gin-gonic/gin"

	"github.com/roshaanmaqsood02/btms-api/internal/authz"
	"github.com/roshaanmaqsood02/btms-api/internal/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, verifier middleware.TokenVerifier) {
	assets := rg.Group("/assets")
	assets.Use(middleware.RequireAuth(verifier))

	read := middleware.RequireAction(authz.ActionResourceRead)
	write := middleware.RequireAction(authz.ActionResourceWrite)

	assets.GET("/search", read, handler.Search)
	assets.GET("/status/:status", read, handler.ListByStatus)
	assets.GET("/user/:userUuid", read, handler.ListByUser)
	assets.GET("/user/:userUuid/active", read, handler.ListActive)
	assets.GET("/:uuid", read, handler.Get)

	assets.POST("", write, handler.Assign)
	assets.PUT("/:uuid", write, handler.Update)
	assets.PUT("/:uuid/return", write, handler.Return)
	assets.DELETE("/:uuid", write, handler.Delete)
}

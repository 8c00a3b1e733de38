package contract

import (
	"github.com/gin-gonic/gin"

	"github.com/roshaanmaqsood02/btms-api/internal/authz"
	"github.com/roshaanmaqsood02/btms-api/internal/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, verifier middleware.TokenVerifier) {
	contracts := rg.Group("/employee-contracts")
	contracts.Use(middleware.RequireAuth(verifier))

	read := middleware.RequireAction(authz.ActionResourceRead)
	write := middleware.RequireAction(authz.ActionResourceWrite)

	contracts.GET("/expiring-soon", read, handler.ExpiringSoon)
	contracts.GET("/user/:userUuid", read, handler.ListByUser)
	contracts.GET("/user/:userUuid/active", read, handler.GetActive)
	contracts.GET("/:uuid", read, handler.Get)

	contracts.POST("", write, handler.Create)
	contracts.PUT("/:uuid", write, handler.Update)
	contracts.PUT("/:uuid/terminate", write, handler.Terminate)
	contracts.DELETE("/:uuid", write, handler.Delete)
}

package credential

import (
	"github.com/gin-gonic/gin"

	"github.com/roshaanmaqsood02/btms-api/internal/authz"
	"github.com/roshaanmaqsood02/btms-api/internal/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, verifier middleware.TokenVerifier) {
	credentials := rg.Group("/credentials")
	credentials.Use(middleware.RequireAuth(verifier))

	read := middleware.RequireAction(authz.ActionResourceRead)
	write := middleware.RequireAction(authz.ActionResourceWrite)
	reveal := middleware.RequireAction(authz.ActionCredentialReveal)

	credentials.GET("/expiring-soon", read, handler.ExpiringSoon)
	credentials.GET("/user/:userUuid", read, handler.ListByUser)
	credentials.GET("/user/:userUuid/type/:type", read, handler.ListByType)
	credentials.GET("/:uuid", read, handler.Get)
	credentials.GET("/:uuid/password", reveal, handler.Reveal)

	credentials.POST("", write, handler.Create)
	credentials.PUT("/:uuid", write, handler.Update)
	credentials.PUT("/:uuid/password", write, handler.Rotate)
	credentials.PUT("/:uuid/deactivate", write, handler.Deactivate)
	credentials.DELETE("/:uuid", write, handler.Delete)
}

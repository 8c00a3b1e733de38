package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/roshaanmaqsood02/btms-api/internal/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, service Service, loginLimiter *middleware.IPRateLimiter) {
	auth := rg.Group("/auth")

	auth.POST("/login", middleware.RateLimitByIP(loginLimiter), handler.Login)
	auth.POST("/register", middleware.RateLimitByIP(loginLimiter), handler.Register)

	protected := auth.Group("")
	protected.Use(middleware.RequireAuth(service))

	protected.POST("/logout", handler.Logout)
	protected.GET("/profile", handler.GetProfile)
	protected.PUT("/profile", handler.UpdateProfile)
	protected.PUT("/profile/picture", handler.UpdateProfilePicture)
	protected.DELETE("/profile", handler.DeleteAccount)
}

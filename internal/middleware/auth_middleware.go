package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/contextutil"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/response"
)

// Gin context keys written by RequireAuth and read by handlers.
const (
	CtxUserID   = "user_id"
	CtxUserUUID = "user_uuid"
	CtxEmail    = "email"
	CtxRole     = "role"
)

// TokenVerifier validates an access token and resolves the account it
// belongs to.
//
//go:generate mockgen -destination=mock/token_verifier_mock.go -package=mock . TokenVerifier
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*contextutil.Principal, error)
}

// extractToken pulls the access token from the Authorization header or,
// failing that, the access_token cookie.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}

	return ""
}

func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, 401, apperror.CodeUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}

		principal, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		c.Set(CtxUserID, principal.ID)
		c.Set(CtxUserUUID, principal.UUID)
		c.Set(CtxEmail, principal.Email)
		c.Set(CtxRole, principal.Role)

		ctx := contextutil.WithUserID(c.Request.Context(), principal.UUID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// CallerID returns the authenticated user's numeric id from the gin context.
func CallerID(c *gin.Context) uint {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CallerRole returns the authenticated user's role from the gin context.
func CallerRole(c *gin.Context) string {
	return c.GetString(CtxRole)
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AndyMuloki/zen-spa/internal/access"
	"github.com/AndyMuloki/zen-spa/internal/handler"
)

const (
	AdminCookie  = "spa_admin"
	ContextAdmin = "is_admin"
)

// AdminVerifier reports whether a token carries a live admin claim.
type AdminVerifier interface {
	IsAdmin(token string) bool
}

type AuthMiddleware struct {
	verifier AdminVerifier
}

func NewAuthMiddleware(verifier AdminVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Token extracts the admin token from the Authorization header or the admin cookie.
func Token(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	token, err := c.Cookie(AdminCookie)
	if err != nil {
		return ""
	}
	return token
}

// Authenticate resolves the admin claim and stores it on the request context.
// It never rejects; RequireAdmin does.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin := m.verifier.IsAdmin(Token(c))
		c.Set(ContextAdmin, isAdmin)
		c.Request = c.Request.WithContext(access.WithAdmin(c.Request.Context(), isAdmin))
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin claim.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, handler.NewErrorResponse("Forbidden: Admins only"))
			return
		}
		c.Next()
	}
}

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"event-bookings/internal/domain/user"
	"event-bookings/internal/handler/httperr"
	"event-bookings/internal/pkg/config"
	"event-bookings/internal/pkg/cookie"
	"event-bookings/internal/usecase"

	"github.com/gin-gonic/gin"
)

var (
	errMissingToken       = errors.New("access token missing")
	errInsufficientRole   = errors.New("insufficient role")
	errIdentityNotPresent = errors.New("identity not present in context")
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
	cookieCfg      config.CookieConfig
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
	ctxUserNameKey = "user_name"
)

var roleHierarchy = map[user.Role]int{
	user.RoleMember: 1,
	user.RoleAdmin:  2,
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, cookieCfg config.CookieConfig) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
		cookieCfg:      cookieCfg,
	}
}

// RequireAuth accepts a bearer token, falling back to the access token cookie.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		identity, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			if fromCookie {
				cookie.ClearAccessToken(c, m.cookieCfg)
			}
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxUserIDKey, identity.UserID)
		c.Set(ctxUserRoleKey, identity.Role)
		c.Set(ctxUserNameKey, identity.Name)
		c.Next()
	}
}

func extractToken(c *gin.Context) (token string, fromCookie bool) {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if token = strings.TrimSpace(authHeader[len("Bearer "):]); token != "" {
			return token, false
		}
	}
	if token = cookie.GetAccessToken(c); token != "" {
		return token, true
	}
	return "", false
}

func hasMinimumRole(userRole, minRole user.Role) bool {
	userLevel, userExists := roleHierarchy[userRole]
	minLevel, minExists := roleHierarchy[minRole]
	return userExists && minExists && userLevel >= minLevel
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errIdentityNotPresent, "Internal server error", nil)
			return
		}

		if !hasMinimumRole(role, minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errInsufficientRole, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	return id, ok && id != ""
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

func GetUserName(c *gin.Context) string {
	return c.GetString(ctxUserNameKey)
}

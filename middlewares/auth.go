// file: middlewares/auth.go
package middlewares

import (
	"context"
	"errors"
	"strings"

	"MYR/models"
	"MYR/services"
	"MYR/utils"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.Request.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RoleSource reports a user's current role.
type RoleSource interface {
	CurrentRole(ctx context.Context, userID uint32) (models.UserRole, error)
}

// JWTAuthMiddleware rejects requests without a valid bearer token and puts the
// caller's id and role into the context. With a RoleSource the role is read fresh,
// so a role change applies before the token expires.
func JWTAuthMiddleware(tokens *utils.TokenIssuer, roles RoleSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Header.Get("Authorization") == "" {
			utils.Abort(c, utils.CodeUnauthorized, "Authorization header is empty")
			return
		}
		raw, ok := bearerToken(c)
		if !ok {
			utils.Abort(c, utils.CodeUnauthorized, "Authorization header is malformed")
			return
		}
		claims, err := tokens.ParseToken(raw)
		if err != nil {
			utils.Abort(c, utils.CodeUnauthorized, "Invalid token")
			return
		}
		role := claims.Role
		if roles != nil {
			role, err = roles.CurrentRole(c.Request.Context(), claims.UserID)
			if errors.Is(err, services.ErrNotFound) {
				utils.Abort(c, utils.CodeUnauthorized, "Account no longer exists")
				return
			}
			if err != nil {
				utils.Abort(c, utils.CodeInternal, "Internal server error")
				return
			}
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, role)
		c.Next()
	}
}

// RoleAuthMiddleware must run after JWTAuthMiddleware.
func RoleAuthMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, exists := c.Get(CtxUserRole)
		if !exists {
			utils.Abort(c, utils.CodeUnauthorized, "Missing user role")
			return
		}
		role, _ := roleAny.(models.UserRole)
		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}
		utils.Abort(c, utils.CodeForbidden, "Permission denied")
	}
}

package httpx

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foody-app/foody-api/internal/apperr"
	"github.com/foody-app/foody-api/internal/auth"
)

const (
	ctxUserID = "uid"
	ctxRole   = "role"

	// TokenCookie is the cookie name carrying the session token.
	TokenCookie = "token"
)

var (
	errNoToken      = apperr.Unauthorized("not authorized, no token")
	errBadToken     = apperr.Unauthorized("not authorized, token failed")
	errInactiveUser = apperr.Unauthorized("account is deactivated")
	errForbidden    = apperr.Forbidden("not authorized for this action")
)

// Identity resolves the current role and active flag of a token subject.
type Identity interface {
	Identify(ctx context.Context, userID string) (role auth.Role, active bool, err error)
}

// TokenFrom extracts the bearer token from the Authorization header, the token
// cookie, or a token query parameter (used by WebSocket clients).
func TokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if v, err := c.Cookie(TokenCookie); err == nil && v != "" {
		return v
	}
	return c.Query("token")
}

// Authenticate requires a valid session token whose subject still exists and is active.
func Authenticate(tokens *auth.Tokens, ids Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := TokenFrom(c)
		if raw == "" {
			Fail(c, errNoToken)
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			Fail(c, errBadToken)
			return
		}
		role, active, err := ids.Identify(c.Request.Context(), claims.UserID)
		if err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				Fail(c, errBadToken)
				return
			}
			Fail(c, err)
			return
		}
		if !active {
			Fail(c, errInactiveUser)
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, role)
		c.Next()
	}
}

// RequireRoles must run after Authenticate.
func RequireRoles(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		Fail(c, errForbidden)
	}
}

func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

func Role(c *gin.Context) auth.Role {
	v, _ := c.Get(ctxRole)
	r, _ := v.(auth.Role)
	return r
}

// Actor bundles the caller identity for service calls.
func Actor(c *gin.Context) auth.Actor {
	return auth.Actor{UserID: UserID(c), Role: Role(c)}
}

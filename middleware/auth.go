package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andresouza/portfolio/service"
	"github.com/andresouza/portfolio/utils"
)

const (
	// SessionCookie is the HttpOnly cookie carrying the session token.
	SessionCookie = "portfolio_session"
	// ContextPrincipalKey stores the resolved *service.Principal in the
	// Gin context.
	ContextPrincipalKey = "principal"
	// ContextTokenKey stores the raw session token for logout revocation.
	ContextTokenKey = "session_token"
)

// Session resolves the caller's identity from the session cookie or a
// Bearer header and stores a Principal in the context. Anonymous and
// invalid sessions pass through with no principal; route guards decide
// whether that is acceptable.
func Session() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractToken(ctx)
		if token == "" || utils.IsSessionBlacklisted(token) {
			ctx.Next()
			return
		}
		claims, err := utils.ParseSession(token)
		if err != nil {
			ctx.Next()
			return
		}
		ctx.Set(ContextPrincipalKey, &service.Principal{
			UserID: claims.UserID,
			Name:   claims.Name,
			Admin:  claims.Admin,
		})
		ctx.Set(ContextTokenKey, token)
		ctx.Next()
	}
}

// AuthRequired rejects anonymous requests.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if PrincipalFrom(ctx) == nil {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authentication required")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// AdminRequired rejects anonymous requests with 401 and authenticated
// non-admins with 403.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		p := PrincipalFrom(ctx)
		if p == nil {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authentication required")
			ctx.Abort()
			return
		}
		if !p.Admin {
			utils.Error(ctx, http.StatusForbidden, 40301, "admin access required")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// PrincipalFrom returns the request principal, or nil for anonymous.
func PrincipalFrom(ctx *gin.Context) *service.Principal {
	v, ok := ctx.Get(ContextPrincipalKey)
	if !ok {
		return nil
	}
	p, ok := v.(*service.Principal)
	if !ok {
		return nil
	}
	return p
}

// TokenFrom returns the raw session token of an authenticated request.
func TokenFrom(ctx *gin.Context) string {
	v, ok := ctx.Get(ContextTokenKey)
	if !ok {
		return ""
	}
	token, _ := v.(string)
	return token
}

func extractToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

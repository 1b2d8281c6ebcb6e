package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ideaforge/backend/internal/model"
	"github.com/ideaforge/backend/internal/service"
)

const authUserKey = "auth_user"

// AuthMiddleware resolves the bearer token into the current user and
// injects it into the request context. Downstream handlers read the
// resolved identity; they never re-validate the token.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeServiceError(c, service.ErrUnauthenticated)
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenStr == "" {
			writeServiceError(c, service.ErrUnauthenticated)
			c.Abort()
			return
		}

		user, err := authService.ResolveUser(c.Request.Context(), tokenStr)
		if err != nil {
			writeServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

func GetAuthUser(c *gin.Context) *model.User {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.User); ok {
			return user
		}
	}
	return nil
}

// currentUser fetches the injected identity and re-applies the active
// guard, covering handlers mounted outside AuthMiddleware by mistake.
func currentUser(c *gin.Context) (*model.User, bool) {
	user := GetAuthUser(c)
	if err := service.RequireActive(user); err != nil {
		writeServiceError(c, err)
		c.Abort()
		return nil, false
	}
	return user, true
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

package middleware

import (
	"log"
	"net/http"
	"strings"

	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the admin session token.
const SessionCookie = "admin-session"

func sessionToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// RequireAdmin lets the request through only with a valid session token
// (Bearer header or admin-session cookie) for an existing admin.
func RequireAdmin(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			utils.AbortJSONError(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		adminID, err := auth.ParseToken(token)
		if err != nil {
			utils.AbortJSONError(c, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		admin, err := auth.AdminByID(adminID)
		if err != nil {
			log.Printf("❌ RequireAdmin lookup error: %v", err)
			utils.AbortJSONError(c, http.StatusInternalServerError, "Server error")
			return
		}
		if admin == nil {
			utils.AbortJSONError(c, http.StatusUnauthorized, "Admin associated with session not found")
			return
		}

		c.Set("admin", admin)
		c.Next()
	}
}

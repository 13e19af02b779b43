package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"rental-backend/middleware"
	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthController struct {
	AuthSvc *services.AuthService
	// SecureCookie marks the session cookie Secure (HTTPS deployments).
	SecureCookie bool
}

func NewAuthController(svc *services.AuthService, secureCookie bool) *AuthController {
	return &AuthController{AuthSvc: svc, SecureCookie: secureCookie}
}

// Login (POST /api/auth/login)
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "email and password required")
		return
	}

	admin, err := ctrl.AuthSvc.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("❌ Login error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}

	token, expires, err := ctrl.AuthSvc.IssueToken(admin)
	if err != nil {
		log.Printf("❌ Login token error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(time.Until(expires).Seconds()), "/", "", ctrl.SecureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
		},
	})
}

// Logout (POST /api/auth/logout) clears the session cookie.
func (ctrl *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ctrl.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me (GET /api/auth/me) returns the admin of the current session.
func (ctrl *AuthController) Me(c *gin.Context) {
	admin, ok := c.MustGet("admin").(*models.AdminUser)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, admin)
}

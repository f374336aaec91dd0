// internal/handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/middleware"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type AuthHandler struct {
	authService  *services.AuthService
	cookieSecure bool
}

func NewAuthHandler(authService *services.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieSecure: cookieSecure,
	}
}

// POST /auth
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
			return
		}
		logrus.WithError(err).Error("Login failed")
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyAuthFailed))
		return
	}

	middleware.SetLoginCookies(c, result, h.authService.SessionTTL(), h.cookieSecure)
	utils.SuccessResponse(c, gin.H{"success": true})
}

// DELETE /auth
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, _ := c.Cookie(middleware.SessionCookie)
	h.authService.Logout(c.Request.Context(), sessionID)

	middleware.ClearLoginCookies(c, h.cookieSecure)
	utils.SuccessResponse(c, gin.H{"success": true})
}

// GET /auth/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	check := middleware.ResolveSession(c, h.authService, h.cookieSecure)
	utils.SuccessResponse(c, check.SessionInfo)
}

// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// respondError maps service errors onto the HTTP surface.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		details := []utils.ValidationError{{Field: verr.Field, Tag: verr.Tag, Message: verr.Message}}
		utils.ValidationErrorResponse(c, verr.Error(), details)
	case errors.Is(err, models.ErrInvalidID):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductInvalidID), nil)
	case errors.Is(err, models.ErrInvalidQuantity):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartInvalidQuantity), nil)
	case errors.Is(err, models.ErrUnauthorized):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, models.ErrNotFound):
		utils.NotFoundResponse(c, "product")
	case errors.Is(err, models.ErrOutOfStock):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyProductOutOfStock))
	case errors.Is(err, services.ErrFileTooLarge):
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", i18n.T(lang, i18n.KeyFileTooLarge), nil)
	case errors.Is(err, services.ErrFileType), errors.Is(err, services.ErrInvalidImage):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), nil)
	case errors.Is(err, models.ErrStoreNotConfigured):
		utils.ErrorResponse(c, http.StatusInternalServerError, "STORE_NOT_CONFIGURED", i18n.T(lang, i18n.KeyStoreNotConfigured), nil)
	case errors.Is(err, models.ErrDisconnected):
		utils.ErrorResponse(c, http.StatusInternalServerError, "STORE_DISCONNECTED", i18n.T(lang, i18n.KeyStoreDisconnected), nil)
	case errors.Is(err, models.ErrStoreUnavailable):
		logrus.WithError(err).Warn("Store unavailable")
		utils.ErrorResponse(c, http.StatusInternalServerError, "STORE_UNAVAILABLE", err.Error(), nil)
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		utils.InternalErrorResponse(c, err.Error())
	}
}

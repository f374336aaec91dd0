// internal/handlers/status.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type StatusHandler struct {
	backend        *store.Backend
	productService *services.ProductService
	catalogService *services.CatalogService
	version        string
}

func NewStatusHandler(backend *store.Backend, productService *services.ProductService, catalogService *services.CatalogService, version string) *StatusHandler {
	return &StatusHandler{
		backend:        backend,
		productService: productService,
		catalogService: catalogService,
		version:        version,
	}
}

// GET /health
func (h *StatusHandler) Health(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"status":  "ok",
		"version": h.version,
		"store":   h.backend.Driver,
	})
}

// GET /db-status
func (h *StatusHandler) DBStatus(c *gin.Context) {
	utils.SuccessResponse(c, h.backend.Gateway.Ping(c.Request.Context()))
}

// POST /setup prepares collections and indexes, seeding the products
// collection when it had to be created.
func (h *StatusHandler) Setup(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ctx := c.Request.Context()

	if !h.backend.Gateway.Configured() {
		utils.ErrorResponse(c, http.StatusBadRequest, "STORE_NOT_CONFIGURED", i18n.T(lang, i18n.KeyStoreNotConfigured), nil)
		return
	}

	report, err := h.backend.Migrator.Setup(ctx)
	if err != nil {
		logrus.WithError(err).Error("Store setup failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, "SETUP_FAILED", i18n.T(lang, i18n.KeyStoreSetupFailed), nil)
		return
	}

	body := gin.H{
		"success":     true,
		"message":     "Database setup completed successfully",
		"collections": report.Collections,
	}

	if report.ProductsCreated() {
		seed, err := h.productService.SeedIfEmpty(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		body["seed"] = seed
	}

	if err := h.catalogService.Refresh(ctx); err != nil {
		logrus.WithError(err).Warn("Catalog reload after setup failed")
	}
	utils.SuccessResponse(c, body)
}

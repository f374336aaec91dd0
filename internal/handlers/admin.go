// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// AdminHandler backs the dashboard: the full catalog including hidden
// products, its connectivity state and stock statistics.
type AdminHandler struct {
	catalogService *services.CatalogService
}

func NewAdminHandler(catalogService *services.CatalogService) *AdminHandler {
	return &AdminHandler{catalogService: catalogService}
}

// GET /admin/catalog
func (h *AdminHandler) GetCatalog(c *gin.Context) {
	sortKey := c.DefaultQuery("sort", services.AdminSortName)

	utils.SuccessResponse(c, gin.H{
		"state":    h.catalogService.State(),
		"stats":    h.catalogService.Stats(),
		"products": h.catalogService.AdminSorted(sortKey),
	})
}

// POST /admin/catalog/refresh
func (h *AdminHandler) RefreshCatalog(c *gin.Context) {
	if err := h.catalogService.Refresh(c.Request.Context()); err != nil {
		logrus.WithError(err).Warn("Catalog refresh failed")
	}

	utils.SuccessResponse(c, gin.H{
		"state": h.catalogService.State(),
		"stats": h.catalogService.Stats(),
	})
}

// POST /admin/products/:id/toggle-approval
func (h *AdminHandler) ToggleApproval(c *gin.Context) {
	product, err := h.catalogService.ToggleApproval(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	username, _ := utils.GetUsernameFromContext(c)
	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"approved":   product.Approved,
		"username":   username,
	}).Info("Product approval toggled")
	utils.SuccessResponse(c, product)
}

// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// ProductHandler serves the raw product collection. Reads go straight to
// the store; writes go through the catalog so its cache stays in step.
type ProductHandler struct {
	productService *services.ProductService
	catalogService *services.CatalogService
}

func NewProductHandler(productService *services.ProductService, catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		catalogService: catalogService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, products)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var draft models.ProductDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.catalogService.AddProduct(c.Request.Context(), &draft)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, product)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"id": id, "deleted": true})
}

// POST /products/initialize
func (h *ProductHandler) InitializeProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	result, err := h.catalogService.Initialize(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	message := i18n.T(lang, i18n.KeyProductSeedSkip, result.ProductsCount)
	if result.Action == services.SeedActionInitialized {
		message = i18n.T(lang, i18n.KeyProductSeeded, result.InsertedCount)
	}

	utils.SuccessResponse(c, gin.H{
		"success":       true,
		"message":       message,
		"productsCount": result.ProductsCount,
		"action":        result.Action,
		"insertedIds":   result.InsertedIDs,
	})
}

// internal/handlers/shop.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// ShopHandler serves the storefront view of the catalog: approved
// products only, read from the in-memory collection.
type ShopHandler struct {
	catalogService *services.CatalogService
}

func NewShopHandler(catalogService *services.CatalogService) *ShopHandler {
	return &ShopHandler{catalogService: catalogService}
}

type shopProduct struct {
	models.Product
	DiscountedPrice float64 `json:"discountedPrice"`
}

func toShopProducts(products []models.Product) []shopProduct {
	out := make([]shopProduct, len(products))
	for i, p := range products {
		out[i] = shopProduct{Product: p, DiscountedPrice: p.DiscountedPrice()}
	}
	return out
}

// parseCatalogQuery reads search, category, minPrice, maxPrice,
// discountOnly and sort. Categories may repeat or be comma separated.
func parseCatalogQuery(c *gin.Context) (services.CatalogQuery, string, bool) {
	q := services.DefaultCatalogQuery()
	q.SearchText = c.Query("search")

	for _, raw := range c.QueryArray("category") {
		for _, category := range strings.Split(raw, ",") {
			if category = strings.TrimSpace(category); category != "" {
				q.Categories = append(q.Categories, category)
			}
		}
	}

	if s := c.Query("minPrice"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return q, "minPrice", false
		}
		q.PriceMin = v
	}
	if s := c.Query("maxPrice"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return q, "maxPrice", false
		}
		q.PriceMax = v
	}
	if s := c.Query("discountOnly"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return q, "discountOnly", false
		}
		q.DiscountOnly = v
	}
	if s := c.Query("sort"); s != "" {
		q.SortKey = s
	}
	return q, "", true
}

// GET /shop/products
func (h *ShopHandler) GetProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	q, field, ok := parseCatalogQuery(c)
	if !ok {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, field), nil)
		return
	}

	products := services.FilterAndSort(h.catalogService.ApprovedOnly(), q)
	state := h.catalogService.State()

	body := gin.H{
		"products":     toShopProducts(products),
		"total":        len(products),
		"connectivity": state.Connectivity,
	}
	if state.Error != "" {
		body["message"] = state.Error
	}
	utils.SuccessResponse(c, body)
}

// GET /shop/products/:id
func (h *ShopHandler) GetProduct(c *gin.Context) {
	product, ok := h.catalogService.Get(c.Param("id"))
	if !ok || !product.Approved {
		utils.NotFoundResponse(c, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": shopProduct{Product: product, DiscountedPrice: product.DiscountedPrice()},
		"related": toShopProducts(h.catalogService.Related(product.ID)),
	})
}

// GET /shop/categories
func (h *ShopHandler) GetCategories(c *gin.Context) {
	utils.SuccessResponse(c, h.catalogService.Categories())
}

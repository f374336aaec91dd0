// internal/handlers/cart.go
package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

const cartCookie = "cartId"

type CartHandler struct {
	cartService  *services.CartService
	cookieTTL    time.Duration
	cookieSecure bool
}

func NewCartHandler(cartService *services.CartService, cookieTTL time.Duration, cookieSecure bool) *CartHandler {
	return &CartHandler{
		cartService:  cartService,
		cookieTTL:    cookieTTL,
		cookieSecure: cookieSecure,
	}
}

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (h *CartHandler) cartID(c *gin.Context) string {
	id, _ := c.Cookie(cartCookie)
	return id
}

// respond writes the cart and refreshes the cartId cookie.
func (h *CartHandler) respond(c *gin.Context, view services.CartView) {
	c.SetCookie(cartCookie, view.ID, int(h.cookieTTL/time.Second), "/", "", h.cookieSecure, true)
	utils.SuccessResponse(c, view)
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	h.respond(c, h.cartService.View(h.cartID(c)))
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "productId"), utils.GetValidationErrors(err))
		return
	}

	view, err := h.cartService.AddProduct(h.cartID(c), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respond(c, view)
}

// PUT /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, models.ErrInvalidQuantity)
		return
	}

	view, err := h.cartService.UpdateQuantity(h.cartID(c), c.Param("id"), *req.Quantity)
	if errors.Is(err, models.ErrNotFound) {
		utils.NotFoundResponse(c, "cart_item")
		return
	}
	if err != nil {
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		return
	}
	h.respond(c, view)
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.respond(c, h.cartService.RemoveItem(h.cartID(c), c.Param("id")))
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.respond(c, h.cartService.Clear(h.cartID(c)))
}

// POST /cart/toggle
func (h *CartHandler) ToggleCart(c *gin.Context) {
	h.respond(c, h.cartService.Toggle(h.cartID(c)))
}

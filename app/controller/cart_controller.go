package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"princegaming/models"
	"princegaming/service"
	"princegaming/utils"
)

// CartController handles the cart drawer and the checkout handoff
type CartController struct {
	cart     service.CartServiceInterface
	checkout *service.CheckoutService
}

// NewCartController creates a new CartController
func NewCartController(cart service.CartServiceInterface, checkout *service.CheckoutService) *CartController {
	return &CartController{cart: cart, checkout: checkout}
}

type cartView struct {
	models.CartSnapshot
	TotalLabel string `json:"totalLabel"`
}

type addToCartRequest struct {
	Item     models.CartItem `json:"item"`
	Quantity int             `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (c *CartController) respondCart(w http.ResponseWriter) {
	snap := c.cart.Snapshot()
	respondJSON(w, http.StatusOK, cartView{CartSnapshot: snap, TotalLabel: utils.FormatCOP(snap.Total)})
}

// Get handles GET /cart
func (c *CartController) Get(w http.ResponseWriter, r *http.Request) {
	c.respondCart(w)
}

// AddItem handles POST /cart/items
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		zap.S().Errorf("❌ AddItem: Failed to decode request body: %v", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Item.ID == "" {
		respondError(w, http.StatusBadRequest, "item.id is required")
		return
	}
	if err := c.cart.AddToCart(req.Item, req.Quantity); err != nil {
		respondFailure(w, err)
		return
	}
	zap.S().Infof("🛒 AddItem: %s x%d", req.Item.ID, max(req.Quantity, 1))
	c.respondCart(w)
}

// UpdateItem handles PUT /cart/items/{id}
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	c.cart.UpdateQuantity(chi.URLParam(r, "id"), req.Quantity)
	c.respondCart(w)
}

// RemoveItem handles DELETE /cart/items/{id}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c.cart.RemoveFromCart(chi.URLParam(r, "id"))
	c.respondCart(w)
}

// Clear handles DELETE /cart
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	c.cart.ClearCart()
	c.respondCart(w)
}

// Show handles POST /cart/show
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	c.cart.ShowCart()
	c.respondCart(w)
}

// Hide handles POST /cart/hide
func (c *CartController) Hide(w http.ResponseWriter, r *http.Request) {
	c.cart.HideCart()
	c.respondCart(w)
}

// Checkout handles POST /cart/checkout
// The response carries the wa.me link the operator opens to send the order.
func (c *CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	handoff, err := c.checkout.Checkout()
	if err != nil {
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, handoff)
}

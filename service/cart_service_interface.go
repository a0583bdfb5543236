package service

import "princegaming/models"

// CartServiceInterface defines the contract for the shopping cart
type CartServiceInterface interface {
	AddToCart(item models.CartItem, quantity int) error
	UpdateQuantity(id string, quantity int)
	RemoveFromCart(id string)
	ClearCart()
	Total() int64
	ItemCount() int
	Items() []models.CartItem
	ShowCart()
	HideCart()
	Visible() bool
	Snapshot() models.CartSnapshot
	Subscribe(fn func(models.CartSnapshot)) (unsubscribe func())
}

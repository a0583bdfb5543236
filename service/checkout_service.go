package service

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"princegaming/models"
	"princegaming/utils"
)

const storeName = "Princegaming"

var typeLabels = map[string]string{
	models.CartTypeGame:      "Juego",
	models.CartTypeConsole:   "Consola",
	models.CartTypeAccessory: "Accesorio",
}

// TypeLabel returns the display label of a cart item type tag
func TypeLabel(tag string) string {
	if label, ok := typeLabels[tag]; ok {
		return label
	}
	return tag
}

// FormatOrder renders the cart lines as the order message sent to the shop
func FormatOrder(items []models.CartItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "NUEVO PEDIDO - %s\n\n", storeName)
	b.WriteString("Productos solicitados:\n\n")

	var sum int64
	for i, it := range items {
		brand := it.Brand
		if brand == "" {
			brand = "N/A"
		}
		subtotal := it.Subtotal()
		sum += subtotal

		fmt.Fprintf(&b, "%d. %s\n", i+1, it.Name)
		fmt.Fprintf(&b, "   Marca: %s\n", brand)
		fmt.Fprintf(&b, "   Tipo: %s\n", TypeLabel(it.Type))
		fmt.Fprintf(&b, "   Cantidad: %d\n", it.Quantity)
		fmt.Fprintf(&b, "   Precio: %s c/u\n", utils.FormatCOP(it.Price))
		fmt.Fprintf(&b, "   Subtotal: %s\n\n", utils.FormatCOP(subtotal))
	}

	fmt.Fprintf(&b, "TOTAL: %s\n\n", utils.FormatCOP(sum))
	b.WriteString("Por favor, confirma mi pedido y proporciona información sobre el envío.")
	return b.String()
}

// WhatsAppURL builds the wa.me link that opens a chat with message prefilled
func WhatsAppURL(phone, message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, text)
}

// Handoff is what the storefront receives after checkout
type Handoff struct {
	Message string `json:"message"`
	URL     string `json:"url"`
	Total   int64  `json:"total"`
}

// CheckoutService hands the cart over to the shop's WhatsApp line
type CheckoutService struct {
	cart  CartServiceInterface
	phone string
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(cart CartServiceInterface, phone string) *CheckoutService {
	return &CheckoutService{cart: cart, phone: phone}
}

// Checkout formats the order, then clears and hides the cart
func (s *CheckoutService) Checkout() (*Handoff, error) {
	// one snapshot so the message and the total describe the same cart
	snap := s.cart.Snapshot()
	items := snap.Items
	if len(items) == 0 {
		return nil, invalid("El carrito está vacío.")
	}

	msg := FormatOrder(items)
	handoff := &Handoff{
		Message: msg,
		URL:     WhatsAppURL(s.phone, msg),
		Total:   snap.Total,
	}

	s.cart.ClearCart()
	s.cart.HideCart()
	zap.S().Infof("📦 Checkout: %d lines, total %s", len(items), utils.FormatCOP(handoff.Total))
	return handoff, nil
}

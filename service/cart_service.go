package service

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"princegaming/models"
)

// CartService is the process-wide shopping cart. State lives in memory only.
type CartService struct {
	mu      sync.Mutex
	items   []models.CartItem
	visible bool

	subs   map[int]func(models.CartSnapshot)
	nextID int
}

// Ensure CartService implements CartServiceInterface
var _ CartServiceInterface = (*CartService)(nil)

// NewCartService creates an empty, hidden cart
func NewCartService() *CartService {
	return &CartService{subs: make(map[int]func(models.CartSnapshot))}
}

// AddToCart adds quantity units of item, merging with an existing line of the same id.
// A quantity below 1 adds a single unit. A negative price is rejected and the cart is left unchanged.
func (c *CartService) AddToCart(item models.CartItem, quantity int) error {
	if item.Price < 0 {
		zap.S().Warnf("⚠️  AddToCart: rejected id=%s with negative price %d", item.ID, item.Price)
		return invalid("El precio del producto no es válido.")
	}
	if quantity < 1 {
		quantity = 1
	}
	c.mutate(func() bool {
		for i := range c.items {
			if c.items[i].ID == item.ID {
				c.items[i].Quantity += quantity
				return true
			}
		}
		item.Quantity = quantity
		c.items = append(c.items, item)
		return true
	})
	zap.S().Debugf("🛒 AddToCart: id=%s qty=%d", item.ID, quantity)
	return nil
}

// UpdateQuantity sets the quantity of a line, removing it when quantity <= 0.
// Unknown ids are ignored.
func (c *CartService) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.RemoveFromCart(id)
		return
	}
	c.mutate(func() bool {
		for i := range c.items {
			if c.items[i].ID == id {
				c.items[i].Quantity = quantity
				return true
			}
		}
		return false
	})
}

// RemoveFromCart removes the line with the given id
func (c *CartService) RemoveFromCart(id string) {
	c.mutate(func() bool {
		for i := range c.items {
			if c.items[i].ID == id {
				c.items = append(c.items[:i], c.items[i+1:]...)
				return true
			}
		}
		return false
	})
}

// ClearCart empties the cart
func (c *CartService) ClearCart() {
	c.mutate(func() bool {
		c.items = nil
		return true
	})
}

// ShowCart makes the cart display visible
func (c *CartService) ShowCart() {
	c.mutate(func() bool {
		c.visible = true
		return true
	})
}

// HideCart hides the cart display
func (c *CartService) HideCart() {
	c.mutate(func() bool {
		c.visible = false
		return true
	})
}

// Total returns the sum of price times quantity over all lines
func (c *CartService) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return total(c.items)
}

// ItemCount returns the sum of quantities
func (c *CartService) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return itemCount(c.items)
}

// Items returns a copy of the cart lines
func (c *CartService) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartItem(nil), c.items...)
}

// Visible reports whether the cart display is shown
func (c *CartService) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Snapshot returns the current state with derived totals
func (c *CartService) Snapshot() models.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn and calls it right away with the current state.
// fn is then called after every change, on the goroutine that made it.
func (c *CartService) Subscribe(fn func(models.CartSnapshot)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	snap := c.snapshotLocked()
	c.mu.Unlock()

	fn(snap)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// mutate applies change under the lock and, if it reports a change,
// delivers the new snapshot to subscribers outside of it.
func (c *CartService) mutate(change func() bool) {
	c.mu.Lock()
	if !change() {
		c.mu.Unlock()
		return
	}
	snap := c.snapshotLocked()
	subs := c.subscribersLocked()
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (c *CartService) snapshotLocked() models.CartSnapshot {
	return models.CartSnapshot{
		Items:     append([]models.CartItem{}, c.items...),
		Total:     total(c.items),
		ItemCount: itemCount(c.items),
		Visible:   c.visible,
	}
}

func (c *CartService) subscribersLocked() []func(models.CartSnapshot) {
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(models.CartSnapshot), 0, len(ids))
	for _, id := range ids {
		out = append(out, c.subs[id])
	}
	return out
}

func total(items []models.CartItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}

func itemCount(items []models.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

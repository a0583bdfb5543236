package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"princegaming/models"
	"princegaming/utils"
)

var (
	// ErrNotEditing is returned by draft operations while no edit is in progress
	ErrNotEditing = errors.New("no edit in progress")
	// ErrDeleteDeclined is returned when the operator answers no to the delete prompt
	ErrDeleteDeclined = errors.New("delete declined")
	// ErrIndexOutOfRange is returned for an index outside the current list
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Confirmer asks the operator a yes/no question and blocks until answered
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// EditCapabilities is what an entity family plugs into an EditController
type EditCapabilities[T models.Entity] struct {
	Kind   string
	Load   func(ctx context.Context) ([]T, error)
	Submit func(ctx context.Context, id string, delta models.Fields) (json.RawMessage, error)
	Delete func(ctx context.Context, id string) error
	Create func(ctx context.Context, fields models.Fields) (json.RawMessage, error)

	// PriceKey is the JSON key holding the price, "precio" for games
	PriceKey string
	// RequireName also rejects drafts with an empty name
	RequireName bool
	// DeltaKeys restricts what is submitted. Empty submits the whole draft.
	DeltaKeys []string
	// MissingMessage is shown when a required draft field is missing
	MissingMessage string
	// DeletePrompt builds the confirmation question
	DeletePrompt func(T) string
}

// EditController keeps one family's list and its single-slot edit state.
// index and draft are set together by StartEdit and cleared together.
type EditController[T models.Entity] struct {
	caps EditCapabilities[T]

	mu      sync.Mutex
	list    []T
	editing bool
	index   int
	editID  string
	draft   models.Fields
	gen     uint64

	reloads singleflight.Group
}

// NewEditController creates an idle controller with an empty list
func NewEditController[T models.Entity](caps EditCapabilities[T]) *EditController[T] {
	if caps.PriceKey == "" {
		caps.PriceKey = "price"
	}
	if caps.MissingMessage == "" {
		caps.MissingMessage = "Precio y stock son obligatorios"
	}
	return &EditController[T]{caps: caps}
}

// Kind returns the family name
func (c *EditController[T]) Kind() string { return c.caps.Kind }

// Reload replaces the list with the server's. Concurrent calls share one request.
func (c *EditController[T]) Reload(ctx context.Context) error {
	_, err, shared := c.reloads.Do("reload", func() (any, error) {
		items, err := c.caps.Load(ctx)
		if err != nil {
			return nil, err
		}
		c.replace(items)
		return nil, nil
	})
	if shared {
		zap.S().Debugf("🔄 %s: reload shared with a concurrent caller", c.caps.Kind)
	}
	return err
}

func (c *EditController[T]) replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = append([]T(nil), items...)
	if c.editing && (c.index >= len(c.list) || c.list[c.index].EntityID() != c.editID) {
		zap.S().Warnf("⚠️  %s: edited entry moved after reload, discarding draft", c.caps.Kind)
		c.resetLocked()
	}
	zap.S().Infof("✅ %s: loaded %d entries", c.caps.Kind, len(c.list))
}

// SetList replaces the list without contacting the server
func (c *EditController[T]) SetList(items []T) {
	c.replace(items)
}

// List returns a copy of the cached entries
func (c *EditController[T]) List() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.list...)
}

// At returns the entry at index
func (c *EditController[T]) At(index int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	if index < 0 || index >= len(c.list) {
		return zero, false
	}
	return c.list[index], true
}

// Editing returns the staged index and a copy of the draft
func (c *EditController[T]) Editing() (int, models.Fields, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.editing {
		return -1, nil, false
	}
	return c.index, c.draft.Clone(), true
}

// StartEdit stages a copy of the entry at index. A pending edit is replaced.
func (c *EditController[T]) StartEdit(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.list) {
		return fmt.Errorf("%s: start edit at %d: %w", c.caps.Kind, index, ErrIndexOutOfRange)
	}
	draft, err := models.FieldsOf(c.list[index])
	if err != nil {
		return err
	}
	if c.editing {
		zap.S().Debugf("✏️  %s: replacing pending edit at %d", c.caps.Kind, c.index)
	}
	c.editing = true
	c.index = index
	c.editID = c.list[index].EntityID()
	c.draft = draft
	c.gen++
	return nil
}

// UpdateDraft writes form values into the draft. Numeric fields sent as
// text are parsed, an empty text clears the field.
func (c *EditController[T]) UpdateDraft(patch models.Fields) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.editing {
		return ErrNotEditing
	}
	for k, v := range patch {
		c.draft[k] = v
	}
	c.normalizeLocked()
	return nil
}

func (c *EditController[T]) normalizeLocked() {
	for _, key := range []string{c.caps.PriceKey, "stock", "releaseYear"} {
		s, ok := c.draft.String(key)
		if !ok {
			continue
		}
		if strings.TrimSpace(s) == "" {
			delete(c.draft, key)
			continue
		}
		if n, ok := c.draft.Int64(key); ok {
			c.draft[key] = n
		}
	}
}

// CancelEdit discards the draft. Calling it while idle does nothing.
func (c *EditController[T]) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *EditController[T]) resetLocked() {
	c.editing = false
	c.index = -1
	c.editID = ""
	c.draft = nil
}

func (c *EditController[T]) validateLocked() error {
	for _, key := range []string{c.caps.PriceKey, "stock"} {
		n, ok := c.draft.Int64(key)
		if !ok || n < 0 {
			return invalid(c.caps.MissingMessage)
		}
	}
	if c.caps.RequireName {
		name, _ := c.draft.String("name")
		if strings.TrimSpace(name) == "" {
			return invalid(c.caps.MissingMessage)
		}
	}
	return nil
}

// SaveEdit submits the staged draft for entity. On success the returned fields
// are merged into the cached entry and the controller goes back to idle.
// On any failure the draft is kept so the operator can retry or cancel.
func (c *EditController[T]) SaveEdit(ctx context.Context, entity T) error {
	c.mu.Lock()
	if !c.editing {
		c.mu.Unlock()
		return ErrNotEditing
	}
	if err := c.validateLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	delta := c.draft.Clone()
	if len(c.caps.DeltaKeys) > 0 {
		delta = delta.Pick(c.caps.DeltaKeys...)
	}
	index, gen := c.index, c.gen
	c.mu.Unlock()

	zap.S().Infof("📤 %s: saving %s (%s)", c.caps.Kind, entity.EntityID(), entity.EntityName())
	data, err := c.caps.Submit(ctx, entity.EntityID(), delta)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.locateLocked(index, entity.EntityID()); i >= 0 {
		merged, err := models.Overlay(entity, delta.Raw(), data)
		if err != nil {
			return fmt.Errorf("failed to merge saved %s: %w", c.caps.Kind, err)
		}
		c.list[i] = merged
	}
	if c.editing && c.gen == gen {
		c.resetLocked()
	}
	zap.S().Infof("✅ %s: saved %s", c.caps.Kind, entity.EntityID())
	return nil
}

// locateLocked returns where id sits now, preferring the index it had
func (c *EditController[T]) locateLocked(index int, id string) int {
	if index >= 0 && index < len(c.list) && c.list[index].EntityID() == id {
		return index
	}
	for i := range c.list {
		if c.list[i].EntityID() == id {
			return i
		}
	}
	return -1
}

// Delete asks confirm first and removes entity through the API only when
// the answer is yes. The cached entry is spliced out on success.
func (c *EditController[T]) Delete(ctx context.Context, entity T, index int, confirm Confirmer) error {
	prompt := fmt.Sprintf("¿Seguro que quieres eliminar %q?", entity.EntityName())
	if c.caps.DeletePrompt != nil {
		prompt = c.caps.DeletePrompt(entity)
	}
	if confirm == nil || !confirm.Confirm(prompt) {
		zap.S().Infof("🚫 %s: delete of %s declined", c.caps.Kind, entity.EntityID())
		return ErrDeleteDeclined
	}

	zap.S().Infof("🗑️  %s: deleting %s", c.caps.Kind, entity.EntityID())
	if err := c.caps.Delete(ctx, entity.EntityID()); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.locateLocked(index, entity.EntityID())
	if i < 0 {
		return nil
	}
	c.list = append(c.list[:i], c.list[i+1:]...)
	if c.editing {
		switch {
		case c.index == i:
			c.resetLocked()
		case c.index > i:
			c.index--
		}
	}
	return nil
}

// Create submits a new entry and reloads the list so server-assigned fields are authoritative
func (c *EditController[T]) Create(ctx context.Context, fields models.Fields) error {
	if c.caps.Create == nil {
		return fmt.Errorf("%s: create is not supported", c.caps.Kind)
	}
	zap.S().Infof("📤 %s: creating %v", c.caps.Kind, fields["name"])
	if _, err := c.caps.Create(ctx, fields); err != nil {
		return err
	}
	if err := c.Reload(ctx); err != nil {
		zap.S().Warnf("⚠️  %s: created but reload failed: %v", c.caps.Kind, err)
	}
	return nil
}

// SaveCurrent saves the staged draft against the entry it was started on
func (c *EditController[T]) SaveCurrent(ctx context.Context) error {
	index, _, ok := c.Editing()
	if !ok {
		return ErrNotEditing
	}
	entity, ok := c.At(index)
	if !ok {
		return fmt.Errorf("%s: save at %d: %w", c.caps.Kind, index, ErrIndexOutOfRange)
	}
	return c.SaveEdit(ctx, entity)
}

// DeleteAt deletes the entry at index
func (c *EditController[T]) DeleteAt(ctx context.Context, index int, confirm Confirmer) error {
	entity, ok := c.At(index)
	if !ok {
		return fmt.Errorf("%s: delete at %d: %w", c.caps.Kind, index, ErrIndexOutOfRange)
	}
	return c.Delete(ctx, entity, index, confirm)
}

// Merge overlays patch onto the entry with the given id, if it is cached
func (c *EditController[T]) Merge(id string, patch models.Fields) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.locateLocked(-1, id)
	if i < 0 {
		return nil
	}
	merged, err := models.Overlay(c.list[i], patch.Raw())
	if err != nil {
		return fmt.Errorf("failed to merge %s %s: %w", c.caps.Kind, id, err)
	}
	c.list[i] = merged
	return nil
}

// Row is one line of a dashboard table
type Row struct {
	Index      int    `json:"index"`
	Entry      any    `json:"entry"`
	PriceLabel string `json:"priceLabel"`
	PriceClass string `json:"priceClass"`
	StockClass string `json:"stockClass"`
	Editing    bool   `json:"editing"`
}

// Rows returns the cached list decorated for display
func (c *EditController[T]) Rows() []Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([]Row, 0, len(c.list))
	for i, entry := range c.list {
		fields, err := models.FieldsOf(entry)
		if err != nil {
			zap.S().Warnf("⚠️  %s: cannot render row %d: %v", c.caps.Kind, i, err)
			continue
		}
		price, _ := fields.Int64(c.caps.PriceKey)
		stock, _ := fields.Int64("stock")
		rows = append(rows, Row{
			Index:      i,
			Entry:      entry,
			PriceLabel: utils.FormatCOP(price),
			PriceClass: utils.PriceClass(price),
			StockClass: utils.StockClass(int(stock)),
			Editing:    c.editing && c.index == i,
		})
	}
	return rows
}

package service

import (
	"context"
	"strings"
	"sync"

	"princegaming/models"
)

const msgMissingCreateFields = "Faltan campos obligatorios: nombre, precio y stock"

// AddForm is the create panel of one family with its own image slot
type AddForm struct {
	kind   string
	slot   *ImageSlot
	build  func(fields models.Fields, imageURL string) (models.Fields, error)
	create func(ctx context.Context, payload models.Fields) error

	mu   sync.Mutex
	open bool
}

// NewAddForm creates a closed form
func NewAddForm(kind string, slot *ImageSlot, build func(models.Fields, string) (models.Fields, error), create func(context.Context, models.Fields) error) *AddForm {
	return &AddForm{kind: kind, slot: slot, build: build, create: create}
}

// Slot returns the form's image slot
func (f *AddForm) Slot() *ImageSlot { return f.slot }

// Open shows the form
func (f *AddForm) Open() {
	f.mu.Lock()
	f.open = true
	f.mu.Unlock()
}

// Close hides the form
func (f *AddForm) Close() {
	f.mu.Lock()
	f.open = false
	f.mu.Unlock()
}

// IsOpen reports whether the form is shown
func (f *AddForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Submit validates fields, uploads the staged image if any, creates the
// entry and then resets and closes the form
func (f *AddForm) Submit(ctx context.Context, fields models.Fields) error {
	if err := validateNew(fields); err != nil {
		return err
	}

	imageURL, _ := fields.String("imageUrl")
	if _, staged := f.slot.Selected(); staged {
		url, err := f.slot.Upload(ctx)
		if err != nil {
			return err
		}
		imageURL = url
	}

	payload, err := f.build(fields, imageURL)
	if err != nil {
		return err
	}
	if err := f.create(ctx, payload); err != nil {
		return err
	}

	f.slot.Reset()
	f.Close()
	return nil
}

func validateNew(fields models.Fields) error {
	name, _ := fields.String("name")
	if strings.TrimSpace(name) == "" {
		return invalid(msgMissingCreateFields)
	}
	price, ok := priceOf(fields)
	if !ok || price < 0 {
		return invalid(msgMissingCreateFields)
	}
	stock, ok := fields.Int64("stock")
	if !ok || stock < 0 {
		return invalid(msgMissingCreateFields)
	}
	return nil
}

// priceOf reads the price from either key used by the API
func priceOf(fields models.Fields) (int64, bool) {
	if n, ok := fields.Int64("price"); ok {
		return n, true
	}
	return fields.Int64("precio")
}

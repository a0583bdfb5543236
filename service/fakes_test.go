package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"princegaming/client"
	"princegaming/models"
)

type call struct {
	Method string
	ID     string
	Fields models.Fields
}

// fakeAPI is an in-memory stand-in for the inventory API
type fakeAPI struct {
	mu sync.Mutex

	games       []models.Game
	consoles    []models.Product
	accessories []models.Product
	items       []models.InventoryItem

	updateData json.RawMessage
	failWith   map[string]error
	delay      map[string]time.Duration
	uploadURL  string
	calls      []call
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{failWith: map[string]error{}, delay: map[string]time.Duration{}, uploadURL: "https://cdn.example/img.jpg"}
}

func (f *fakeAPI) record(method, id string, fields models.Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Method: method, ID: id, Fields: fields})
	return f.failWith[method]
}

func (f *fakeAPI) called(method string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// wait holds a call for its configured delay, giving up when ctx ends
func (f *fakeAPI) wait(ctx context.Context, method string) error {
	f.mu.Lock()
	d := f.delay[method]
	f.mu.Unlock()
	if d == 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeAPI) ListGames(ctx context.Context) ([]models.Game, error) {
	if err := f.wait(ctx, "ListGames"); err != nil {
		return nil, err
	}
	if err := f.record("ListGames", "", nil); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Game(nil), f.games...), nil
}

func (f *fakeAPI) UpdateGame(ctx context.Context, id string, delta models.Fields) (json.RawMessage, error) {
	if err := f.record("UpdateGame", id, delta); err != nil {
		return nil, err
	}
	return f.updateData, nil
}

func (f *fakeAPI) DeleteGame(ctx context.Context, id string) error {
	return f.record("DeleteGame", id, nil)
}

func (f *fakeAPI) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	if err := f.record("ListProducts", category, nil); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if category == models.CategoryConsole {
		return append([]models.Product(nil), f.consoles...), nil
	}
	return append([]models.Product(nil), f.accessories...), nil
}

func (f *fakeAPI) CreateProduct(ctx context.Context, fields models.Fields) (json.RawMessage, error) {
	if err := f.record("CreateProduct", "", fields); err != nil {
		return nil, err
	}
	return json.RawMessage(`{}`), nil
}

func (f *fakeAPI) UpdateProduct(ctx context.Context, id string, delta models.Fields) (json.RawMessage, error) {
	if err := f.record("UpdateProduct", id, delta); err != nil {
		return nil, err
	}
	return f.updateData, nil
}

func (f *fakeAPI) DeleteProduct(ctx context.Context, id string) error {
	return f.record("DeleteProduct", id, nil)
}

func (f *fakeAPI) ListInventory(ctx context.Context, itemType models.InventoryType) ([]models.InventoryItem, error) {
	if err := f.record("ListInventory", string(itemType), nil); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.InventoryItem(nil), f.items...), nil
}

func (f *fakeAPI) CreateInventoryItem(ctx context.Context, fields models.Fields) (json.RawMessage, error) {
	if err := f.record("CreateInventoryItem", "", fields); err != nil {
		return nil, err
	}
	return json.RawMessage(`{}`), nil
}

func (f *fakeAPI) UpdateInventoryItem(ctx context.Context, id string, delta models.Fields) (json.RawMessage, error) {
	if err := f.record("UpdateInventoryItem", id, delta); err != nil {
		return nil, err
	}
	return f.updateData, nil
}

func (f *fakeAPI) DeleteInventoryItem(ctx context.Context, id string) error {
	return f.record("DeleteInventoryItem", id, nil)
}

func (f *fakeAPI) UploadImage(ctx context.Context, file models.FileHandle) (*models.UploadResult, error) {
	if err := f.record("UploadImage", file.Name, nil); err != nil {
		return nil, err
	}
	return &models.UploadResult{ImageURL: f.uploadURL, Filename: file.Name}, nil
}

func (f *fakeAPI) UploadGameImage(ctx context.Context, file models.FileHandle) (*models.UploadResult, error) {
	if err := f.record("UploadGameImage", file.Name, nil); err != nil {
		return nil, err
	}
	return &models.UploadResult{ImageURL: f.uploadURL, Filename: file.Name}, nil
}

var _ InventoryAPI = (*fakeAPI)(nil)

func reported(msg string) error { return &client.APIError{Path: "/test", Message: msg} }

func serverDown() error {
	return &client.TransportError{Method: "GET", Path: "/test", Status: 0, Class: client.ClassConnection, Err: errors.New("connection refused")}
}

func always(answer bool) Confirmer {
	return ConfirmFunc(func(string) bool { return answer })
}

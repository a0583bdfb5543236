package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"princegaming/models"
)

// Family names used in dashboard routes
const (
	KindGames       = "games"
	KindConsoles    = "consoles"
	KindAccessories = "accessories"
	KindItems       = "items"
)

// GamePlaceholderImage is used for games created without an image
const GamePlaceholderImage = "https://placehold.co/400x300/e9ecef/212529?text=Sin+Imagen"

const (
	msgCreated         = "Producto agregado exitosamente"
	msgUpdated         = "Producto actualizado correctamente"
	msgDeleted         = "Producto eliminado correctamente"
	msgDeleteDeclined  = "Eliminación cancelada"
	msgGameImageUpdate = "Imagen del juego actualizada"
)

// Dashboard composes one edit controller and one add form per family
type Dashboard struct {
	Games       *EditController[models.Game]
	Consoles    *EditController[models.Product]
	Accessories *EditController[models.Product]
	Items       *EditController[models.InventoryItem]

	api      InventoryAPI
	drive    DriveServiceInterface
	notifier *Notifier
	panels   map[string]Panel
	forms    map[string]*AddForm
	optimize bool
}

// DashboardOptions tunes optional dashboard behaviour
type DashboardOptions struct {
	// OptimizeImages re-encodes staged images before upload
	OptimizeImages bool
	// Drive enables staging images from Google Drive. May be nil.
	Drive DriveServiceInterface
}

// NewDashboard wires the four families to the inventory API
func NewDashboard(api InventoryAPI, notifier *Notifier, opts DashboardOptions) *Dashboard {
	d := &Dashboard{
		api:      api,
		drive:    opts.Drive,
		notifier: notifier,
		optimize: opts.OptimizeImages,
	}

	d.Games = NewEditController(EditCapabilities[models.Game]{
		Kind:           KindGames,
		Load:           api.ListGames,
		Submit:         api.UpdateGame,
		Delete:         api.DeleteGame,
		Create:         api.CreateInventoryItem,
		PriceKey:       "precio",
		DeltaKeys:      []string{"precio", "stock"},
		MissingMessage: "Precio y stock son obligatorios",
		DeletePrompt:   func(models.Game) string { return "¿Seguro que deseas eliminar este juego?" },
	})
	d.Consoles = NewEditController(productCapabilities(api, KindConsoles, models.CategoryConsole))
	d.Accessories = NewEditController(productCapabilities(api, KindAccessories, models.CategoryAccessory))
	d.Items = NewEditController(EditCapabilities[models.InventoryItem]{
		Kind: KindItems,
		Load: func(ctx context.Context) ([]models.InventoryItem, error) {
			return api.ListInventory(ctx, "")
		},
		Submit:         api.UpdateInventoryItem,
		Delete:         api.DeleteInventoryItem,
		Create:         api.CreateInventoryItem,
		RequireName:    true,
		MissingMessage: "Nombre, precio y stock son obligatorios",
	})

	d.panels = map[string]Panel{
		KindGames:       d.Games,
		KindConsoles:    d.Consoles,
		KindAccessories: d.Accessories,
		KindItems:       d.Items,
	}
	d.forms = map[string]*AddForm{
		KindGames:       NewAddForm(KindGames, d.newSlot(), buildGame, d.Games.Create),
		KindConsoles:    NewAddForm(KindConsoles, d.newSlot(), buildConsole, d.Consoles.Create),
		KindAccessories: NewAddForm(KindAccessories, d.newSlot(), buildAccessory, d.Accessories.Create),
		KindItems:       NewAddForm(KindItems, d.newSlot(), buildItem, d.Items.Create),
	}
	return d
}

func productCapabilities(api InventoryAPI, kind, category string) EditCapabilities[models.Product] {
	return EditCapabilities[models.Product]{
		Kind: kind,
		Load: func(ctx context.Context) ([]models.Product, error) {
			return api.ListProducts(ctx, category)
		},
		Submit:         api.UpdateProduct,
		Delete:         api.DeleteProduct,
		Create:         api.CreateProduct,
		DeltaKeys:      []string{"name", "price", "stock", "category", "description"},
		MissingMessage: "Precio y stock son obligatorios",
	}
}

func (d *Dashboard) newSlot() *ImageSlot {
	return NewImageSlot(d.api.UploadImage, d.optimize)
}

// Kinds lists the families in display order
func (d *Dashboard) Kinds() []string {
	return []string{KindGames, KindConsoles, KindAccessories, KindItems}
}

// Panel returns the family's table
func (d *Dashboard) Panel(kind string) (Panel, bool) {
	p, ok := d.panels[kind]
	return p, ok
}

// Form returns the family's add form
func (d *Dashboard) Form(kind string) (*AddForm, bool) {
	f, ok := d.forms[kind]
	return f, ok
}

// Notifier returns the dashboard's message banner
func (d *Dashboard) Notifier() *Notifier { return d.notifier }

// LoadAll loads every family in parallel. Families load independently: a
// failing one neither cancels nor delays the others. Each failure is reported
// on its own; the first one is returned.
func (d *Dashboard) LoadAll(ctx context.Context) error {
	var g errgroup.Group
	for _, kind := range d.Kinds() {
		panel := d.panels[kind]
		g.Go(func() error {
			if err := panel.Reload(ctx); err != nil {
				d.notifier.Fail("Load "+kind, err)
				return fmt.Errorf("failed to load %s: %w", kind, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Reload refreshes one family
func (d *Dashboard) Reload(ctx context.Context, kind string) error {
	panel, err := d.panel(kind)
	if err != nil {
		return err
	}
	if err := panel.Reload(ctx); err != nil {
		d.notifier.Fail("Reload "+kind, err)
		return err
	}
	return nil
}

// Save submits the staged edit of a family
func (d *Dashboard) Save(ctx context.Context, kind string) error {
	panel, err := d.panel(kind)
	if err != nil {
		return err
	}
	if err := panel.SaveCurrent(ctx); err != nil {
		d.notifier.Fail("Save "+kind, err)
		return err
	}
	d.notifier.Succeed(msgUpdated)
	return nil
}

// Delete removes the entry at index once confirm agrees
func (d *Dashboard) Delete(ctx context.Context, kind string, index int, confirm Confirmer) error {
	panel, err := d.panel(kind)
	if err != nil {
		return err
	}
	err = panel.DeleteAt(ctx, index, confirm)
	switch {
	case errors.Is(err, ErrDeleteDeclined):
		d.notifier.Inform(msgDeleteDeclined)
		return err
	case err != nil:
		d.notifier.Fail("Delete "+kind, err)
		return err
	}
	d.notifier.Succeed(msgDeleted)
	return nil
}

// Create submits a family's add form
func (d *Dashboard) Create(ctx context.Context, kind string, fields models.Fields) error {
	form, ok := d.forms[kind]
	if !ok {
		return fmt.Errorf("unknown family %q", kind)
	}
	if err := form.Submit(ctx, fields); err != nil {
		d.notifier.Fail("Create "+kind, err)
		return err
	}
	d.notifier.Succeed(msgCreated)
	return nil
}

// StageImage selects a file in a family's add form
func (d *Dashboard) StageImage(kind string, file models.FileHandle) error {
	form, ok := d.forms[kind]
	if !ok {
		return fmt.Errorf("unknown family %q", kind)
	}
	if err := form.Slot().SelectFile(file); err != nil {
		d.notifier.Fail("Select image "+kind, err)
		return err
	}
	return nil
}

// StageDriveImage downloads a Drive file and selects it in a family's add form
func (d *Dashboard) StageDriveImage(ctx context.Context, kind, fileID string) error {
	if d.drive == nil {
		return errors.New("drive import is not configured")
	}
	file, err := d.drive.OpenImage(ctx, fileID)
	if err != nil {
		uerr := &UploadError{Message: "No se pudo obtener la imagen de Drive", Err: err}
		d.notifier.Fail("Drive image "+kind, uerr)
		return uerr
	}
	return d.StageImage(kind, file)
}

// DriveImages lists the images of a Drive folder
func (d *Dashboard) DriveImages(ctx context.Context, folderID string) ([]models.DriveImage, error) {
	if d.drive == nil {
		return nil, errors.New("drive import is not configured")
	}
	return d.drive.ListImages(ctx, folderID)
}

// ReplaceGameImage uploads file as the new cover of the game at index and
// points the game at it
func (d *Dashboard) ReplaceGameImage(ctx context.Context, index int, file models.FileHandle) error {
	game, ok := d.Games.At(index)
	if !ok {
		return fmt.Errorf("games: replace image at %d: %w", index, ErrIndexOutOfRange)
	}

	slot := NewImageSlot(d.api.UploadGameImage, d.optimize)
	if err := slot.SelectFile(file); err != nil {
		d.notifier.Fail("Game image", err)
		return err
	}
	imageURL, err := slot.Upload(ctx)
	if err != nil {
		d.notifier.Fail("Game image", err)
		return err
	}

	patch := models.Fields{"imageUrl": imageURL}
	if _, err := d.api.UpdateGame(ctx, game.ID, patch); err != nil {
		d.notifier.Fail("Game image", err)
		return err
	}
	if err := d.Games.Merge(game.ID, patch); err != nil {
		return err
	}
	d.notifier.Succeed(msgGameImageUpdate)
	return nil
}

func (d *Dashboard) panel(kind string) (Panel, error) {
	panel, ok := d.panels[kind]
	if !ok {
		return nil, fmt.Errorf("unknown family %q", kind)
	}
	return panel, nil
}

func buildGame(f models.Fields, imageURL string) (models.Fields, error) {
	price, _ := priceOf(f)
	stock, _ := f.Int64("stock")
	if imageURL == "" {
		imageURL = GamePlaceholderImage
	}
	payload := models.Fields{
		"name":        text(f, "name"),
		"type":        string(models.InventoryGames),
		"description": firstText(f, "descripcion", "description"),
		"price":       price,
		"stock":       stock,
		"imageUrl":    imageURL,
		"consola":     text(f, "consola"),
		"genero":      text(f, "genero"),
		"developer":   text(f, "developer"),
		"publisher":   text(f, "publisher"),
		"rating":      orDefault(text(f, "rating"), "E"),
		"multiplayer": flag(f, "multiplayer"),
	}
	if year, ok := f.Int64("releaseYear"); ok && year > 0 {
		payload["releaseYear"] = year
	}
	return payload, nil
}

func buildConsole(f models.Fields, imageURL string) (models.Fields, error) {
	payload := productPayload(f, imageURL, models.CategoryConsole)
	for _, key := range []string{"model", "features", "color"} {
		payload[key] = text(f, key)
	}
	if year, ok := f.Int64("releaseYear"); ok && year > 0 {
		payload["releaseYear"] = year
	}
	return payload, nil
}

func buildAccessory(f models.Fields, imageURL string) (models.Fields, error) {
	return productPayload(f, imageURL, models.CategoryAccessory), nil
}

func productPayload(f models.Fields, imageURL, category string) models.Fields {
	price, _ := priceOf(f)
	stock, _ := f.Int64("stock")
	return models.Fields{
		"name":        text(f, "name"),
		"price":       price,
		"stock":       stock,
		"description": text(f, "description"),
		"imageUrl":    imageURL,
		"brand":       text(f, "brand"),
		"category":    category,
	}
}

func buildItem(f models.Fields, imageURL string) (models.Fields, error) {
	itemType := models.InventoryType(text(f, "type"))
	switch itemType {
	case models.InventoryGames, models.InventoryConsoles, models.InventoryAccessories:
	default:
		return nil, invalid("El tipo debe ser games, consoles o accessories")
	}
	payload := f.Clone()
	price, _ := priceOf(f)
	stock, _ := f.Int64("stock")
	payload["price"] = price
	payload["stock"] = stock
	delete(payload, "precio")
	if imageURL != "" {
		payload["imageUrl"] = imageURL
	}
	if year, ok := f.Int64("releaseYear"); ok {
		payload["releaseYear"] = year
	}
	return payload, nil
}

func text(f models.Fields, key string) string {
	s, _ := f.String(key)
	return strings.TrimSpace(s)
}

func firstText(f models.Fields, keys ...string) string {
	for _, k := range keys {
		if s := text(f, k); s != "" {
			return s
		}
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// flag reads a checkbox value sent either as a bool or as form text
func flag(f models.Fields, key string) bool {
	switch v := f[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "si", "sí":
			return true
		}
	}
	return false
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"princegaming/models"
)

func gamesController(api *fakeAPI) *EditController[models.Game] {
	return NewDashboard(api, NewNotifier(0), DashboardOptions{}).Games
}

func oneGame() []models.Game {
	return []models.Game{{ID: "g1", Name: "Halo", Precio: 50000, Stock: 4, Publisher: "Xbox"}}
}

func TestEditController_StartThenCancelLeavesListUnchanged(t *testing.T) {
	api := newFakeAPI()
	c := gamesController(api)
	c.SetList(oneGame())
	before, err := json.Marshal(c.List())
	require.NoError(t, err)

	require.NoError(t, c.StartEdit(0))
	require.NoError(t, c.UpdateDraft(models.Fields{"precio": 1}))
	c.CancelEdit()

	after, err := json.Marshal(c.List())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	_, _, editing := c.Editing()
	assert.False(t, editing)
}

func TestEditController_CancelWhileIdle(t *testing.T) {
	c := gamesController(newFakeAPI())
	c.CancelEdit()
	idx, draft, editing := c.Editing()
	assert.False(t, editing)
	assert.Equal(t, -1, idx)
	assert.Nil(t, draft)
}

func TestEditController_StartEditOutOfRange(t *testing.T) {
	c := gamesController(newFakeAPI())
	c.SetList(oneGame())
	assert.ErrorIs(t, c.StartEdit(3), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.StartEdit(-1), ErrIndexOutOfRange)
}

func TestEditController_SaveMergesResponse(t *testing.T) {
	api := newFakeAPI()
	api.updateData = json.RawMessage(`{"precio":60000}`)
	c := gamesController(api)
	c.SetList(oneGame())

	require.NoError(t, c.StartEdit(0))
	require.NoError(t, c.UpdateDraft(models.Fields{"precio": 60000}))
	require.NoError(t, c.SaveEdit(context.Background(), c.List()[0]))

	got, _ := c.At(0)
	assert.Equal(t, int64(60000), got.Precio)
	assert.Equal(t, "Halo", got.Name)
	_, _, editing := c.Editing()
	assert.False(t, editing)

	calls := api.called("UpdateGame")
	require.Len(t, calls, 1)
	assert.Equal(t, "g1", calls[0].ID)
	assert.ElementsMatch(t, []string{"precio", "stock"}, keys(calls[0].Fields))
}

func TestEditController_SaveWithoutPriceIsRejectedLocally(t *testing.T) {
	api := newFakeAPI()
	c := gamesController(api)
	c.SetList(oneGame())

	require.NoError(t, c.StartEdit(0))
	require.NoError(t, c.UpdateDraft(models.Fields{"precio": ""}))
	err := c.SaveEdit(context.Background(), c.List()[0])

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, api.called("UpdateGame"))
	idx, draft, editing := c.Editing()
	assert.True(t, editing)
	assert.Equal(t, 0, idx)
	assert.False(t, draft.Has("precio"))
}

func TestEditController_NegativeStockRejected(t *testing.T) {
	api := newFakeAPI()
	c := gamesController(api)
	c.SetList(oneGame())
	require.NoError(t, c.StartEdit(0))
	require.NoError(t, c.UpdateDraft(models.Fields{"stock": -1}))

	assert.Error(t, c.SaveCurrent(context.Background()))
	assert.Empty(t, api.called("UpdateGame"))
}

func TestEditController_ZeroPriceAndStockAreValid(t *testing.T) {
	api := newFakeAPI()
	c := gamesController(api)
	c.SetList(oneGame())
	require.NoError(t, c.StartEdit(0))
	require.NoError(t, c.UpdateDraft(models.Fields{"precio": "0", "stock": "0"}))

	require.NoError(t, c.SaveCurrent(context.Background()))
	got, _ := c.At(0)
	assert.Zero(t, got.Precio)
	assert.Zero(t, got.Stock)
}

func TestEditController_FailuresKeepDraft(t *testing.T) {
	for name, failure := range map[string]error{
		"reported":  reported("Juego no encontrado"),
		"transport": serverDown(),
	} {
		t.Run(name, func(t *testing.T) {
			api := newFakeAPI()
			api.failWith["UpdateGame"] = failure
			c := gamesController(api)
			c.SetList(oneGame())

			require.NoError(t, c.StartEdit(0))
			require.NoError(t, c.UpdateDraft(models.Fields{"precio": 70000}))
			err := c.SaveCurrent(context.Background())
			require.ErrorIs(t, err, failure)

			got, _ := c.At(0)
			assert.Equal(t, int64(50000), got.Precio)
			_, draft, editing := c.Editing()
			require.True(t, editing)
			price, _ := draft.Int64("precio")
			assert.Equal(t, int64(70000), price)
		})
	}
}

func TestEditController_SecondStartOverwrites(t *testing.T) {
	c := gamesController(newFakeAPI())
	c.SetList([]models.Game{{ID: "g1", Name: "Halo", Precio: 1}, {ID: "g2", Name: "Gears", Precio: 2}})

	require.NoError(t, c.StartEdit(0))
	require.NoError(t, c.UpdateDraft(models.Fields{"name": "changed"}))
	require.NoError(t, c.StartEdit(1))

	idx, draft, editing := c.Editing()
	require.True(t, editing)
	assert.Equal(t, 1, idx)
	name, _ := draft.String("name")
	assert.Equal(t, "Gears", name)
}

func TestEditController_UpdateDraftWhileIdle(t *testing.T) {
	c := gamesController(newFakeAPI())
	assert.ErrorIs(t, c.UpdateDraft(models.Fields{"precio": 1}), ErrNotEditing)
	assert.ErrorIs(t, c.SaveCurrent(context.Background()), ErrNotEditing)
}

func TestEditController_DeleteDeclinedMakesNoCall(t *testing.T) {
	api := newFakeAPI()
	c := gamesController(api)
	c.SetList(oneGame())

	err := c.DeleteAt(context.Background(), 0, always(false))
	assert.ErrorIs(t, err, ErrDeleteDeclined)
	assert.Empty(t, api.called("DeleteGame"))
	assert.Len(t, c.List(), 1)
}

func TestEditController_DeleteSplices(t *testing.T) {
	api := newFakeAPI()
	c := gamesController(api)
	c.SetList([]models.Game{{ID: "g1"}, {ID: "g2"}, {ID: "g3"}})

	var prompt string
	confirm := ConfirmFunc(func(p string) bool { prompt = p; return true })
	require.NoError(t, c.DeleteAt(context.Background(), 1, confirm))

	assert.Equal(t, "¿Seguro que deseas eliminar este juego?", prompt)
	assert.Equal(t, []string{"g1", "g3"}, ids(c.List()))
}

func TestEditController_DeleteFailureLeavesList(t *testing.T) {
	api := newFakeAPI()
	api.failWith["DeleteGame"] = reported("no se pudo")
	c := gamesController(api)
	c.SetList(oneGame())

	assert.Error(t, c.DeleteAt(context.Background(), 0, always(true)))
	assert.Len(t, c.List(), 1)
}

func TestEditController_DeleteShiftsPendingEdit(t *testing.T) {
	c := gamesController(newFakeAPI())
	c.SetList([]models.Game{{ID: "g1"}, {ID: "g2"}, {ID: "g3"}})
	require.NoError(t, c.StartEdit(2))

	require.NoError(t, c.DeleteAt(context.Background(), 0, always(true)))
	idx, draft, editing := c.Editing()
	require.True(t, editing)
	assert.Equal(t, 1, idx)
	id, _ := draft.String("_id")
	assert.Equal(t, "g3", id)

	require.NoError(t, c.DeleteAt(context.Background(), 1, always(true)))
	_, _, editing = c.Editing()
	assert.False(t, editing)
}

func TestEditController_ReloadDiscardsStaleDraft(t *testing.T) {
	api := newFakeAPI()
	api.games = []models.Game{{ID: "g9"}}
	c := gamesController(api)
	c.SetList(oneGame())
	require.NoError(t, c.StartEdit(0))

	require.NoError(t, c.Reload(context.Background()))
	_, _, editing := c.Editing()
	assert.False(t, editing)
	assert.Equal(t, []string{"g9"}, ids(c.List()))
}

func TestEditController_ConcurrentReloadsShareRequest(t *testing.T) {
	api := newFakeAPI()
	api.games = oneGame()
	c := gamesController(api)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Reload(context.Background()))
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, len(api.called("ListGames")), 8)
	assert.Equal(t, []string{"g1"}, ids(c.List()))
}

func TestEditController_ItemsRequireName(t *testing.T) {
	api := newFakeAPI()
	api.updateData = json.RawMessage(`null`)
	items := NewDashboard(api, NewNotifier(0), DashboardOptions{}).Items
	items.SetList([]models.InventoryItem{{ID: "i1", Name: "Control", Type: models.InventoryAccessories, Price: 90000, Stock: 3}})

	require.NoError(t, items.StartEdit(0))
	require.NoError(t, items.UpdateDraft(models.Fields{"name": " "}))
	err := items.SaveCurrent(context.Background())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Nombre, precio y stock son obligatorios", verr.Message)

	require.NoError(t, items.UpdateDraft(models.Fields{"name": "Control Pro", "stock": "7"}))
	require.NoError(t, items.SaveCurrent(context.Background()))

	want := []models.InventoryItem{{ID: "i1", Name: "Control Pro", Type: models.InventoryAccessories, Price: 90000, Stock: 7}}
	if diff := cmp.Diff(want, items.List()); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestEditController_ProductDeltaKeys(t *testing.T) {
	api := newFakeAPI()
	consoles := NewDashboard(api, NewNotifier(0), DashboardOptions{}).Consoles
	consoles.SetList([]models.Product{{ID: "c1", Name: "PS5", Price: 2500000, Stock: 2, Category: "console", Brand: "Sony"}})

	require.NoError(t, consoles.StartEdit(0))
	require.NoError(t, consoles.SaveCurrent(context.Background()))

	calls := api.called("UpdateProduct")
	require.Len(t, calls, 1)
	assert.ElementsMatch(t, []string{"name", "price", "stock", "category"}, keys(calls[0].Fields))
}

func TestEditController_Rows(t *testing.T) {
	c := gamesController(newFakeAPI())
	c.SetList([]models.Game{{ID: "g1", Precio: 40000, Stock: 3}, {ID: "g2", Precio: 150000, Stock: 20}})
	require.NoError(t, c.StartEdit(1))

	rows := c.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "$40.000", rows[0].PriceLabel)
	assert.Equal(t, "price-low", rows[0].PriceClass)
	assert.Equal(t, "stock-low", rows[0].StockClass)
	assert.False(t, rows[0].Editing)
	assert.Equal(t, "price-high", rows[1].PriceClass)
	assert.Equal(t, "stock-high", rows[1].StockClass)
	assert.True(t, rows[1].Editing)
}

func keys(f models.Fields) []string {
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	return out
}

func ids[T models.Entity](list []T) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.EntityID())
	}
	return out
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"princegaming/models"
)

func newCatalog(t *testing.T, api *fakeAPI) *CatalogService {
	t.Helper()
	s, err := NewCatalogService(api, "http://127.0.0.1:8080")
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestCatalog_FamilySortsSpanish(t *testing.T) {
	api := newFakeAPI()
	api.games = []models.Game{
		{ID: "3", Name: "Ñandú Run", Precio: 1, Stock: 1},
		{ID: "1", Name: "zelda", Precio: 1, Stock: 1},
		{ID: "2", Name: "Nba 2K", Precio: 1, Stock: 1},
		{ID: "4", Name: "Ábaco", Precio: 1, Stock: 1},
	}
	entries, err := newCatalog(t, api).Family(context.Background(), KindGames)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	want := []string{"Ábaco", "Nba 2K", "Ñandú Run", "zelda"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_FamilyEntries(t *testing.T) {
	api := newFakeAPI()
	api.consoles = []models.Product{{ID: "c1", Name: "PS5", Price: 2500000, Stock: 2, Brand: "Sony", Category: "console"}}
	entries, err := newCatalog(t, api).Family(context.Background(), KindConsoles)
	require.NoError(t, err)

	want := []models.CatalogEntry{{ID: "c1", Name: "PS5", Family: "consoles", Brand: "Sony", Price: 2500000, PriceLabel: "$2.500.000", Stock: 2}}
	assert.Equal(t, want, entries)
}

func TestCatalog_UnknownFamily(t *testing.T) {
	_, err := newCatalog(t, newFakeAPI()).Family(context.Background(), "pets")
	assert.Error(t, err)
}

func TestCatalog_BuildPaginatesInStockEntries(t *testing.T) {
	api := newFakeAPI()
	for i := 0; i < 11; i++ {
		api.games = append(api.games, models.Game{ID: fmt.Sprint(i), Name: fmt.Sprintf("Juego %02d", i), Precio: 1000, Stock: 1})
	}
	api.games = append(api.games, models.Game{ID: "out", Name: "Agotado", Stock: 0})
	api.accessories = []models.Product{{ID: "a1", Name: "Cable", Price: 20000, Stock: 5}}

	data, err := newCatalog(t, api).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, data.EntryCount)
	require.Len(t, data.Pages, 2)
	assert.Len(t, data.Pages[0], 9)
	assert.Len(t, data.Pages[1], 3)
	assert.Equal(t, "01/05/2024", data.GeneratedAt)
	for _, page := range data.Pages {
		for _, e := range page {
			assert.NotEqual(t, "out", e.ID)
		}
	}
}

func TestCatalog_BuildFailsWhenAFamilyFails(t *testing.T) {
	api := newFakeAPI()
	api.failWith["ListProducts"] = serverDown()
	_, err := newCatalog(t, api).Build(context.Background())
	assert.Error(t, err)
}

func TestCatalog_Render(t *testing.T) {
	api := newFakeAPI()
	api.games = []models.Game{{ID: "g1", Name: "Halo <Infinite>", Precio: 50000, Stock: 4, Publisher: "Xbox"}}

	var buf bytes.Buffer
	require.NoError(t, newCatalog(t, api).Render(context.Background(), &buf))
	html := buf.String()
	assert.Contains(t, html, "Princegaming")
	assert.Contains(t, html, "Halo &lt;Infinite&gt;")
	assert.Contains(t, html, "$50.000")
	assert.Contains(t, html, "Juego")
	assert.Contains(t, html, "página 1 de 1")
}

func TestCatalog_RenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newCatalog(t, newFakeAPI()).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No hay productos disponibles.")
}

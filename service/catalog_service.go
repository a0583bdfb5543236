package service

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"sort"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"princegaming/models"
	"princegaming/utils"
)

//go:embed templates/catalog.html
var catalogTemplates embed.FS

const entriesPerPage = 9

// CatalogSource lists what goes into the public catalog
type CatalogSource interface {
	ListGames(ctx context.Context) ([]models.Game, error)
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
}

// CatalogService builds the public catalog and exports it as a PDF
type CatalogService struct {
	source  CatalogSource
	baseURL string
	tmpl    *template.Template
	now     func() time.Time
}

var familyLabels = map[string]string{
	KindGames:       "Juego",
	KindConsoles:    "Consola",
	KindAccessories: "Accesorio",
}

// NewCatalogService creates a CatalogService. baseURL is where this process
// serves /panel/catalog/render, used by the PDF export.
func NewCatalogService(source CatalogSource, baseURL string) (*CatalogService, error) {
	tmpl, err := template.New("catalog.html").Funcs(template.FuncMap{
		"inc":         func(i int) int { return i + 1 },
		"familyLabel": func(f string) string { return familyLabels[f] },
	}).ParseFS(catalogTemplates, "templates/catalog.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &CatalogService{source: source, baseURL: baseURL, tmpl: tmpl, now: time.Now}, nil
}

// Family returns the entries of one family: games, consoles or accessories
func (s *CatalogService) Family(ctx context.Context, family string) ([]models.CatalogEntry, error) {
	var entries []models.CatalogEntry
	switch family {
	case KindGames:
		games, err := s.source.ListGames(ctx)
		if err != nil {
			return nil, err
		}
		for _, g := range games {
			entries = append(entries, entry(family, g.CartItem(), g.Stock))
		}
	case KindConsoles, KindAccessories:
		category := models.CategoryConsole
		if family == KindAccessories {
			category = models.CategoryAccessory
		}
		products, err := s.source.ListProducts(ctx, category)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			entries = append(entries, entry(family, p.CartItem(), p.Stock))
		}
	default:
		return nil, fmt.Errorf("unknown family %q", family)
	}
	sortEntries(entries)
	return entries, nil
}

func entry(family string, item models.CartItem, stock int) models.CatalogEntry {
	return models.CatalogEntry{
		ID:         item.ID,
		Name:       item.Name,
		Family:     family,
		Brand:      item.Brand,
		Price:      item.Price,
		PriceLabel: utils.FormatCOP(item.Price),
		Stock:      stock,
		ImageURL:   item.ImageURL,
	}
}

// sortEntries orders by name using Spanish collation, so accents and ñ sort where a reader expects
func sortEntries(entries []models.CatalogEntry) {
	col := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		return col.CompareString(entries[i].Name, entries[j].Name) < 0
	})
}

// Build collects every family in stock and splits it into pages
func (s *CatalogService) Build(ctx context.Context) (*models.CatalogData, error) {
	families := []string{KindGames, KindConsoles, KindAccessories}
	results := make([][]models.CatalogEntry, len(families))

	g, gctx := errgroup.WithContext(ctx)
	for i, family := range families {
		g.Go(func() error {
			entries, err := s.Family(gctx, family)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", family, err)
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []models.CatalogEntry
	for _, entries := range results {
		for _, e := range entries {
			if e.Stock > 0 {
				all = append(all, e)
			}
		}
	}

	return &models.CatalogData{
		StoreName:   storeName,
		GeneratedAt: s.now().Format("02/01/2006"),
		Pages:       paginateEntries(all),
		EntryCount:  len(all),
	}, nil
}

// paginateEntries splits entries into pages of nine
func paginateEntries(entries []models.CatalogEntry) [][]models.CatalogEntry {
	var pages [][]models.CatalogEntry
	for i := 0; i < len(entries); i += entriesPerPage {
		end := min(i+entriesPerPage, len(entries))
		pages = append(pages, entries[i:end])
	}
	return pages
}

// Render writes the catalog HTML
func (s *CatalogService) Render(ctx context.Context, w io.Writer) error {
	data, err := s.Build(ctx)
	if err != nil {
		return err
	}
	if err := s.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// detectChromePath checks CHROME_PATH first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}
	for _, path := range []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GeneratePDF prints the rendered catalog page to an A4 PDF with headless Chrome
func (s *CatalogService) GeneratePDF(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 45*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.baseURL + "/panel/catalog/render"
	zap.S().Infof("🖨️  GeneratePDF: rendering %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		// wait for fonts and images, giving up on each image after 5s
		chromedp.Evaluate(`
			Promise.all([
				document.fonts.ready,
				Promise.all(Array.from(document.images).map(img => img.complete ? null : new Promise(resolve => {
					const t = setTimeout(resolve, 5000);
					img.onload = img.onerror = () => { clearTimeout(t); resolve(); };
				})))
			]).then(() => true)
		`, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// 210mm x 297mm
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	zap.S().Infof("✅ GeneratePDF: %d bytes", len(pdfBuf))
	return pdfBuf, nil
}

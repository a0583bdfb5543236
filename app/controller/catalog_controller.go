package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"princegaming/service"
)

// CatalogController serves the storefront listings and the printable catalog
type CatalogController struct {
	catalog *service.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalog *service.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// Family handles GET /catalog/{family}
// Lists games, consoles or accessories for the public storefront.
func (c *CatalogController) Family(w http.ResponseWriter, r *http.Request) {
	family := chi.URLParam(r, "family")
	switch family {
	case service.KindGames, service.KindConsoles, service.KindAccessories:
	default:
		respondError(w, http.StatusNotFound, fmt.Sprintf("unknown family %q", family))
		return
	}

	entries, err := c.catalog.Family(r.Context(), family)
	if err != nil {
		zap.S().Errorf("❌ Family: Error listing %s: %v", family, err)
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// RenderCatalog handles GET /panel/catalog/render
// Serves the HTML page that GeneratePDF prints.
func (c *CatalogController) RenderCatalog(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 RenderCatalog: Received %s request to %s", r.Method, r.URL.Path)

	var buf bytes.Buffer
	if err := c.catalog.Render(r.Context(), &buf); err != nil {
		zap.S().Errorf("❌ RenderCatalog: %v", err)
		respondFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		zap.S().Errorf("❌ RenderCatalog: Error writing response: %v", err)
	}
}

// DownloadPDF handles GET /panel/catalog.pdf
func (c *CatalogController) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 DownloadPDF: Received %s request to %s", r.Method, r.URL.Path)

	pdfData, err := c.catalog.GeneratePDF(r.Context())
	if err != nil {
		zap.S().Errorf("❌ DownloadPDF: %v", err)
		respondError(w, http.StatusInternalServerError, "No se pudo generar el catálogo")
		return
	}

	filename := fmt.Sprintf("catalogo-princegaming-%s.pdf", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfData)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfData); err != nil {
		zap.S().Errorf("❌ DownloadPDF: Error writing response: %v", err)
		return
	}
	zap.S().Infof("✅ DownloadPDF: Sent %s (%d bytes)", filename, len(pdfData))
}

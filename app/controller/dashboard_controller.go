package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"princegaming/models"
	"princegaming/service"
)

// DashboardController handles the guarded inventory panel
type DashboardController struct {
	dashboard *service.Dashboard
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboard *service.Dashboard) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

type panelView struct {
	Kind     string         `json:"kind"`
	Rows     []service.Row  `json:"rows"`
	Editing  *editingView   `json:"editing,omitempty"`
	FormOpen bool           `json:"formOpen"`
	Staged   *stagedView    `json:"staged,omitempty"`
	Notice   service.Notice `json:"notice"`
}

type editingView struct {
	Index int           `json:"index"`
	Draft models.Fields `json:"draft"`
}

type stagedView struct {
	Name      string `json:"name,omitempty"`
	Size      int64  `json:"size,omitempty"`
	Uploading bool   `json:"uploading"`
	Error     string `json:"error,omitempty"`
}

// panel resolves {kind} or answers 404
func (c *DashboardController) panel(w http.ResponseWriter, r *http.Request) (service.Panel, bool) {
	kind := chi.URLParam(r, "kind")
	panel, ok := c.dashboard.Panel(kind)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("unknown family %q", kind))
		return nil, false
	}
	return panel, true
}

func indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		respondError(w, http.StatusBadRequest, "index must be a non-negative integer")
		return 0, false
	}
	return index, true
}

func (c *DashboardController) view(panel service.Panel) panelView {
	v := panelView{
		Kind:   panel.Kind(),
		Rows:   panel.Rows(),
		Notice: c.dashboard.Notifier().Current(),
	}
	if index, draft, ok := panel.Editing(); ok {
		v.Editing = &editingView{Index: index, Draft: draft}
	}
	if form, ok := c.dashboard.Form(panel.Kind()); ok {
		v.FormOpen = form.IsOpen()
		slot := form.Slot()
		staged := stagedView{Uploading: slot.Uploading(), Error: slot.LastError()}
		if file, ok := slot.Selected(); ok {
			staged.Name, staged.Size = file.Name, file.Size
		}
		if staged != (stagedView{}) {
			v.Staged = &staged
		}
	}
	return v
}

func (c *DashboardController) respondPanel(w http.ResponseWriter, panel service.Panel) {
	respondJSON(w, http.StatusOK, c.view(panel))
}

// Overview handles GET /panel
func (c *DashboardController) Overview(w http.ResponseWriter, r *http.Request) {
	panels := make([]panelView, 0, len(c.dashboard.Kinds()))
	for _, kind := range c.dashboard.Kinds() {
		panel, _ := c.dashboard.Panel(kind)
		panels = append(panels, c.view(panel))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"panels": panels,
		"notice": c.dashboard.Notifier().Current(),
	})
}

// List handles GET /panel/{kind}
func (c *DashboardController) List(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.panel(w, r)
	if !ok {
		return
	}
	c.respondPanel(w, panel)
}

// Reload handles POST /panel/{kind}/reload
func (c *DashboardController) Reload(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.panel(w, r)
	if !ok {
		return
	}
	zap.S().Infof("🔄 Reload: %s", panel.Kind())
	if err := c.dashboard.Reload(r.Context(), panel.Kind()); err != nil {
		respondFailure(w, err)
		return
	}
	c.respondPanel(w, panel)
}

// StartEdit handles POST /panel/{kind}/edit/{index}
func (c *DashboardController) StartEdit(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.panel(w, r)
	if !ok {
		return
	}
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	if err := panel.StartEdit(index); err != nil {
		respondFailure(w, err)
		return
	}
	c.respondPanel(w, panel)
}

// UpdateDraft handles PATCH /panel/{kind}/draft
func (c *DashboardController) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.panel(w, r)
	if !ok {
		return
	}
	patch, err := decodeFields(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := panel.UpdateDraft(patch); err != nil {
		respondFailure(w, err)
		return
	}
	c.respondPanel(w, panel)
}

// CancelEdit handles DELETE /panel/{kind}/edit
func (c *DashboardController) CancelEdit(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.panel(w, r)
	if !ok {
		return
	}
	panel.CancelEdit()
	c.respondPanel(w, panel)
}

// Save handles PUT /panel/{kind}/edit
func (c *DashboardController) Save(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.panel(w, r)
	if !ok {
		return
	}
	zap.S().Infof("📥 Save: %s", panel.Kind())
	if err := c.dashboard.Save(r.Context(), panel.Kind()); err != nil {
		respondFailure(w, err)
		return
	}
	c.respondPanel(w, panel)
}

// Delete handles DELETE /panel/{kind}/{index}
// The operator's answer to the confirmation prompt travels as ?confirm=true.
func (c *DashboardController) Delete(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.panel(w, r)
	if !ok {
		return
	}
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	confirmed := r.URL.Query().Get("confirm") == "true"
	confirm := service.ConfirmFunc(func(prompt string) bool {
		zap.S().Infof("❓ Delete: %q answered %t", prompt, confirmed)
		return confirmed
	})

	err := c.dashboard.Delete(r.Context(), panel.Kind(), index, confirm)
	if err != nil && !errors.Is(err, service.ErrDeleteDeclined) {
		respondFailure(w, err)
		return
	}
	c.respondPanel(w, panel)
}

// OpenForm handles POST /panel/{kind}/form
func (c *DashboardController) OpenForm(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.panel(w, r)
	if !ok {
		return
	}
	form, _ := c.dashboard.Form(panel.Kind())
	form.Open()
	c.respondPanel(w, panel)
}

// CloseForm handles DELETE /panel/{kind}/form
func (c *DashboardController) CloseForm(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.panel(w, r)
	if !ok {
		return
	}
	form, _ := c.dashboard.Form(panel.Kind())
	form.Close()
	c.respondPanel(w, panel)
}

// Create handles POST /panel/{kind}
// Accepts JSON or a multipart form; a file under "image" is staged before submitting.
func (c *DashboardController) Create(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.panel(w, r)
	if !ok {
		return
	}
	zap.S().Infof("📥 Create: Received %s request to %s", r.Method, r.URL.Path)

	fields, err := decodeFields(r)
	if err != nil {
		zap.S().Errorf("❌ Create: Failed to decode request body: %v", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if file, ok := formFile(r, "image"); ok {
		if err := c.dashboard.StageImage(panel.Kind(), file); err != nil {
			respondFailure(w, err)
			return
		}
	}

	if err := c.dashboard.Create(r.Context(), panel.Kind(), fields); err != nil {
		respondFailure(w, err)
		return
	}
	zap.S().Infof("✅ Create: %s entry created", panel.Kind())
	c.respondPanel(w, panel)
}

// StageImage handles POST /panel/{kind}/image
func (c *DashboardController) StageImage(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.panel(w, r)
	if !ok {
		return
	}
	file, ok := c.uploadedFile(w, r)
	if !ok {
		return
	}
	if err := c.dashboard.StageImage(panel.Kind(), file); err != nil {
		respondFailure(w, err)
		return
	}
	c.respondPanel(w, panel)
}

// StageDriveImage handles POST /panel/{kind}/image/drive
func (c *DashboardController) StageDriveImage(w http.ResponseWriter, r *http.Request) {
	panel, ok := c.panel(w, r)
	if !ok {
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	fileID, _ := fields.String("fileId")
	if strings.TrimSpace(fileID) == "" {
		respondError(w, http.StatusBadRequest, "fileId is required")
		return
	}
	if err := c.dashboard.StageDriveImage(r.Context(), panel.Kind(), fileID); err != nil {
		respondFailure(w, err)
		return
	}
	c.respondPanel(w, panel)
}

// DriveImages handles GET /panel/drive/images?folderId=
func (c *DashboardController) DriveImages(w http.ResponseWriter, r *http.Request) {
	folderID := r.URL.Query().Get("folderId")
	if folderID == "" {
		respondError(w, http.StatusBadRequest, "folderId query parameter is required")
		return
	}
	images, err := c.dashboard.DriveImages(r.Context(), folderID)
	if err != nil {
		zap.S().Errorf("❌ DriveImages: %v", err)
		respondFailure(w, err)
		return
	}
	respondJSON(w, http.StatusOK, images)
}

// ReplaceGameImage handles POST /panel/{kind}/{index}/image, games only
func (c *DashboardController) ReplaceGameImage(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "kind") != service.KindGames {
		respondError(w, http.StatusNotFound, "only games have a replaceable cover")
		return
	}
	index, ok := indexParam(w, r)
	if !ok {
		return
	}
	file, ok := c.uploadedFile(w, r)
	if !ok {
		return
	}
	if err := c.dashboard.ReplaceGameImage(r.Context(), index, file); err != nil {
		respondFailure(w, err)
		return
	}
	c.respondPanel(w, c.dashboard.Games)
}

// uploadedFile parses a multipart body and returns its "image" part
func (c *DashboardController) uploadedFile(w http.ResponseWriter, r *http.Request) (models.FileHandle, bool) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		respondError(w, http.StatusBadRequest, "Expected a multipart form with an image")
		return models.FileHandle{}, false
	}
	file, ok := formFile(r, "image")
	if !ok {
		respondError(w, http.StatusBadRequest, "image file is required")
		return models.FileHandle{}, false
	}
	return file, true
}

// Notice handles GET /panel/notice
func (c *DashboardController) Notice(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, c.dashboard.Notifier().Current())
}

// DismissNotice handles DELETE /panel/notice
func (c *DashboardController) DismissNotice(w http.ResponseWriter, r *http.Request) {
	c.dashboard.Notifier().Dismiss()
	w.WriteHeader(http.StatusNoContent)
}

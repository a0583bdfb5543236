package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"princegaming/service"
)

// PanelLoader fills the panel lists once a session starts
type PanelLoader interface {
	LoadAll(ctx context.Context) error
}

// AuthController handles the login view and the session guard
type AuthController struct {
	auth    service.AuthServiceInterface
	session service.SessionServiceInterface
	panel   PanelLoader
}

// NewAuthController creates a new AuthController. panel may be nil.
func NewAuthController(auth service.AuthServiceInterface, session service.SessionServiceInterface, panel PanelLoader) *AuthController {
	return &AuthController{auth: auth, session: session, panel: panel}
}

// ShowLogin handles GET /login
// A session already in place goes straight to the panel.
func (c *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if c.session.IsAuthenticated() {
		http.Redirect(w, r, "/panel", http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"authenticated": false})
}

// Login handles POST /login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 Login: Received %s request to %s", r.Method, r.URL.Path)

	fields, err := decodeFields(r)
	if err != nil {
		zap.S().Errorf("❌ Login: Failed to decode request body: %v", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	email, _ := fields.String("email")
	password, _ := fields.String("password")

	user, err := c.auth.Login(r.Context(), email, password)
	if err != nil {
		respondFailure(w, err)
		return
	}
	// failures are already on the panel banner; the login itself stands
	if c.panel != nil {
		if err := c.panel.LoadAll(r.Context()); err != nil {
			zap.S().Warnf("⚠️  Login: panel load failed: %v", err)
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{"user": user, "redirect": "/panel"})
}

// Logout handles POST /logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.auth.Logout(r.Context()); err != nil {
		zap.S().Errorf("❌ Logout: %v", err)
		respondFailure(w, err)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// RequireAuth sends requests without a session to the login view
func (c *AuthController) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !c.session.IsAuthenticated() {
			zap.S().Infof("🔒 RequireAuth: no session for %s, redirecting to /login", r.URL.Path)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Me handles GET /panel/me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := c.session.User()
	if !ok {
		respondError(w, http.StatusNotFound, "Sin datos de usuario")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

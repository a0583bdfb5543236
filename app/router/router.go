package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"princegaming/app/controller"
)

// RequestTimeout bounds every request; the PDF export is the slowest at up to 45s
const RequestTimeout = 60 * time.Second

type Controllers struct {
	Auth      *controller.AuthController
	Cart      *controller.CartController
	Catalog   *controller.CatalogController
	Dashboard *controller.DashboardController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes builds the local view router
func SetupRoutes(controllers *Controllers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/ping", pingHandler)

	// Public views
	r.Get("/login", controllers.Auth.ShowLogin)
	r.Post("/login", controllers.Auth.Login)
	r.Post("/logout", controllers.Auth.Logout)
	r.Get("/catalog/{family}", controllers.Catalog.Family)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", controllers.Cart.Get)
		r.Delete("/", controllers.Cart.Clear)
		r.Post("/items", controllers.Cart.AddItem)
		r.Put("/items/{id}", controllers.Cart.UpdateItem)
		r.Delete("/items/{id}", controllers.Cart.RemoveItem)
		r.Post("/show", controllers.Cart.Show)
		r.Post("/hide", controllers.Cart.Hide)
		r.Post("/checkout", controllers.Cart.Checkout)
	})

	// Inventory panel, requires a session
	r.Route("/panel", func(r chi.Router) {
		r.Use(controllers.Auth.RequireAuth)

		r.Get("/", controllers.Dashboard.Overview)
		r.Get("/me", controllers.Auth.Me)
		r.Get("/notice", controllers.Dashboard.Notice)
		r.Delete("/notice", controllers.Dashboard.DismissNotice)
		r.Get("/catalog/render", controllers.Catalog.RenderCatalog)
		r.Get("/catalog.pdf", controllers.Catalog.DownloadPDF)
		r.Get("/drive/images", controllers.Dashboard.DriveImages)

		r.Route("/{kind}", func(r chi.Router) {
			r.Get("/", controllers.Dashboard.List)
			r.Post("/", controllers.Dashboard.Create)
			r.Post("/reload", controllers.Dashboard.Reload)
			r.Post("/edit/{index}", controllers.Dashboard.StartEdit)
			r.Patch("/draft", controllers.Dashboard.UpdateDraft)
			r.Put("/edit", controllers.Dashboard.Save)
			r.Delete("/edit", controllers.Dashboard.CancelEdit)
			r.Post("/form", controllers.Dashboard.OpenForm)
			r.Delete("/form", controllers.Dashboard.CloseForm)
			r.Post("/image", controllers.Dashboard.StageImage)
			r.Post("/image/drive", controllers.Dashboard.StageDriveImage)
			r.Delete("/{index}", controllers.Dashboard.Delete)
			r.Post("/{index}/image", controllers.Dashboard.ReplaceGameImage)
		})
	})

	return r
}

// internal/app/features/visibility/routes.go
package visibility

import (
	"github.com/dalemusser/courseforge/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the component visibility routes. Editing visibility
// requires an authoring role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole("admin", "author", "staff"))

		pr.Get("/{locator}/visibility", h.ServeVisibility)
		pr.Post("/{locator}/visibility", h.HandleVisibility)
	})

	return r
}

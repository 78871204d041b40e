// internal/app/features/contentgroups/routes.go
package contentgroups

import (
	"github.com/dalemusser/courseforge/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the content-group management routes, mounted under
// /courses. Managing groups requires an authoring role.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole("admin", "author", "staff"))

		pr.Get("/{courseID}/content-groups", h.ServeContentGroups)
		pr.Post("/{courseID}/content-groups", h.HandleCreateGroup)
		pr.Post("/{courseID}/content-groups/{partitionID}/{groupID}/delete", h.HandleDeleteGroup)
	})

	return r
}

// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/courseforge/internal/app/system/auth"
	"github.com/dalemusser/courseforge/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the landing page.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeRoot handles GET /.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	_, signedIn := auth.CurrentUser(r)

	data := struct {
		viewdata.BaseVM
		SignedIn bool
	}{
		BaseVM:   viewdata.NewBaseVM(r, "Welcome", "/"),
		SignedIn: signedIn,
	}

	templates.Render(w, r, "home", data)
}

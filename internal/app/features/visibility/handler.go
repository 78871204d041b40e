// internal/app/features/visibility/handler.go
package visibility

import (
	"context"
	"fmt"
	"html"
	"html/template"
	"net/http"

	uierrors "github.com/dalemusser/courseforge/internal/app/features/errors"
	componentstore "github.com/dalemusser/courseforge/internal/app/store/components"
	partitionstore "github.com/dalemusser/courseforge/internal/app/store/partitions"
	"github.com/dalemusser/courseforge/internal/app/system/i18n"
	"github.com/dalemusser/courseforge/internal/app/system/partinfo"
	"github.com/dalemusser/courseforge/internal/app/system/timeouts"
	"github.com/dalemusser/courseforge/internal/app/system/viewdata"
	vispanel "github.com/dalemusser/courseforge/internal/app/system/visibility"
	"github.com/dalemusser/courseforge/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ComponentSource is the slice of the component store this feature needs.
type ComponentSource interface {
	GetByLocator(ctx context.Context, locator string) (models.Component, error)
	AncestorHasStaffLock(ctx context.Context, comp models.Component) (bool, error)
	UpdateGroupAccess(ctx context.Context, id primitive.ObjectID, access map[string][]string) error
}

// PartitionSource supplies the course's partition definitions.
type PartitionSource interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.UserPartition, error)
}

// Handler owns the component visibility editor.
type Handler struct {
	Components ComponentSource
	Partitions PartitionSource
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
}

// NewHandler constructs a Handler backed by the Mongo stores. Tests
// construct a Handler literal with fakes for the two sources.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Components: componentstore.New(db),
		Partitions: partitionstore.New(db),
		Log:        logger,
		ErrLog:     errLog,
	}
}

type panelVM struct {
	viewdata.BaseVM
	ComponentName string
	Locator       string
	CourseID      string
	Panel         template.HTML
	Saved         bool
}

// ManageGroupsURL returns the content-group management page for a course.
// The empty state of the panel links here.
func ManageGroupsURL(courseID string) string {
	return fmt.Sprintf("/courses/%s/content-groups", courseID)
}

// BuildPanel assembles the panel description for one component: it
// gathers partition definitions and the ancestor lock flag, derives the
// view model, and runs the pure renderer with the request's locale.
func (h *Handler) BuildPanel(ctx context.Context, r *http.Request, comp models.Component) (vispanel.Panel, error) {
	parts, err := h.Partitions.ListByCourse(ctx, comp.CourseID)
	if err != nil {
		return vispanel.Panel{}, fmt.Errorf("list partitions: %w", err)
	}
	locked, err := h.Components.AncestorHasStaffLock(ctx, comp)
	if err != nil {
		return vispanel.Panel{}, fmt.Errorf("ancestor lock: %w", err)
	}

	vm := partinfo.Build(parts, comp)
	vm.ManageGroupsURL = ManageGroupsURL(comp.CourseID)
	vm.StaffLocked = locked

	return vispanel.Render(vm, i18n.FromRequest(r), html.EscapeString), nil
}

// ServeVisibility displays the visibility editor for a component.
// GET /components/{locator}/visibility
func (h *Handler) ServeVisibility(w http.ResponseWriter, r *http.Request) {
	locator := chi.URLParam(r, "locator")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comp, err := h.Components.GetByLocator(ctx, locator)
	if err == componentstore.ErrNotFound {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load component failed", err, "Failed to load the component.", "/")
		return
	}

	panel, err := h.BuildPanel(ctx, r, comp)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "build visibility panel failed", err, "Failed to load visibility settings.", "/")
		return
	}

	vm := panelVM{
		BaseVM:        viewdata.NewBaseVM(r, "Component Visibility", "/"),
		ComponentName: comp.DisplayName,
		Locator:       comp.Locator,
		CourseID:      comp.CourseID,
		Panel:         Materialize(panel),
		Saved:         r.URL.Query().Get("saved") != "",
	}

	templates.Render(w, r, "visibility_panel", vm)
}

// internal/app/features/contentgroups/handler.go
package contentgroups

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	uierrors "github.com/dalemusser/courseforge/internal/app/features/errors"
	partitionstore "github.com/dalemusser/courseforge/internal/app/store/partitions"
	"github.com/dalemusser/courseforge/internal/app/system/htmlsanitize"
	"github.com/dalemusser/courseforge/internal/app/system/timeouts"
	"github.com/dalemusser/courseforge/internal/app/system/viewdata"
	"github.com/dalemusser/courseforge/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// PartitionSource is the slice of the partition store this feature needs.
type PartitionSource interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.UserPartition, error)
	Create(ctx context.Context, p models.UserPartition) (models.UserPartition, error)
	AddGroup(ctx context.Context, courseID, partitionID string, g models.PartitionGroup) error
	RemoveGroup(ctx context.Context, courseID, partitionID, groupID string) error
}

// Handler owns the content-group management pages.
type Handler struct {
	Partitions PartitionSource
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
}

// NewHandler constructs a Handler backed by the Mongo partition store.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Partitions: partitionstore.New(db),
		Log:        logger,
		ErrLog:     errLog,
	}
}

type groupsVM struct {
	viewdata.BaseVM
	CourseID   string
	Partitions []models.UserPartition
	Created    bool
	Deleted    bool
	Error      string
}

// ServeContentGroups lists a course's content groups.
// GET /courses/{courseID}/content-groups
func (h *Handler) ServeContentGroups(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	parts, err := h.Partitions.ListByCourse(ctx, courseID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list partitions failed", err, "Failed to load content groups.", "/")
		return
	}

	cohorts := make([]models.UserPartition, 0, len(parts))
	for _, p := range parts {
		if p.IsCohort() {
			cohorts = append(cohorts, p)
		}
	}

	q := r.URL.Query()
	vm := groupsVM{
		BaseVM:     viewdata.NewBaseVM(r, "Content Groups", "/"),
		CourseID:   courseID,
		Partitions: cohorts,
		Created:    q.Get("created") != "",
		Deleted:    q.Get("deleted") != "",
		Error:      q.Get("error"),
	}
	templates.Render(w, r, "content_groups", vm)
}

// HandleCreateGroup adds a content group to the course, creating the
// course's cohort partition on first use.
// POST /courses/{courseID}/content-groups
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse content group form failed", err, "Invalid form data.", "/")
		return
	}

	name := strings.TrimSpace(htmlsanitize.Strip(r.PostForm.Get("name")))
	base := "/courses/" + courseID + "/content-groups"
	if name == "" {
		http.Redirect(w, r, base+"?error="+url.QueryEscape("Group name is required."), http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	part, err := h.cohortPartition(ctx, courseID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "ensure cohort partition failed", err, "Failed to create the group.", base)
		return
	}

	g := models.PartitionGroup{GroupID: uuid.NewString(), Name: name}
	err = h.Partitions.AddGroup(ctx, courseID, part.PartitionID, g)
	if err == partitionstore.ErrDuplicateGroupName {
		http.Redirect(w, r, base+"?error="+url.QueryEscape("A group with this name already exists."), http.StatusSeeOther)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "add group failed", err, "Failed to create the group.", base)
		return
	}

	h.Log.Info("content group created",
		zap.String("course_id", courseID),
		zap.String("partition_id", part.PartitionID),
		zap.String("group_id", g.GroupID),
	)
	http.Redirect(w, r, base+"?created=1", http.StatusSeeOther)
}

// HandleDeleteGroup removes a group definition. Components that still
// reference it keep their stale selection and show it as deleted in the
// visibility panel.
// POST /courses/{courseID}/content-groups/{partitionID}/{groupID}/delete
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	partitionID := chi.URLParam(r, "partitionID")
	groupID := chi.URLParam(r, "groupID")
	base := "/courses/" + courseID + "/content-groups"

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := h.Partitions.RemoveGroup(ctx, courseID, partitionID, groupID)
	if err == partitionstore.ErrNotFound {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "remove group failed", err, "Failed to delete the group.", base)
		return
	}

	h.Log.Info("content group deleted",
		zap.String("course_id", courseID),
		zap.String("partition_id", partitionID),
		zap.String("group_id", groupID),
	)
	http.Redirect(w, r, base+"?deleted=1", http.StatusSeeOther)
}

// cohortPartition returns the course's cohort partition, creating it on
// first use. A course keeps a single cohort partition holding all of its
// content groups.
func (h *Handler) cohortPartition(ctx context.Context, courseID string) (models.UserPartition, error) {
	parts, err := h.Partitions.ListByCourse(ctx, courseID)
	if err != nil {
		return models.UserPartition{}, err
	}
	for _, p := range parts {
		if p.IsCohort() {
			return p, nil
		}
	}

	return h.Partitions.Create(ctx, models.UserPartition{
		CourseID:    courseID,
		PartitionID: uuid.NewString(),
		Name:        "Content Groups",
		Scheme:      models.SchemeCohort,
	})
}

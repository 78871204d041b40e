// internal/app/features/visibility/submit.go
package visibility

import (
	"context"
	"strings"

	"net/http"

	componentstore "github.com/dalemusser/courseforge/internal/app/store/components"
	"github.com/dalemusser/courseforge/internal/app/system/timeouts"
	vispanel "github.com/dalemusser/courseforge/internal/app/system/visibility"
	"github.com/dalemusser/courseforge/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleVisibility processes the panel's form submission.
// POST /components/{locator}/visibility
//
// "all" clears every cohort restriction; "specific" replaces them with
// the submitted {partitionId}-{groupId} values. Restrictions on
// non-cohort partitions (enrollment tracks) are preserved either way —
// this form only edits content groups.
func (h *Handler) HandleVisibility(w http.ResponseWriter, r *http.Request) {
	locator := chi.URLParam(r, "locator")

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse visibility form failed", err, "Invalid form data.", "/")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
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

	parts, err := h.Partitions.ListByCourse(ctx, comp.CourseID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list partitions failed", err, "Failed to save visibility settings.", "/")
		return
	}

	level := r.PostForm.Get(vispanel.FieldLevel)
	values := r.PostForm[vispanel.FieldGroup]

	access := nextGroupAccess(comp, parts, level, values, h.Log)
	if err := h.Components.UpdateGroupAccess(ctx, comp.ID, access); err != nil {
		h.ErrLog.LogServerError(w, r, "update group access failed", err, "Failed to save visibility settings.", "/")
		return
	}

	http.Redirect(w, r, "/components/"+comp.Locator+"/visibility?saved=1", http.StatusSeeOther)
}

// nextGroupAccess computes the component's new group-access map from
// the submitted form. Unknown or malformed values are skipped, not
// rejected: validation of partition contents is the authoring flow's
// job, and a stale browser tab should not 500.
func nextGroupAccess(comp models.Component, parts []models.UserPartition, level string, values []string, log *zap.Logger) map[string][]string {
	cohort := make(map[string]bool)
	for _, p := range parts {
		if p.IsCohort() {
			cohort[p.PartitionID] = true
		}
	}

	// Start from the non-cohort entries; this form never touches them.
	access := make(map[string][]string)
	for pid, ids := range comp.GroupAccess {
		if !cohort[pid] && len(ids) > 0 {
			access[pid] = append([]string(nil), ids...)
		}
	}

	if level != vispanel.LevelSpecificValue {
		return access
	}

	for _, v := range values {
		pid, gid, ok := splitGroupValue(v, parts)
		if !ok {
			log.Warn("skipping unrecognized content group value", zap.String("value", v))
			continue
		}
		if !cohort[pid] {
			continue
		}
		access[pid] = append(access[pid], gid)
	}
	return access
}

// splitGroupValue resolves a {partitionId}-{groupId} form value
// against the known partitions. Matching on partition prefixes rather
// than the first hyphen keeps ids containing hyphens unambiguous.
func splitGroupValue(v string, parts []models.UserPartition) (pid, gid string, ok bool) {
	for _, p := range parts {
		prefix := p.PartitionID + "-"
		if strings.HasPrefix(v, prefix) && len(v) > len(prefix) {
			return p.PartitionID, v[len(prefix):], true
		}
	}
	return "", "", false
}

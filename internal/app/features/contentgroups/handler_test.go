package contentgroups

import (
	"context"
	"net/http"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/courseforge/internal/app/features/errors"
	partitionstore "github.com/dalemusser/courseforge/internal/app/store/partitions"
	"github.com/dalemusser/courseforge/internal/domain/models"
	"github.com/dalemusser/courseforge/internal/testutil"
	"go.uber.org/zap"
)

type fakePartitions struct {
	parts []models.UserPartition

	created      *models.UserPartition
	addedPID     string
	addedGroup   *models.PartitionGroup
	addGroupErr  error
	removedPID   string
	removedGID   string
	removeErr    error
	removeCalled bool
}

func (f *fakePartitions) ListByCourse(context.Context, string) ([]models.UserPartition, error) {
	return f.parts, nil
}

func (f *fakePartitions) Create(_ context.Context, p models.UserPartition) (models.UserPartition, error) {
	f.created = &p
	return p, nil
}

func (f *fakePartitions) AddGroup(_ context.Context, _ string, partitionID string, g models.PartitionGroup) error {
	if f.addGroupErr != nil {
		return f.addGroupErr
	}
	f.addedPID = partitionID
	f.addedGroup = &g
	return nil
}

func (f *fakePartitions) RemoveGroup(_ context.Context, _ string, partitionID, groupID string) error {
	f.removeCalled = true
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removedPID = partitionID
	f.removedGID = groupID
	return nil
}

func newTestHandler(fp *fakePartitions) *Handler {
	return &Handler{
		Partitions: fp,
		Log:        zap.NewNop(),
		ErrLog:     uierrors.NewErrorLogger(zap.NewNop()),
	}
}

func createGroupRequest(courseID, body string) *http.Request {
	r := testutil.NewFormRequest("/courses/"+courseID+"/content-groups", body, testutil.AuthorUser())
	return testutil.WithChiURLParam(r, "courseID", courseID)
}

func TestHandleCreateGroupStripsMarkup(t *testing.T) {
	fp := &fakePartitions{parts: []models.UserPartition{{
		CourseID:    "c1",
		PartitionID: "p1",
		Name:        "Content Groups",
		Scheme:      models.SchemeCohort,
	}}}
	h := newTestHandler(fp)

	w := testutil.NewRecorder()
	h.HandleCreateGroup(w, createGroupRequest("c1", "name=%3Cb%3EAudit%3C%2Fb%3E"))

	w.AssertRedirect(t, "/courses/c1/content-groups?created=1")
	if fp.addedGroup == nil {
		t.Fatal("AddGroup was not called")
	}
	if fp.addedGroup.Name != "Audit" {
		t.Errorf("group name: got %q, want markup stripped", fp.addedGroup.Name)
	}
	if fp.addedGroup.GroupID == "" {
		t.Error("group id should be assigned")
	}
	if fp.addedPID != "p1" {
		t.Errorf("partition: got %q, want p1", fp.addedPID)
	}
	if fp.created != nil {
		t.Error("existing cohort partition should be reused, not recreated")
	}
}

func TestHandleCreateGroupCreatesPartitionOnFirstUse(t *testing.T) {
	fp := &fakePartitions{}
	h := newTestHandler(fp)

	w := testutil.NewRecorder()
	h.HandleCreateGroup(w, createGroupRequest("c1", "name=Alpha"))

	w.AssertRedirect(t, "/courses/c1/content-groups?created=1")
	if fp.created == nil {
		t.Fatal("cohort partition should be created on first use")
	}
	if fp.created.Scheme != models.SchemeCohort {
		t.Errorf("scheme: got %q, want cohort", fp.created.Scheme)
	}
	if fp.created.PartitionID == "" {
		t.Error("partition id should be assigned")
	}
	if fp.addedGroup == nil || fp.addedGroup.Name != "Alpha" {
		t.Errorf("AddGroup: got %+v", fp.addedGroup)
	}
}

func TestHandleCreateGroupRejectsEmptyName(t *testing.T) {
	fp := &fakePartitions{}
	h := newTestHandler(fp)

	w := testutil.NewRecorder()
	h.HandleCreateGroup(w, createGroupRequest("c1", "name=%3Cscript%3E%3C%2Fscript%3E"))

	w.AssertStatus(t, http.StatusSeeOther)
	loc := w.Header().Get("Location")
	if !strings.Contains(loc, "error=") {
		t.Errorf("expected error redirect, got %q", loc)
	}
	if fp.addedGroup != nil {
		t.Error("AddGroup should not be called for an empty name")
	}
}

func TestHandleCreateGroupDuplicateName(t *testing.T) {
	fp := &fakePartitions{
		parts: []models.UserPartition{{
			CourseID:    "c1",
			PartitionID: "p1",
			Scheme:      models.SchemeCohort,
		}},
		addGroupErr: partitionstore.ErrDuplicateGroupName,
	}
	h := newTestHandler(fp)

	w := testutil.NewRecorder()
	h.HandleCreateGroup(w, createGroupRequest("c1", "name=Alpha"))

	w.AssertStatus(t, http.StatusSeeOther)
	if !strings.Contains(w.Header().Get("Location"), "error=") {
		t.Errorf("expected error redirect, got %q", w.Header().Get("Location"))
	}
}

func TestHandleDeleteGroup(t *testing.T) {
	fp := &fakePartitions{}
	h := newTestHandler(fp)

	r := testutil.NewFormRequest("/courses/c1/content-groups/p1/g1/delete", "", testutil.AuthorUser())
	r = testutil.WithChiURLParam(r, "courseID", "c1")
	r = testutil.WithChiURLParam(r, "partitionID", "p1")
	r = testutil.WithChiURLParam(r, "groupID", "g1")
	w := testutil.NewRecorder()

	h.HandleDeleteGroup(w, r)

	w.AssertRedirect(t, "/courses/c1/content-groups?deleted=1")
	if fp.removedPID != "p1" || fp.removedGID != "g1" {
		t.Errorf("RemoveGroup: got (%q, %q)", fp.removedPID, fp.removedGID)
	}
}

func TestHandleDeleteGroupNotFound(t *testing.T) {
	fp := &fakePartitions{removeErr: partitionstore.ErrNotFound}
	h := newTestHandler(fp)

	r := testutil.NewFormRequest("/courses/c1/content-groups/p1/g9/delete", "", testutil.AuthorUser())
	r = testutil.WithChiURLParam(r, "courseID", "c1")
	r = testutil.WithChiURLParam(r, "partitionID", "p1")
	r = testutil.WithChiURLParam(r, "groupID", "g9")
	w := testutil.NewRecorder()

	h.HandleDeleteGroup(w, r)

	w.AssertStatus(t, http.StatusNotFound)
}

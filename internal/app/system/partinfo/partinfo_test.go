package partinfo_test

import (
	"testing"

	"github.com/dalemusser/courseforge/internal/app/system/partinfo"
	"github.com/dalemusser/courseforge/internal/domain/models"
)

func cohortPartition(pid string, groups ...models.PartitionGroup) models.UserPartition {
	return models.UserPartition{
		PartitionID: pid,
		Name:        "Content Groups",
		Scheme:      models.SchemeCohort,
		Groups:      groups,
	}
}

func TestBuild_Empty(t *testing.T) {
	vm := partinfo.Build(nil, models.Component{})
	if len(vm.UserPartitions) != 0 || len(vm.CohortPartitions) != 0 {
		t.Error("no partitions in, no partitions out")
	}
	if vm.HasSelectedGroups {
		t.Error("HasSelectedGroups must be false with no partitions")
	}
}

func TestBuild_SkipsEmptyPartitions(t *testing.T) {
	parts := []models.UserPartition{cohortPartition("P1")}
	vm := partinfo.Build(parts, models.Component{})
	if len(vm.UserPartitions) != 0 {
		t.Error("a partition with no groups must not count as configured")
	}
}

func TestBuild_SelectionFromGroupAccess(t *testing.T) {
	parts := []models.UserPartition{cohortPartition("P1",
		models.PartitionGroup{GroupID: "g1", Name: "Group A"},
		models.PartitionGroup{GroupID: "g2", Name: "Group B"},
	)}
	comp := models.Component{GroupAccess: map[string][]string{"P1": {"g2"}}}

	vm := partinfo.Build(parts, comp)

	if !vm.HasSelectedGroups {
		t.Error("expected HasSelectedGroups with an active selection")
	}
	groups := vm.CohortPartitions[0].Groups
	if len(groups) != 2 {
		t.Fatalf("group count: got %d, want 2", len(groups))
	}
	if groups[0].Selected || !groups[1].Selected {
		t.Errorf("selection flags wrong: %+v", groups)
	}
	if groups[0].Name != "Group A" || groups[1].Name != "Group B" {
		t.Error("authoring order must be preserved")
	}
}

func TestBuild_StaleReferenceBecomesDeletedGroup(t *testing.T) {
	parts := []models.UserPartition{cohortPartition("P1",
		models.PartitionGroup{GroupID: "g1", Name: "Group A"},
	)}
	comp := models.Component{GroupAccess: map[string][]string{"P1": {"gone", "g1"}}}

	vm := partinfo.Build(parts, comp)

	groups := vm.CohortPartitions[0].Groups
	if len(groups) != 2 {
		t.Fatalf("group count: got %d, want live + stale", len(groups))
	}
	// Live groups first, stale refs appended after.
	if groups[0].ID != "g1" || groups[0].Deleted {
		t.Errorf("first group should be the live one: %+v", groups[0])
	}
	stale := groups[1]
	if stale.ID != "gone" || !stale.Deleted || !stale.Selected {
		t.Errorf("stale ref should be deleted and still selected: %+v", stale)
	}
	if stale.Name != "" {
		t.Errorf("stale ref has no name to show, got %q", stale.Name)
	}
	if !vm.HasSelectedGroups {
		t.Error("a stale selection still counts as a selection")
	}
}

func TestBuild_NoSelection(t *testing.T) {
	parts := []models.UserPartition{cohortPartition("P1",
		models.PartitionGroup{GroupID: "g1", Name: "Group A"},
	)}
	vm := partinfo.Build(parts, models.Component{})

	if vm.HasSelectedGroups {
		t.Error("no access entries means no selection")
	}
	if vm.UserPartitions[0].Groups[0].Selected {
		t.Error("group must be unselected")
	}
}

func TestBuild_EnrollmentTrackNotInCohorts(t *testing.T) {
	track := models.UserPartition{
		PartitionID: "enrollment",
		Name:        "Enrollment Track",
		Scheme:      models.SchemeEnrollmentTrack,
		Groups:      []models.PartitionGroup{{GroupID: "verified", Name: "Verified"}},
	}
	parts := []models.UserPartition{
		track,
		cohortPartition("P1", models.PartitionGroup{GroupID: "g1", Name: "Group A"}),
	}
	comp := models.Component{GroupAccess: map[string][]string{"enrollment": {"verified"}}}

	vm := partinfo.Build(parts, comp)

	if len(vm.UserPartitions) != 2 {
		t.Fatalf("both partitions count as configured, got %d", len(vm.UserPartitions))
	}
	if len(vm.CohortPartitions) != 1 || vm.CohortPartitions[0].ID != "P1" {
		t.Error("only cohort partitions may produce checkboxes")
	}
	if vm.HasSelectedGroups {
		t.Error("an enrollment-track selection is not a content-group selection")
	}
	if vm.SelectedVerifiedPartitionID != "enrollment" {
		t.Errorf("verified partition id: got %q", vm.SelectedVerifiedPartitionID)
	}
}

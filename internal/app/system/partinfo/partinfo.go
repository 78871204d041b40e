// Package partinfo assembles the visibility panel's view model from
// partition definitions and a component's group-access selections.
//
// It is the upstream collaborator of visibility.Render: all joining,
// selection, and stale-reference detection happens here, so the
// renderer stays a pure function of the result.
package partinfo

import (
	"github.com/dalemusser/courseforge/internal/app/system/visibility"
	"github.com/dalemusser/courseforge/internal/domain/models"
)

// Build joins partition definitions with the component's GroupAccess
// map and returns the panel view model.
//
// Partitions with no groups are skipped entirely: they offer nothing
// to select and do not count as "configured". For each cohort
// partition, live groups keep authoring order and are marked selected
// when their id appears in the component's access list; access-list
// ids with no surviving definition are appended after the live groups,
// in access-list order, as deleted-but-still-selected groups.
//
// ManageGroupsURL and StaffLocked are left zero; the caller fills them
// from its own collaborators.
func Build(partitions []models.UserPartition, comp models.Component) visibility.ViewModel {
	var vm visibility.ViewModel

	for _, p := range partitions {
		if len(p.Groups) == 0 {
			continue
		}

		access := comp.GroupAccess[p.PartitionID]
		selected := make(map[string]bool, len(access))
		for _, id := range access {
			selected[id] = true
		}

		vp := visibility.Partition{ID: p.PartitionID, Name: p.Name}
		defined := make(map[string]bool, len(p.Groups))
		anySelected := false
		for _, g := range p.Groups {
			defined[g.GroupID] = true
			sel := selected[g.GroupID]
			anySelected = anySelected || sel
			vp.Groups = append(vp.Groups, visibility.Group{
				ID:       g.GroupID,
				Name:     g.Name,
				Selected: sel,
			})
		}
		// Stale references: selected ids whose definition is gone.
		// They stay visible so the author can clear them.
		for _, id := range access {
			if defined[id] {
				continue
			}
			anySelected = true
			vp.Groups = append(vp.Groups, visibility.Group{
				ID:       id,
				Selected: true,
				Deleted:  true,
			})
		}

		vm.UserPartitions = append(vm.UserPartitions, vp)

		switch p.Scheme {
		case models.SchemeCohort:
			vm.CohortPartitions = append(vm.CohortPartitions, vp)
			if anySelected {
				vm.HasSelectedGroups = true
			}
		case models.SchemeEnrollmentTrack:
			if anySelected && vm.SelectedVerifiedPartitionID == "" {
				vm.SelectedVerifiedPartitionID = p.PartitionID
			}
		}
	}

	return vm
}

// internal/domain/models/partition.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Partition schemes determine how learners are assigned to groups.
const (
	SchemeCohort          = "cohort"
	SchemeEnrollmentTrack = "enrollment_track"
)

// UserPartition is a named axis of audience segmentation within a course.
//
// Cohort-scheme partitions hold the author-managed content groups that the
// visibility panel renders as checkboxes. Other schemes (enrollment track)
// are counted when deciding whether any partitions are configured, but are
// not offered as checkboxes.
type UserPartition struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	CourseID string             `bson:"course_id" json:"course_id"`
	// PartitionID is the stable string id used in component group-access
	// maps and form field names. It never changes once assigned, even if
	// the partition is renamed.
	PartitionID string           `bson:"partition_id" json:"partition_id"`
	Name        string           `bson:"name" json:"name"`
	NameCI      string           `bson:"name_ci" json:"name_ci"`
	Scheme      string           `bson:"scheme" json:"scheme"`
	Groups      []PartitionGroup `bson:"groups" json:"groups"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PartitionGroup is one selectable audience segment within a partition.
// Order within UserPartition.Groups is authoring order and is preserved
// everywhere groups are displayed.
type PartitionGroup struct {
	GroupID string `bson:"group_id" json:"group_id"`
	Name    string `bson:"name" json:"name"`
}

// IsCohort reports whether this partition holds content groups.
func (p UserPartition) IsCohort() bool {
	return p.Scheme == SchemeCohort
}

// Group returns the group with the given id and whether it exists.
func (p UserPartition) Group(groupID string) (PartitionGroup, bool) {
	for _, g := range p.Groups {
		if g.GroupID == groupID {
			return g, true
		}
	}
	return PartitionGroup{}, false
}

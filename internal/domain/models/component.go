// internal/domain/models/component.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Component is a single authorable piece of course content (a unit, video,
// problem, etc.) positioned in the course tree via ParentID.
//
// GroupAccess maps a partition id to the group ids that may see this
// component. An empty or missing map means the component is visible to all
// students. Group ids are kept even after the group definition is removed
// from its partition so authors can see and clear stale restrictions.
type Component struct {
	ID          primitive.ObjectID  `bson:"_id" json:"id"`
	CourseID    string              `bson:"course_id" json:"course_id"`
	Locator     string              `bson:"locator" json:"locator"`
	DisplayName string              `bson:"display_name" json:"display_name"`
	Category    string              `bson:"category" json:"category"` // unit | video | problem | html | ...
	ParentID    *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`

	// VisibleToStaffOnly hides this component (and everything under it)
	// from students regardless of group access settings.
	VisibleToStaffOnly bool `bson:"visible_to_staff_only" json:"visible_to_staff_only"`

	GroupAccess map[string][]string `bson:"group_access,omitempty" json:"group_access,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasGroupAccess reports whether any group restriction is set.
func (c Component) HasGroupAccess() bool {
	for _, ids := range c.GroupAccess {
		if len(ids) > 0 {
			return true
		}
	}
	return false
}

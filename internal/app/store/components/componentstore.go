// internal/app/store/components/componentstore.go
package componentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/courseforge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("component not found")

// maxDepth bounds the ancestor walk. Course trees are shallow
// (course → section → subsection → unit → component); anything deeper
// indicates corrupt parent links.
const maxDepth = 32

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("components")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Component, error) {
	var c models.Component
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return models.Component{}, ErrNotFound
	}
	if err != nil {
		return models.Component{}, err
	}
	return c, nil
}

func (s *Store) GetByLocator(ctx context.Context, locator string) (models.Component, error) {
	var c models.Component
	err := s.c.FindOne(ctx, bson.M{"locator": locator}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return models.Component{}, ErrNotFound
	}
	if err != nil {
		return models.Component{}, err
	}
	return c, nil
}

func (s *Store) Create(ctx context.Context, c models.Component) (models.Component, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Component{}, err
	}
	return c, nil
}

// UpdateGroupAccess replaces the component's group-access map. An empty
// map clears all restrictions (visible to everyone).
func (s *Store) UpdateGroupAccess(ctx context.Context, id primitive.ObjectID, access map[string][]string) error {
	update := bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}}
	if len(access) == 0 {
		update["$unset"] = bson.M{"group_access": ""}
	} else {
		update["$set"].(bson.M)["group_access"] = access
	}
	res, err := s.c.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStaffLock sets or clears the staff-only flag on a component.
func (s *Store) SetStaffLock(ctx context.Context, id primitive.ObjectID, locked bool) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"visible_to_staff_only": locked,
		"updated_at":            time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AncestorHasStaffLock walks the parent chain and reports whether any
// ancestor hides its subtree from students. The component's own flag is
// not consulted; the visibility panel warns specifically about settings
// inherited from above.
func (s *Store) AncestorHasStaffLock(ctx context.Context, comp models.Component) (bool, error) {
	seen := map[primitive.ObjectID]bool{comp.ID: true}
	parent := comp.ParentID

	for depth := 0; parent != nil && depth < maxDepth; depth++ {
		if seen[*parent] {
			// Cycle in parent links; treat the walk as finished.
			return false, nil
		}
		seen[*parent] = true

		anc, err := s.GetByID(ctx, *parent)
		if err == ErrNotFound {
			// Dangling parent ref: nothing above to lock us.
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if anc.VisibleToStaffOnly {
			return true, nil
		}
		parent = anc.ParentID
	}

	return false, nil
}

// internal/app/store/partitions/partitionstore.go
package partitionstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/courseforge/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicatePartitionName = errors.New("a partition with this name already exists in the course")
	ErrDuplicateGroupName     = errors.New("a group with this name already exists in the partition")
	ErrNotFound               = errors.New("partition not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_partitions")}
}

// ListByCourse returns the course's partitions in creation order.
func (s *Store) ListByCourse(ctx context.Context, courseID string) ([]models.UserPartition, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var parts []models.UserPartition
	if err := cur.All(ctx, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// GetByPartitionID returns a single partition by its stable string id.
func (s *Store) GetByPartitionID(ctx context.Context, courseID, partitionID string) (models.UserPartition, error) {
	var p models.UserPartition
	err := s.c.FindOne(ctx, bson.M{"course_id": courseID, "partition_id": partitionID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.UserPartition{}, ErrNotFound
	}
	if err != nil {
		return models.UserPartition{}, err
	}
	return p, nil
}

func (s *Store) Create(ctx context.Context, p models.UserPartition) (models.UserPartition, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.NameCI = text.Fold(p.Name)
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, p)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.UserPartition{}, ErrDuplicatePartitionName
		}
		return models.UserPartition{}, err
	}
	return p, nil
}

// AddGroup appends a group to the partition. Group names are unique
// within a partition (case-insensitive compare is done here, not by an
// index, since groups are embedded).
func (s *Store) AddGroup(ctx context.Context, courseID, partitionID string, g models.PartitionGroup) error {
	p, err := s.GetByPartitionID(ctx, courseID, partitionID)
	if err != nil {
		return err
	}
	folded := text.Fold(g.Name)
	for _, existing := range p.Groups {
		if text.Fold(existing.Name) == folded {
			return ErrDuplicateGroupName
		}
	}

	_, err = s.c.UpdateOne(ctx,
		bson.M{"course_id": courseID, "partition_id": partitionID},
		bson.M{
			"$push": bson.M{"groups": g},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

// RemoveGroup deletes a group definition from the partition. Component
// group-access entries referencing it are left in place deliberately:
// they surface as "deleted group" selections in the visibility panel
// until an author clears them.
func (s *Store) RemoveGroup(ctx context.Context, courseID, partitionID, groupID string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"course_id": courseID, "partition_id": partitionID},
		bson.M{
			"$pull": bson.M{"groups": bson.M{"group_id": groupID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

package partitionstore_test

import (
	"testing"

	partitionstore "github.com/dalemusser/courseforge/internal/app/store/partitions"
	"github.com/dalemusser/courseforge/internal/domain/models"
	"github.com/dalemusser/courseforge/internal/testutil"
)

func TestStore_CreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := partitionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.UserPartition{
		CourseID:    "demo",
		PartitionID: "P1",
		Name:        "Content Groups",
		Scheme:      models.SchemeCohort,
		Groups:      []models.PartitionGroup{{GroupID: "g1", Name: "Group A"}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	parts, err := store.ListByCourse(ctx, "demo")
	if err != nil {
		t.Fatalf("ListByCourse failed: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 partition, got %d", len(parts))
	}
	if parts[0].Name != "Content Groups" || len(parts[0].Groups) != 1 {
		t.Errorf("unexpected partition: %+v", parts[0])
	}
}

func TestStore_AddGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := partitionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.UserPartition{
		CourseID:    "demo",
		PartitionID: "P1",
		Name:        "Content Groups",
		Scheme:      models.SchemeCohort,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.AddGroup(ctx, "demo", "P1", models.PartitionGroup{GroupID: "g1", Name: "Group A"}); err != nil {
		t.Fatalf("AddGroup failed: %v", err)
	}

	// Duplicate names are rejected case-insensitively.
	err = store.AddGroup(ctx, "demo", "P1", models.PartitionGroup{GroupID: "g2", Name: "group a"})
	if err != partitionstore.ErrDuplicateGroupName {
		t.Errorf("expected ErrDuplicateGroupName, got %v", err)
	}

	p, err := store.GetByPartitionID(ctx, "demo", "P1")
	if err != nil {
		t.Fatalf("GetByPartitionID failed: %v", err)
	}
	if len(p.Groups) != 1 {
		t.Errorf("expected 1 group, got %d", len(p.Groups))
	}
}

func TestStore_RemoveGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := partitionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.UserPartition{
		CourseID:    "demo",
		PartitionID: "P1",
		Name:        "Content Groups",
		Scheme:      models.SchemeCohort,
		Groups: []models.PartitionGroup{
			{GroupID: "g1", Name: "Group A"},
			{GroupID: "g2", Name: "Group B"},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.RemoveGroup(ctx, "demo", "P1", "g1"); err != nil {
		t.Fatalf("RemoveGroup failed: %v", err)
	}

	p, err := store.GetByPartitionID(ctx, "demo", "P1")
	if err != nil {
		t.Fatalf("GetByPartitionID failed: %v", err)
	}
	if len(p.Groups) != 1 || p.Groups[0].GroupID != "g2" {
		t.Errorf("expected only g2 to remain, got %+v", p.Groups)
	}
}

func TestStore_RemoveGroup_MissingPartition(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := partitionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.RemoveGroup(ctx, "demo", "nope", "g1")
	if err != partitionstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

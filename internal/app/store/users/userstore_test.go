package userstore_test

import (
	"testing"

	userstore "github.com/dalemusser/courseforge/internal/app/store/users"
	"github.com/dalemusser/courseforge/internal/domain/models"
	"github.com/dalemusser/courseforge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestGetByEmailCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fixtures.CreateUser(ctx, "Ada Author", "Ada@Example.com", "author")

	u, err := store.GetByEmail(ctx, "ada@example.COM")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.ID != created.ID {
		t.Errorf("got user %s, want %s", u.ID.Hex(), created.ID.Hex())
	}
	if u.Role != "author" {
		t.Errorf("role: got %q, want author", u.Role)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != userstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The schema hook normally creates this index; tests run against a
	// throwaway database, so create it here.
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email_ci", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		t.Fatalf("create index: %v", err)
	}

	first := models.User{FullName: "Ada Author", Email: "ada@example.com", Role: "author"}
	if _, err := store.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := models.User{FullName: "Other Ada", Email: "ADA@example.com", Role: "staff"}
	if _, err := store.Create(ctx, dup); err != userstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

package testutil

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/dalemusser/courseforge/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calls chain: an existing route context is extended, not replaced.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	if rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context); ok && rctx != nil {
		rctx.URLParams.Add(key, value)
		return r
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// TestContext returns a context with a timeout suitable for test DB calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// SetupTestDB connects to the test MongoDB instance and returns a
// throwaway database that is dropped when the test finishes. The test
// is skipped when no MongoDB is reachable, so the suite stays runnable
// without infrastructure.
//
// Override the instance with COURSEFORGE_TEST_MONGO_URI.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("COURSEFORGE_TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("mongo not available at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		t.Skipf("mongo not available at %s: %v", uri, err)
	}

	db := client.Database(fmt.Sprintf("courseforge_test_%s", primitive.NewObjectID().Hex()))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateCohortPartition creates a cohort-scheme partition with the given groups.
func (f *Fixtures) CreateCohortPartition(ctx context.Context, courseID, partitionID, name string, groups ...models.PartitionGroup) models.UserPartition {
	f.t.Helper()
	return f.createPartition(ctx, courseID, partitionID, name, models.SchemeCohort, groups)
}

// CreateEnrollmentTrackPartition creates an enrollment-track partition.
func (f *Fixtures) CreateEnrollmentTrackPartition(ctx context.Context, courseID, partitionID, name string, groups ...models.PartitionGroup) models.UserPartition {
	f.t.Helper()
	return f.createPartition(ctx, courseID, partitionID, name, models.SchemeEnrollmentTrack, groups)
}

func (f *Fixtures) createPartition(ctx context.Context, courseID, partitionID, name, scheme string, groups []models.PartitionGroup) models.UserPartition {
	now := time.Now().UTC()
	p := models.UserPartition{
		ID:          primitive.NewObjectID(),
		CourseID:    courseID,
		PartitionID: partitionID,
		Name:        name,
		NameCI:      text.Fold(name),
		Scheme:      scheme,
		Groups:      groups,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("user_partitions").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test partition: %v", err)
	}
	return p
}

// CreateComponent creates a component under the given parent (nil for roots).
func (f *Fixtures) CreateComponent(ctx context.Context, courseID, locator, category string, parentID *primitive.ObjectID) models.Component {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Component{
		ID:          primitive.NewObjectID(),
		CourseID:    courseID,
		Locator:     locator,
		DisplayName: locator,
		Category:    category,
		ParentID:    parentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("components").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test component: %v", err)
	}
	return c
}

// SetGroupAccess sets a component's group-access map directly.
func (f *Fixtures) SetGroupAccess(ctx context.Context, id primitive.ObjectID, access map[string][]string) {
	f.t.Helper()
	_, err := f.db.Collection("components").UpdateByID(ctx, id,
		map[string]interface{}{"$set": map[string]interface{}{"group_access": access}})
	if err != nil {
		f.t.Fatalf("failed to set group access: %v", err)
	}
}

// SetStaffLock flips a component's staff-only flag directly.
func (f *Fixtures) SetStaffLock(ctx context.Context, id primitive.ObjectID, locked bool) {
	f.t.Helper()
	_, err := f.db.Collection("components").UpdateByID(ctx, id,
		map[string]interface{}{"$set": map[string]interface{}{"visible_to_staff_only": locked}})
	if err != nil {
		f.t.Fatalf("failed to set staff lock: %v", err)
	}
}

// CreateUser creates a test user with the given parameters.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		EmailCI:    text.Fold(email),
		AuthMethod: "password",
		Role:       role,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

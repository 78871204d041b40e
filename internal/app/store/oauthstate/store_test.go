package oauthstate_test

import (
	"testing"
	"time"

	"github.com/dalemusser/courseforge/internal/app/store/oauthstate"
	"github.com/dalemusser/courseforge/internal/testutil"
)

func TestValidateConsumesState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "state-1", "/components/x/visibility", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ret, valid, err := store.Validate(ctx, "state-1")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !valid {
		t.Fatal("state should be valid")
	}
	if ret != "/components/x/visibility" {
		t.Errorf("return URL: got %q", ret)
	}

	// One-time use: a second validation must fail.
	_, valid, err = store.Validate(ctx, "state-1")
	if err != nil {
		t.Fatalf("Validate (second): %v", err)
	}
	if valid {
		t.Error("state must be consumed on first validation")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "state-old", "/", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, valid, err := store.Validate(ctx, "state-old")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if valid {
		t.Error("expired state must be rejected")
	}
}

func TestValidateUnknownState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, valid, err := store.Validate(ctx, "never-saved")
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if valid {
		t.Error("unknown state must be rejected")
	}
}

func TestCleanupExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := oauthstate.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Save(ctx, "fresh", "/", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "stale", "/", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	n, err := store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted: got %d, want 1", n)
	}

	if _, valid, _ := store.Validate(ctx, "fresh"); !valid {
		t.Error("fresh state should survive cleanup")
	}
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/isdelr/taskdeck-be/internal/database"
	"github.com/isdelr/taskdeck-be/internal/services"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate database: %v", err)
	}
	return db
}

func TestUserCreateAndLookup(t *testing.T) {
	store := NewUserStore(newTestDB(t))
	ctx := context.Background()

	user, err := store.Create(ctx, "alice@example.com", "hashed-password")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected a generated user id")
	}
	if user.Username != "alice@example.com" {
		t.Fatalf("unexpected username %q", user.Username)
	}

	byName, found, err := store.ByUsername(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("ByUsername error: %v", err)
	}
	if !found {
		t.Fatal("expected user to be found by username")
	}
	if byName.ID != user.ID {
		t.Fatalf("expected id %s, got %s", user.ID, byName.ID)
	}
	if byName.PasswordHash != "hashed-password" {
		t.Fatal("expected lookup to include the stored password hash")
	}

	byID, found, err := store.ByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("ByID error: %v", err)
	}
	if !found || byID.Username != "alice@example.com" {
		t.Fatalf("unexpected ByID result: found=%v user=%+v", found, byID)
	}
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	store := NewUserStore(newTestDB(t))
	ctx := context.Background()

	first, err := store.Create(ctx, "alice@example.com", "first-hash")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	_, err = store.Create(ctx, "alice@example.com", "second-hash")
	if !errors.Is(err, services.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	// The original record must be unaffected.
	got, found, err := store.ByUsername(ctx, "alice@example.com")
	if err != nil || !found {
		t.Fatalf("ByUsername after duplicate: found=%v err=%v", found, err)
	}
	if got.ID != first.ID || got.PasswordHash != "first-hash" {
		t.Fatalf("original record was mutated: %+v", got)
	}
}

func TestUserLookupAbsent(t *testing.T) {
	store := NewUserStore(newTestDB(t))
	ctx := context.Background()

	_, found, err := store.ByUsername(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("ByUsername error: %v", err)
	}
	if found {
		t.Fatal("expected absent user to report found=false")
	}
}

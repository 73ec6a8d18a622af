package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"typepet/internal/database"
)

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping SQLite-backed test in short mode")
	}

	db, err := database.Initialize(filepath.Join(t.TempDir(), "store_test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewSQLStore(db)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestSQLStoreRoundTrip(t *testing.T) {
	store := newTestSQLStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, CollectionPetStates, "default", []byte(`{"happiness_level":50}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, err := store.Get(ctx, CollectionPetStates, "default")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != `{"happiness_level":50}` {
		t.Errorf("Get = %s, want stored document", value)
	}

	// Put on an existing key replaces the document
	if err := store.Put(ctx, CollectionPetStates, "default", []byte(`{"happiness_level":60}`)); err != nil {
		t.Fatalf("Second put failed: %v", err)
	}
	value, err = store.Get(ctx, CollectionPetStates, "default")
	if err != nil {
		t.Fatalf("Get after replace failed: %v", err)
	}
	if string(value) != `{"happiness_level":60}` {
		t.Errorf("Get after replace = %s, want replaced document", value)
	}
}

func TestSQLStoreGetMissing(t *testing.T) {
	store := newTestSQLStore(t)

	_, err := store.Get(context.Background(), CollectionPetStates, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on missing key = %v, want ErrNotFound", err)
	}
}

func TestSQLStoreDeleteClearGetAll(t *testing.T) {
	store := newTestSQLStore(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := store.Put(ctx, CollectionAchievements, key, []byte(key)); err != nil {
			t.Fatalf("Put %s failed: %v", key, err)
		}
	}

	if err := store.Delete(ctx, CollectionAchievements, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	all, err := store.GetAll(ctx, CollectionAchievements)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("GetAll returned %d documents, want 2", len(all))
	}

	if err := store.Clear(ctx, CollectionAchievements); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	all, err = store.GetAll(ctx, CollectionAchievements)
	if err != nil {
		t.Fatalf("GetAll after clear failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("GetAll after clear returned %d documents, want 0", len(all))
	}
}

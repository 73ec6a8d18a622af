package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStoreWithClient(client)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, CollectionPetStates, "default", []byte(`{"name":"Keys"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, err := store.Get(ctx, CollectionPetStates, "default")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != `{"name":"Keys"}` {
		t.Errorf("Get = %s, want stored document", value)
	}
}

func TestRedisStoreGetMissing(t *testing.T) {
	store := newTestRedisStore(t)

	_, err := store.Get(context.Background(), CollectionPetStates, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on missing key = %v, want ErrNotFound", err)
	}
}

func TestRedisStoreDeleteAndClear(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	docs := map[string]string{"a": "1", "b": "2", "c": "3"}
	for key, value := range docs {
		if err := store.Put(ctx, CollectionAchievements, key, []byte(value)); err != nil {
			t.Fatalf("Put %s failed: %v", key, err)
		}
	}

	if err := store.Delete(ctx, CollectionAchievements, "b"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	all, err := store.GetAll(ctx, CollectionAchievements)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("GetAll after delete returned %d documents, want 2", len(all))
	}
	if _, ok := all["b"]; ok {
		t.Error("deleted document still present")
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

func TestRedisStoreCollectionsAreIsolated(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, CollectionPetStates, "default", []byte("pet")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, CollectionAchievements, "default", []byte("progress")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if err := store.Clear(ctx, CollectionPetStates); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	value, err := store.Get(ctx, CollectionAchievements, "default")
	if err != nil {
		t.Fatalf("Get after clearing other collection failed: %v", err)
	}
	if string(value) != "progress" {
		t.Errorf("Get = %s, want untouched document", value)
	}
}

package session

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"github.com/redis/go-redis/v9"
)

func pendingUpload(id string) domain.PendingUpload {
	return domain.PendingUpload{
		ID:       id,
		Filename: "staff.csv",
		Report: domain.Report{
			ValidCount: 1,
			TotalCount: 1,
			Errors:     []string{},
			Valid:      []domain.Record{{Name: "Jane", Email: "jane@x.com"}},
		},
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, pendingUpload("u1")); err != nil {
		t.Fatal(err)
	}
	got, err := store.Take(ctx, "u1")
	if err != nil {
		t.Fatalf("expected upload, got %v", err)
	}
	if len(got.Report.Valid) != 1 {
		t.Fatalf("unexpected upload: %+v", got)
	}
	if _, err := store.Take(ctx, "u1"); !errors.Is(err, domain.ErrUploadNotFound) {
		t.Fatalf("expected a taken upload to be gone, got %v", err)
	}

	if err := store.Save(ctx, pendingUpload("u2")); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "u2"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Take(ctx, "u2"); !errors.Is(err, domain.ErrUploadNotFound) {
		t.Fatalf("expected ErrUploadNotFound, got %v", err)
	}
}

func TestMemoryStoreTakeIsExclusive(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Minute)
	ctx := context.Background()
	if err := store.Save(ctx, pendingUpload("u1")); err != nil {
		t.Fatal(err)
	}

	var taken atomic.Int32
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Take(ctx, "u1"); err == nil {
				taken.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := taken.Load(); got != 1 {
		t.Fatalf("expected exactly one taker, got %d", got)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.Save(context.Background(), pendingUpload("u1")); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Minute)

	if _, err := store.Take(context.Background(), "u1"); !errors.Is(err, domain.ErrUploadNotFound) {
		t.Fatalf("expected expired upload to be gone, got %v", err)
	}
}

func TestRedisStoreIntegration(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, pendingUpload("it-u1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Take(ctx, "it-u1")
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if got.Report.Valid[0].Email != "jane@x.com" {
		t.Fatalf("unexpected upload: %+v", got)
	}
	if _, err := store.Take(ctx, "it-u1"); !errors.Is(err, domain.ErrUploadNotFound) {
		t.Fatalf("expected a taken upload to be gone, got %v", err)
	}

	if err := store.Save(ctx, pendingUpload("it-u2")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "it-u2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Take(ctx, "it-u2"); !errors.Is(err, domain.ErrUploadNotFound) {
		t.Fatalf("expected ErrUploadNotFound, got %v", err)
	}
}

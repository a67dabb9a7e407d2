package historyRepository

import (
	"CafeAnalyzer/database/sqlite"
	"CafeAnalyzer/internal/api/history"
	"CafeAnalyzer/internal/entity"
	"CafeAnalyzer/pkg/redis"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func sampleEntries() []entity.HistoryEntry {
	return []entity.HistoryEntry{
		entity.NewHistoryEntry(entity.AnalysisResult{
			Timestamp:   "2024-05-01T12:30:00.123456",
			TablesFound: 1,
			Tables: []entity.TableDetection{
				{ID: 1, BBox: entity.BoundingBox{10, 10, 50, 50}, Status: entity.TableOccupied, PersonCount: 2, Confidence: 0.8},
			},
			People:        []entity.PersonDetection{},
			OccupancyRate: 1,
			ImageSize:     entity.ImageSize{Width: 640, Height: 480},
		}, 1714566600123),
	}
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	repo := New(store, quietLogger())

	if _, err := repo.Load(ctx); !errors.Is(err, history.ErrHistoryNotFound) {
		t.Fatalf("Load() on empty store error = %v, want ErrHistoryNotFound", err)
	}

	want := sampleEntries()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != want[0].ID || got[0].Tables[0].PersonCount != 2 || got[0].ImageSize.Width != 640 {
		t.Errorf("Load() = %+v", got)
	}

	if err := store.Set(ctx, entity.HistoryStorageKey, "{not json"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := repo.Load(ctx); !errors.Is(err, history.ErrCorruptHistory) {
		t.Errorf("Load() of corrupt blob error = %v, want ErrCorruptHistory", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	db, err := sqlite.New(filepath.Join(t.TempDir(), "cafe.db"))
	if err != nil {
		t.Fatalf("sqlite.New() error = %v", err)
	}
	defer db.Close()

	store, err := NewSQLStore(context.Background(), db, quietLogger())
	if err != nil {
		t.Fatalf("NewSQLStore() error = %v", err)
	}
	exerciseStore(t, store)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set")
	}
	db, _ := strconv.Atoi(os.Getenv("REDIS_TEST_DB"))

	client := redis.New(quietLogger(), addr, os.Getenv("REDIS_PASSWORD"), db)
	defer client.Close()
	if err := client.Ping(context.Background()); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}

	store := NewRedisStore(client)
	ctx := context.Background()
	// Start from a clean key.
	_ = store.Set(ctx, entity.HistoryStorageKey, "[]")
	repo := New(store, quietLogger())
	if got, err := repo.Load(ctx); err != nil || len(got) != 0 {
		t.Fatalf("Load() = %v, %v", got, err)
	}
	if err := repo.Save(ctx, sampleEntries()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil || len(got) != 1 {
		t.Fatalf("Load() = %v, %v", got, err)
	}
}

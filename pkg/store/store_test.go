package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	snap := &Snapshot{
		ID:        uuid.NewString(),
		Path:      "config.mcl",
		Canonical: "{\nkey = value;\n}",
		CreatedAt: time.Now(),
	}
	if err := s.Save(ctx, snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Canonical != snap.Canonical || got.Path != snap.Path {
		t.Errorf("Get = %+v, want %+v", got, snap)
	}
}

func TestStore_Get_NotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.Get(context.Background(), uuid.NewString())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get = %v, want ErrNotFound", err)
	}
}

func TestStore_Save_RequiresID(t *testing.T) {
	s := testStore(t)

	err := s.Save(context.Background(), &Snapshot{Path: "x.mcl"})
	if err == nil {
		t.Error("Save without ID succeeded")
	}
}

func TestStore_ListAndLatest(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	var last string
	for i := 0; i < 3; i++ {
		last = uuid.NewString()
		err := s.Save(ctx, &Snapshot{
			ID:        last,
			Path:      "config.mcl",
			Canonical: "{}",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Save %d failed: %v", i, err)
		}
	}
	// A different path must not show up in the listing.
	if err := s.Save(ctx, &Snapshot{ID: uuid.NewString(), Path: "other.mcl", Canonical: "{}", CreatedAt: base}); err != nil {
		t.Fatal(err)
	}

	snaps, err := s.List(ctx, "config.mcl", 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("List returned %d snapshots, want 3", len(snaps))
	}
	if snaps[0].ID != last {
		t.Errorf("List[0] = %s, want newest %s", snaps[0].ID, last)
	}

	latest, err := s.Latest(ctx, "config.mcl")
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest.ID != last {
		t.Errorf("Latest = %s, want %s", latest.ID, last)
	}

	if _, err := s.Latest(ctx, "missing.mcl"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Latest on unknown path = %v, want ErrNotFound", err)
	}
}

func TestStore_Prune(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	old := &Snapshot{ID: uuid.NewString(), Path: "c.mcl", Canonical: "{}", CreatedAt: time.Now().Add(-48 * time.Hour)}
	fresh := &Snapshot{ID: uuid.NewString(), Path: "c.mcl", Canonical: "{}", CreatedAt: time.Now()}
	for _, snap := range []*Snapshot{old, fresh} {
		if err := s.Save(ctx, snap); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := s.Prune(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Prune deleted %d, want 1", deleted)
	}

	if _, err := s.Get(ctx, old.ID); !errors.Is(err, ErrNotFound) {
		t.Error("old snapshot survived pruning")
	}
	if _, err := s.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh snapshot pruned: %v", err)
	}
}

func TestStore_CloseTwice(t *testing.T) {
	s := testStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"mercator-hq/ganymede/pkg/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeDoc(t *testing.T, path, text string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{}, nil); err == nil {
		t.Error("empty path accepted")
	}
	if _, err := New(Config{Path: "x.mcl", RefreshSchedule: "not a cron spec"}, nil); err == nil {
		t.Error("invalid cron schedule accepted")
	}
}

func TestWatcher_InitialLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.mcl")
	writeDoc(t, path, "{ port = 8080; }")

	w, err := New(Config{Path: path, DebounceInterval: 10 * time.Millisecond}, discardLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapCh := make(chan *Snapshot, 1)
	go w.Watch(ctx, func(snap *Snapshot) error {
		select {
		case snapCh <- snap:
		default:
		}
		return nil
	})

	select {
	case snap := <-snapCh:
		if snap.ID == uuid.Nil {
			t.Error("snapshot ID is nil")
		}
		if _, ok := snap.Doc.DictGet("port"); !ok {
			t.Error("initial snapshot missing port key")
		}
		want := "{\nport = 8080;\n}"
		if snap.Text != want {
			t.Errorf("canonical text = %q, want %q", snap.Text, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("initial reload never delivered")
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}

func TestWatcher_ReloadOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.mcl")
	writeDoc(t, path, "{ port = 8080; }")

	w, err := New(Config{Path: path, DebounceInterval: 10 * time.Millisecond}, discardLogger())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var count atomic.Int64
	snapCh := make(chan *Snapshot, 8)
	go w.Watch(ctx, func(snap *Snapshot) error {
		count.Add(1)
		snapCh <- snap
		return nil
	})

	// Wait for the initial load before mutating the file.
	select {
	case <-snapCh:
	case <-time.After(5 * time.Second):
		t.Fatal("initial reload never delivered")
	}

	writeDoc(t, path, "{ port = 9090; }")

	select {
	case snap := <-snapCh:
		port, ok := snap.Doc.DictGet("port")
		if !ok {
			t.Fatal("port key missing after reload")
		}
		if text, _ := port.Text(); text != "9090" {
			t.Errorf("port after reload = %q, want 9090", text)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("change reload never delivered")
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
	if count.Load() < 2 {
		t.Errorf("reload count = %d, want at least 2", count.Load())
	}
}

func TestWatcher_PersistsSnapshots(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.mcl")
	writeDoc(t, path, "{ name = ganymede; }")

	st, err := store.Open(filepath.Join(dir, "snapshots.db"))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	defer st.Close()

	w, err := New(Config{Path: path, DebounceInterval: 10 * time.Millisecond}, discardLogger(), WithStore(st))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapCh := make(chan *Snapshot, 1)
	go w.Watch(ctx, func(snap *Snapshot) error {
		select {
		case snapCh <- snap:
		default:
		}
		return nil
	})

	var snap *Snapshot
	select {
	case snap = <-snapCh:
	case <-time.After(5 * time.Second):
		t.Fatal("initial reload never delivered")
	}

	stored, err := st.Get(ctx, snap.ID.String())
	if err != nil {
		t.Fatalf("snapshot not persisted: %v", err)
	}
	if stored.Canonical != snap.Text {
		t.Errorf("persisted canonical = %q, want %q", stored.Canonical, snap.Text)
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}

func TestWatcher_ShouldProcessEvent(t *testing.T) {
	w := &Watcher{config: Config{Path: "/etc/ganymede/config.mcl"}}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to watched file", fsnotify.Event{Name: "/etc/ganymede/config.mcl", Op: fsnotify.Write}, true},
		{"create of watched file", fsnotify.Event{Name: "/etc/ganymede/config.mcl", Op: fsnotify.Create}, true},
		{"chmod ignored", fsnotify.Event{Name: "/etc/ganymede/config.mcl", Op: fsnotify.Chmod}, false},
		{"sibling file ignored", fsnotify.Event{Name: "/etc/ganymede/other.mcl", Op: fsnotify.Write}, false},
		{"editor temp file ignored", fsnotify.Event{Name: "/etc/ganymede/.config.mcl.swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.shouldProcessEvent(tt.event); got != tt.want {
				t.Errorf("shouldProcessEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestDebouncer_CollapsesBurst(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int64
	for i := 0; i < 10; i++ {
		d.Trigger(func() { fired.Add(1) })
		time.Sleep(time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("callback fired %d times, want 1", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var fired atomic.Int64
	d.Trigger(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(150 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("callback fired %d times after Stop, want 0", got)
	}
}

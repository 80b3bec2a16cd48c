// Package store persists canonical document snapshots in SQLite.
//
// Every successful reload observed by the watcher can be recorded as a
// [Snapshot]: the canonical MCL text plus a UUID and timestamp. The history
// supports auditing configuration changes and rolling back to a known-good
// revision.
//
// # Basic Usage
//
//	st, err := store.Open("data/snapshots.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
//	err = st.Save(ctx, &store.Snapshot{
//	    ID:        uuid.NewString(),
//	    Path:      "config.mcl",
//	    Canonical: text,
//	    CreatedAt: time.Now(),
//	})
//
// The database runs in WAL mode with a single writer connection, matching
// SQLite's concurrency model.
package store

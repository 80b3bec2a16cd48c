package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("store: snapshot not found")

// Snapshot is one persisted canonical document revision.
type Snapshot struct {
	// ID is the snapshot identifier (a UUID string).
	ID string
	// Path is the source document path the snapshot was taken from.
	Path string
	// Canonical is the canonical MCL text of the document.
	Canonical string
	// CreatedAt is the time the snapshot was recorded.
	CreatedAt time.Time
}

// Store persists document snapshots in SQLite. It provides durable reload
// history for single-instance deployments and is safe for concurrent use.
//
// The database runs in write-ahead log (WAL) mode for better concurrent
// read performance.
type Store struct {
	db        *sql.DB
	dbPath    string
	closeOnce sync.Once

	// prepared statements
	saveStmt   *sql.Stmt
	getStmt    *sql.Stmt
	listStmt   *sql.Stmt
	latestStmt *sql.Stmt
	pruneStmt  *sql.Stmt
}

// Config configures the snapshot store.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// Open creates a snapshot store at dbPath with default settings.
func Open(dbPath string) (*Store, error) {
	return OpenWithConfig(Config{DBPath: dbPath})
}

// OpenWithConfig creates a snapshot store with custom configuration.
func OpenWithConfig(cfg Config) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{
		db:     db,
		dbPath: cfg.DBPath,
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id         TEXT PRIMARY KEY,
		path       TEXT NOT NULL,
		canonical  TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_path_created
		ON snapshots(path, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) prepareStatements() error {
	var err error

	s.saveStmt, err = s.db.Prepare(
		`INSERT INTO snapshots (id, path, canonical, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}

	s.getStmt, err = s.db.Prepare(
		`SELECT id, path, canonical, created_at FROM snapshots WHERE id = ?`)
	if err != nil {
		return err
	}

	s.listStmt, err = s.db.Prepare(
		`SELECT id, path, canonical, created_at FROM snapshots
		 WHERE path = ? ORDER BY created_at DESC LIMIT ?`)
	if err != nil {
		return err
	}

	s.latestStmt, err = s.db.Prepare(
		`SELECT id, path, canonical, created_at FROM snapshots
		 WHERE path = ? ORDER BY created_at DESC LIMIT 1`)
	if err != nil {
		return err
	}

	s.pruneStmt, err = s.db.Prepare(
		`DELETE FROM snapshots WHERE created_at < ?`)
	return err
}

// Save persists a snapshot.
func (s *Store) Save(ctx context.Context, snap *Snapshot) error {
	if snap.ID == "" {
		return fmt.Errorf("snapshot id cannot be empty")
	}
	_, err := s.saveStmt.ExecContext(ctx, snap.ID, snap.Path, snap.Canonical, snap.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snap.ID, err)
	}
	return nil
}

// Get retrieves a snapshot by ID. It returns ErrNotFound if no snapshot has
// that ID.
func (s *Store) Get(ctx context.Context, id string) (*Snapshot, error) {
	snap, err := scanSnapshot(s.getStmt.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return snap, err
}

// List returns up to limit snapshots for the given source path, newest
// first.
func (s *Store) List(ctx context.Context, path string, limit int) ([]*Snapshot, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.listStmt.QueryContext(ctx, path, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Path, &snap.Canonical, &snap.CreatedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, &snap)
	}
	return snaps, rows.Err()
}

// Latest returns the most recent snapshot for the given source path. It
// returns ErrNotFound if the path has no snapshots.
func (s *Store) Latest(ctx context.Context, path string) (*Snapshot, error) {
	snap, err := scanSnapshot(s.latestStmt.QueryRowContext(ctx, path))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return snap, err
}

// Prune deletes snapshots created before the cutoff and returns the number
// deleted.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.pruneStmt.ExecContext(ctx, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the prepared statements and the database handle. It is safe
// to call more than once.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{s.saveStmt, s.getStmt, s.listStmt, s.latestStmt, s.pruneStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		err = s.db.Close()
	})
	return err
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var snap Snapshot
	if err := row.Scan(&snap.ID, &snap.Path, &snap.Canonical, &snap.CreatedAt); err != nil {
		return nil, err
	}
	return &snap, nil
}

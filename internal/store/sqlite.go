package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/amishk599/remotefeed/internal/model"
)

// Retention is how long an announced job blocks re-announcement.
const Retention = 7 * 24 * time.Hour

// ErrLocked is returned when another process holds the database lock.
var ErrLocked = errors.New("database is locked by another process")

// SQLiteStore records announced jobs in a SQLite database for deduplication.
type SQLiteStore struct {
	db       *sql.DB
	now      func() time.Time
	lockPath string
	lock     *flock.Flock
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithClock overrides the time source used for retention and PostedAt.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) { s.now = now }
}

// WithLock takes an exclusive lock file next to the database so that only
// one publishing process works from the same history.
func WithLock() Option {
	return func(s *SQLiteStore) { s.lock = flock.New(s.lockPath) }
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// posted_jobs table exists.
func NewSQLiteStore(dbPath string, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{now: time.Now, lockPath: dbPath + ".lock"}
	for _, opt := range opts {
		opt(s)
	}

	if s.lock != nil {
		ok, err := s.lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquiring lock %s: %w", s.lockPath, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w", dbPath, ErrLocked)
		}
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", dbPath))
	if err != nil {
		s.unlock()
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		s.unlock()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS posted_jobs (
			fingerprint TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			company     TEXT NOT NULL,
			level       TEXT NOT NULL,
			url         TEXT NOT NULL,
			source      TEXT NOT NULL,
			posted_at   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_posted_jobs_posted_at ON posted_jobs (posted_at)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			s.unlock()
			return nil, fmt.Errorf("creating posted_jobs schema: %w", err)
		}
	}

	s.db = db
	return s, nil
}

// IsDuplicate purges expired records, then reports whether the job's
// fingerprint is already present. A new job is recorded before returning false.
func (s *SQLiteStore) IsDuplicate(ctx context.Context, job model.ClassifiedJob) (bool, error) {
	now := s.now()
	fp := Fingerprint(job.RawJob)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning dedup tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM posted_jobs WHERE posted_at < ?", now.Add(-Retention).Unix()); err != nil {
		return false, fmt.Errorf("purging expired records: %w", err)
	}

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM posted_jobs WHERE fingerprint = ?", fp).Scan(&exists)
	switch {
	case err == nil:
		return true, tx.Commit()
	case !errors.Is(err, sql.ErrNoRows):
		return false, fmt.Errorf("checking fingerprint %s: %w", fp, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO posted_jobs (fingerprint, title, company, level, url, source, posted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		fp, job.Title, job.Company, job.Level.String(), job.URL, job.Source, now.Unix())
	if err != nil {
		return false, fmt.Errorf("recording job %s: %w", fp, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing dedup tx: %w", err)
	}
	return false, nil
}

// Count returns the number of records inside the retention window.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM posted_jobs WHERE posted_at >= ?", s.cutoff()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting posted jobs: %w", err)
	}
	return n, nil
}

// Recent returns up to n records inside the retention window, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, n int) ([]model.PostedRecord, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT fingerprint, title, company, level, url, source, posted_at
		 FROM posted_jobs WHERE posted_at >= ?
		 ORDER BY posted_at DESC, rowid DESC LIMIT ?`, s.cutoff(), n)
	if err != nil {
		return nil, fmt.Errorf("querying recent jobs: %w", err)
	}
	defer rows.Close()

	var records []model.PostedRecord
	for rows.Next() {
		var (
			r        model.PostedRecord
			level    string
			postedAt int64
		)
		if err := rows.Scan(&r.Fingerprint, &r.Title, &r.Company, &level, &r.URL, &r.Source, &postedAt); err != nil {
			return nil, fmt.Errorf("scanning recent job: %w", err)
		}
		r.Level = model.ParseLevel(level)
		r.PostedAt = time.Unix(postedAt, 0)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent jobs: %w", err)
	}
	return records, nil
}

// Close closes the underlying database connection and releases the lock.
func (s *SQLiteStore) Close() error {
	err := s.db.Close()
	s.unlock()
	return err
}

func (s *SQLiteStore) cutoff() int64 {
	return s.now().Add(-Retention).Unix()
}

func (s *SQLiteStore) unlock() {
	if s.lock != nil {
		_ = s.lock.Unlock()
	}
}

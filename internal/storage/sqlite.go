package storage

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/martinsuchenak/camguard/pkg/model"
)

//go:embed schema.sql
var schema string

// timeLayout is fixed-width so that lexicographic ordering of the stored
// strings matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore implements HistoryStore with a SQLite database
type SQLiteStore struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

var _ HistoryStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the history database under
// dataDir
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "history.db")

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// SaveRun stores one completed detection run
func (s *SQLiteStore) SaveRun(run *model.DetectionRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	devices, err := json.Marshal(run.Devices)
	if err != nil {
		return fmt.Errorf("encoding device snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO detection_runs
			(id, verdict, device_count, real_count, virtual_count, devices, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		string(run.Verdict),
		run.DeviceCount,
		run.RealCount,
		run.VirtualCount,
		string(devices),
		run.StartedAt.UTC().Format(timeLayout),
		run.CompletedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("saving detection run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by id
func (s *SQLiteStore) GetRun(id string) (*model.DetectionRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, verdict, device_count, real_count, virtual_count, devices, started_at, completed_at
		FROM detection_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading detection run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first
func (s *SQLiteStore) ListRuns(limit int) ([]model.DetectionRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, verdict, device_count, real_count, virtual_count, devices, started_at, completed_at
		FROM detection_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing detection runs: %w", err)
	}
	defer rows.Close()

	runs := make([]model.DetectionRun, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning detection run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recent run
func (s *SQLiteStore) LatestRun() (*model.DetectionRun, error) {
	runs, err := s.ListRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[0], nil
}

// PruneRuns deletes runs started before the cutoff
func (s *SQLiteStore) PruneRuns(before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`DELETE FROM detection_runs WHERE started_at < ?`,
		before.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("pruning detection runs: %w", err)
	}
	return result.RowsAffected()
}

// Close releases the database
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*model.DetectionRun, error) {
	var run model.DetectionRun
	var verdict, devices, startedAt, completedAt string

	err := row.Scan(&run.ID, &verdict, &run.DeviceCount, &run.RealCount,
		&run.VirtualCount, &devices, &startedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	run.Verdict = model.Verdict(verdict)
	if err := json.Unmarshal([]byte(devices), &run.Devices); err != nil {
		return nil, fmt.Errorf("decoding device snapshot: %w", err)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if run.CompletedAt, err = time.Parse(time.RFC3339Nano, completedAt); err != nil {
		return nil, fmt.Errorf("parsing completed_at: %w", err)
	}
	return &run, nil
}

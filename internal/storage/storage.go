package storage

import (
	"errors"
	"time"

	"github.com/martinsuchenak/camguard/pkg/model"
)

// ErrRunNotFound is returned when a detection run does not exist
var ErrRunNotFound = errors.New("detection run not found")

// HistoryStore persists detection runs for auditing. Live detection never
// depends on stored state; the history is write-mostly.
type HistoryStore interface {
	// SaveRun stores one completed detection run
	SaveRun(run *model.DetectionRun) error

	// GetRun retrieves a run by id, ErrRunNotFound when absent
	GetRun(id string) (*model.DetectionRun, error)

	// ListRuns returns the most recent runs, newest first, at most limit
	ListRuns(limit int) ([]model.DetectionRun, error)

	// LatestRun returns the most recent run, ErrRunNotFound when the
	// history is empty
	LatestRun() (*model.DetectionRun, error)

	// PruneRuns deletes runs started before the cutoff and reports how
	// many were removed
	PruneRuns(before time.Time) (int64, error)

	// Close releases the underlying database
	Close() error
}

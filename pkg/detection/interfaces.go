package detection

import (
	"context"

	"github.com/martinsuchenak/camguard/pkg/model"
)

// Source enumerates camera-class devices from one OS subsystem.
// Multiple sources may report the same physical device; deduplication is
// deliberately not performed downstream.
type Source interface {
	// Name identifies the source, e.g. "wmi" or "v4l2"
	Name() string

	// Enumerate lists the camera-class devices currently visible to this
	// subsystem. A failing source returns an error and no devices; the
	// error is absorbed at the merge boundary and never reaches callers
	// of the detector.
	Enumerate(ctx context.Context) ([]model.CameraDevice, error)
}

// Detector is the externally consumed detection surface
type Detector interface {
	// EnumerateDevices merges the output of all sources into one ordered
	// inventory. It never fails; unavailable sources contribute nothing.
	EnumerateDevices(ctx context.Context) []model.CameraDevice

	// DetectCameras classifies the merged inventory and reduces it to one
	// verdict. Total: always returns a valid Verdict, never an error.
	DetectCameras(ctx context.Context) model.Verdict
}

// SourceFactory creates a Source instance
type SourceFactory func() (Source, error)

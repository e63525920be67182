// Package detector wires the device enumerator and the classifier into the
// detection surface consumed by the CLI, API and MCP layers.
package detector

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/martinsuchenak/camguard/internal/classify"
	"github.com/martinsuchenak/camguard/internal/enumerate"
	"github.com/martinsuchenak/camguard/internal/log"
	"github.com/martinsuchenak/camguard/pkg/detection"
	"github.com/martinsuchenak/camguard/pkg/model"
)

var _ detection.Detector = (*Detector)(nil)

// Detector runs the enumerate/classify/aggregate pipeline. Each call is one
// fresh pass; nothing is cached between runs.
type Detector struct {
	enumerator *enumerate.Enumerator
	classifier *classify.Classifier
}

// New creates a detector over the platform's sources and the given
// classifier. A nil classifier uses the default blacklist.
func New(enumerator *enumerate.Enumerator, classifier *classify.Classifier) *Detector {
	if enumerator == nil {
		enumerator = enumerate.NewEnumerator()
	}
	if classifier == nil {
		classifier = classify.NewClassifier(nil)
	}
	return &Detector{
		enumerator: enumerator,
		classifier: classifier,
	}
}

// Classifier returns the classifier used by this detector
func (d *Detector) Classifier() *classify.Classifier {
	return d.classifier
}

// EnumerateDevices merges all source output into one raw inventory.
// Never fails; unavailable sources contribute zero devices. The inventory
// may contain duplicate records for a device visible to several sources.
func (d *Detector) EnumerateDevices(ctx context.Context) []model.CameraDevice {
	return d.enumerator.Enumerate(ctx)
}

// ClassifyDevices enumerates and returns the per-device classifications,
// for diagnostics and display
func (d *Detector) ClassifyDevices(ctx context.Context) []model.Classification {
	devices := d.EnumerateDevices(ctx)
	results := make([]model.Classification, 0, len(devices))
	for _, device := range devices {
		results = append(results, d.classifier.Classify(device))
	}
	return results
}

// DetectCameras runs one detection pass and reduces it to a verdict.
// Total: always one of the three verdicts, never an error.
func (d *Detector) DetectCameras(ctx context.Context) model.Verdict {
	return d.classifier.Aggregate(d.EnumerateDevices(ctx))
}

// Run performs one detection pass captured as a history record
func (d *Detector) Run(ctx context.Context) *model.DetectionRun {
	run := &model.DetectionRun{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	devices := d.EnumerateDevices(ctx)
	for _, device := range devices {
		if d.classifier.IsVirtual(device) {
			run.VirtualCount++
		} else {
			run.RealCount++
		}
	}

	run.Devices = devices
	run.DeviceCount = len(devices)
	run.Verdict = d.classifier.Aggregate(devices)
	run.CompletedAt = time.Now().UTC()

	log.Debug("Detection run completed",
		"run_id", run.ID,
		"verdict", run.Verdict,
		"devices", run.DeviceCount,
		"virtual", run.VirtualCount)

	return run
}

// Package enumerate merges the output of platform-specific camera device
// sources into one inventory. Sources are registered per platform by
// build-tagged files; the merge concatenates their output in registration
// order and absorbs source failures.
package enumerate

import (
	"context"
	"sync"

	"github.com/martinsuchenak/camguard/internal/log"
	"github.com/martinsuchenak/camguard/pkg/detection"
	"github.com/martinsuchenak/camguard/pkg/model"
)

// Enumerator merges the device lists of its sources. The platform media
// subsystems behind the sources are process-wide and non-reentrant, so a
// single Enumerator serializes its enumeration passes; callers never run
// the initialize/enumerate/teardown sequence concurrently.
type Enumerator struct {
	mu      sync.Mutex
	sources []detection.Source
}

// NewEnumerator creates an enumerator over the platform's sources.
// Pass explicit sources for testing; with none given, the sources for the
// current OS are used.
func NewEnumerator(sources ...detection.Source) *Enumerator {
	if len(sources) == 0 {
		sources = platformSources()
	}
	return &Enumerator{sources: sources}
}

// Sources returns the names of the configured sources in merge order
func (e *Enumerator) Sources() []string {
	names := make([]string, 0, len(e.sources))
	for _, s := range e.sources {
		names = append(names, s.Name())
	}
	return names
}

// Enumerate runs every source once and concatenates the results in source
// order. It never fails: a source that errors contributes zero devices and
// is logged at warn level. No deduplication is performed, so two sources
// reporting the same physical device yield two records.
func (e *Enumerator) Enumerate(ctx context.Context) []model.CameraDevice {
	e.mu.Lock()
	defer e.mu.Unlock()

	var inventory []model.CameraDevice
	for _, source := range e.sources {
		devices, err := source.Enumerate(ctx)
		if err != nil {
			log.Warn("Camera source unavailable", "source", source.Name(), "error", err)
			continue
		}
		log.Debug("Camera source enumerated", "source", source.Name(), "devices", len(devices))
		for _, device := range devices {
			if device.Name == "" {
				device.Name = "Unknown Camera"
			}
			if device.Source == "" {
				device.Source = source.Name()
			}
			inventory = append(inventory, device)
		}
	}

	return inventory
}

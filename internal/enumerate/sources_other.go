//go:build !windows && !linux

package enumerate

import (
	"github.com/martinsuchenak/camguard/pkg/detection"
)

// platformSources returns no sources on unsupported platforms; detection
// degrades to a no-camera verdict rather than failing.
func platformSources() []detection.Source {
	return nil
}

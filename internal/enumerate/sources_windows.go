//go:build windows

package enumerate

import (
	"github.com/martinsuchenak/camguard/pkg/detection"
)

// platformSources returns the Windows camera sources. WMI and the DirectShow
// filter registry commonly report the same physical device; the merge keeps
// both records.
func platformSources() []detection.Source {
	return []detection.Source{
		&wmiSource{},
		&directShowSource{},
	}
}

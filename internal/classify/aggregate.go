package classify

import (
	"github.com/martinsuchenak/camguard/pkg/model"
)

// Aggregate reduces a device inventory to one verdict. A single real device
// wins over any number of virtual ones: a genuine webcam alongside an
// installed meeting tool still counts as a real camera. Total over any
// input, including an empty or nil inventory.
func (c *Classifier) Aggregate(devices []model.CameraDevice) model.Verdict {
	if len(devices) == 0 {
		return model.VerdictNoCamera
	}

	hasReal := false
	hasVirtual := false
	for _, device := range devices {
		if c.IsVirtual(device) {
			hasVirtual = true
		} else {
			hasReal = true
		}
	}

	switch {
	case hasReal:
		return model.VerdictRealCamera
	case hasVirtual:
		return model.VerdictVirtualCamera
	default:
		return model.VerdictNoCamera
	}
}

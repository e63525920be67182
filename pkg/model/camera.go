package model

import (
	"time"
)

// CameraDevice represents one camera-class capture device as reported by an
// enumeration source. Name is always populated; sources substitute
// "Unknown Camera" when the OS reports no friendly name. All other fields are
// optional and empty when the OS does not expose them. VendorID and ProductID
// are either both set or both empty.
type CameraDevice struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer,omitempty"`
	DevicePath   string `json:"device_path,omitempty"`
	Driver       string `json:"driver,omitempty"`
	VendorID     string `json:"vendor_id,omitempty"` // 4 lowercase hex chars when set
	ProductID    string `json:"product_id,omitempty"`
	ClassID      string `json:"class_id,omitempty"` // backend-specific class tag, e.g. a GUID
	Source       string `json:"source,omitempty"`   // name of the source that reported the device
}

// Verdict is the system-level detection outcome
type Verdict string

const (
	// VerdictRealCamera means at least one device classified as real hardware
	VerdictRealCamera Verdict = "real_camera"
	// VerdictVirtualCamera means devices exist but all classified as virtual
	VerdictVirtualCamera Verdict = "virtual_camera"
	// VerdictNoCamera means no camera-class devices were found
	VerdictNoCamera Verdict = "no_camera"
)

// Valid reports whether v is one of the three defined verdicts
func (v Verdict) Valid() bool {
	switch v {
	case VerdictRealCamera, VerdictVirtualCamera, VerdictNoCamera:
		return true
	}
	return false
}

func (v Verdict) String() string {
	return string(v)
}

// Classification is the per-device result of the virtuality check, including
// which rule layer matched for diagnostics
type Classification struct {
	Device  CameraDevice `json:"device"`
	Virtual bool         `json:"virtual"`
	Layer   string       `json:"layer,omitempty"`  // "name", "class_id" or "hardware_id"
	Matched string       `json:"needle,omitempty"` // the blacklist entry that matched
}

// DetectionRun records one complete detection pass
type DetectionRun struct {
	ID           string         `json:"id"`
	Verdict      Verdict        `json:"verdict"`
	DeviceCount  int            `json:"device_count"`
	RealCount    int            `json:"real_count"`
	VirtualCount int            `json:"virtual_count"`
	Devices      []CameraDevice `json:"devices,omitempty"`
	StartedAt    time.Time      `json:"started_at"`
	CompletedAt  time.Time      `json:"completed_at"`
}

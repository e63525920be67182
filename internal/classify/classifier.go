// Package classify decides whether enumerated camera devices are real
// hardware or software-emulated, and reduces per-device results to one
// system verdict. Classification is allow-by-default: a device is virtual
// only when a blacklist rule matches, so unknown virtual camera products
// pass as real rather than legitimate hardware being rejected.
package classify

import (
	"strings"

	"github.com/martinsuchenak/camguard/pkg/model"
)

// Rule layer names reported in Classification results, in evaluation order.
const (
	LayerName       = "name"
	LayerClassID    = "class_id"
	LayerHardwareID = "hardware_id"
)

// Classifier applies blacklist rules to individual devices
type Classifier struct {
	blacklist *Blacklist
}

// NewClassifier creates a classifier over the given blacklist, or the
// built-in defaults when bl is nil
func NewClassifier(bl *Blacklist) *Classifier {
	if bl == nil {
		bl = DefaultBlacklist()
	}
	return &Classifier{blacklist: bl}
}

// Blacklist returns the active rule tables
func (c *Classifier) Blacklist() *Blacklist {
	return c.blacklist
}

// IsVirtual reports whether the device matches any blacklist layer.
// Pure function of the device; calls are independent of each other.
func (c *Classifier) IsVirtual(device model.CameraDevice) bool {
	_, _, virtual := c.match(device)
	return virtual
}

// Classify evaluates the device and records which rule layer matched,
// for diagnostics and display
func (c *Classifier) Classify(device model.CameraDevice) model.Classification {
	layer, needle, virtual := c.match(device)
	return model.Classification{
		Device:  device,
		Virtual: virtual,
		Layer:   layer,
		Matched: needle,
	}
}

// match evaluates the rule layers in order and short-circuits on the first
// hit. Layer order only determines which rule is reported as responsible;
// it never changes the boolean outcome.
func (c *Classifier) match(device model.CameraDevice) (layer, needle string, virtual bool) {
	// Layer 1: substring match over the concatenated identity strings
	var sb strings.Builder
	sb.WriteString(strings.ToLower(device.Name))
	if device.Manufacturer != "" {
		sb.WriteString(strings.ToLower(device.Manufacturer))
	}
	if device.Driver != "" {
		sb.WriteString(strings.ToLower(device.Driver))
	}
	if device.DevicePath != "" {
		sb.WriteString(strings.ToLower(device.DevicePath))
	}
	haystack := sb.String()

	for _, needle := range c.blacklist.NameSubstrings {
		if strings.Contains(haystack, needle) {
			return LayerName, needle, true
		}
	}

	// Layer 2: class identifier containment, absence is not evidence
	if device.ClassID != "" {
		classID := strings.ToLower(device.ClassID)
		for _, needle := range c.blacklist.ClassIDSubstrings {
			if strings.Contains(classID, needle) {
				return LayerClassID, needle, true
			}
		}
	}

	// Layer 3: exact vendor/product pair match
	if device.VendorID != "" && device.ProductID != "" {
		vendorID := strings.ToLower(device.VendorID)
		productID := strings.ToLower(device.ProductID)
		for _, id := range c.blacklist.HardwareIDs {
			if id.VendorID == vendorID && id.ProductID == productID {
				return LayerHardwareID, id.VendorID + ":" + id.ProductID, true
			}
		}
	}

	return "", "", false
}

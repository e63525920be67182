package classify

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/martinsuchenak/camguard/internal/log"
)

// HardwareID is a USB vendor/product identifier pair. Matching against the
// blacklist is an exact pair comparison, never per-field.
type HardwareID struct {
	VendorID  string `json:"vendor_id"`
	ProductID string `json:"product_id"`
}

// Blacklist holds the rule tables used by the classifier. All entries are
// matched case-insensitively; Load and DefaultBlacklist normalize them to
// lowercase so the classifier only lowercases the device side.
type Blacklist struct {
	// NameSubstrings are matched by containment against the concatenated
	// name, manufacturer, driver and device path of a device
	NameSubstrings []string `json:"name_substrings"`

	// ClassIDSubstrings are matched by containment against the device's
	// class identifier
	ClassIDSubstrings []string `json:"class_id_substrings"`

	// HardwareIDs are matched exactly against the device's
	// vendor/product id pair
	HardwareIDs []HardwareID `json:"hardware_ids"`
}

// DefaultBlacklist returns the built-in tables of known virtual camera
// products, filter class identifiers and hardware identifier pairs.
func DefaultBlacklist() *Blacklist {
	return &Blacklist{
		NameSubstrings: []string{
			"virtual",
			"obs",
			"manycam",
			"snap camera",
			"xsplit",
			"mmhmm",
			"droidcam",
			"iriun",
			"contacam",
			"streamlabs",
			"camsip",
		},
		ClassIDSubstrings: []string{
			"{860bb310-5d01-11d0-bd3b-00a0c911ce86}", // VideoInputDeviceCategory
			"{e5323777-f976-4f5b-9b55-b94699c46e44}", // SampleGrabber, common host for virtual filters
		},
		HardwareIDs: []HardwareID{
			{VendorID: "0bda", ProductID: "58f4"}, // OBS Virtual Camera
			{VendorID: "0c45", ProductID: "6366"}, // ManyCam Virtual Webcam
			{VendorID: "2b7e", ProductID: "f13a"}, // Snap Camera
			{VendorID: "05a3", ProductID: "9331"}, // DroidCam
		},
	}
}

// LoadBlacklist reads a blacklist from a JSON file and normalizes it.
// Empty tables in the file stay empty; a host that wants to extend rather
// than replace the defaults merges before writing the file.
func LoadBlacklist(path string) (*Blacklist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blacklist file: %w", err)
	}

	var bl Blacklist
	if err := json.Unmarshal(data, &bl); err != nil {
		return nil, fmt.Errorf("parsing blacklist file: %w", err)
	}

	bl.normalize()
	return &bl, nil
}

// NewClassifierFromFile builds a classifier from an optional blacklist file
// path. An empty path selects the built-in defaults.
func NewClassifierFromFile(path string) (*Classifier, error) {
	if path == "" {
		return NewClassifier(nil), nil
	}

	bl, err := LoadBlacklist(path)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded blacklist file", "path", path,
		"name_rules", len(bl.NameSubstrings),
		"class_rules", len(bl.ClassIDSubstrings),
		"hardware_rules", len(bl.HardwareIDs))
	return NewClassifier(bl), nil
}

// normalize lowercases every entry so classification can compare without
// re-folding the rule side
func (b *Blacklist) normalize() {
	for i, s := range b.NameSubstrings {
		b.NameSubstrings[i] = strings.ToLower(s)
	}
	for i, s := range b.ClassIDSubstrings {
		b.ClassIDSubstrings[i] = strings.ToLower(s)
	}
	for i, id := range b.HardwareIDs {
		b.HardwareIDs[i] = HardwareID{
			VendorID:  strings.ToLower(id.VendorID),
			ProductID: strings.ToLower(id.ProductID),
		}
	}
}

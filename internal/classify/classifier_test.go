package classify

import (
	"testing"

	"github.com/martinsuchenak/camguard/pkg/model"
)

func TestIsVirtualNameLayer(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name    string
		device  model.CameraDevice
		virtual bool
	}{
		{
			name:    "OBS virtual camera",
			device:  model.CameraDevice{Name: "OBS Virtual Camera"},
			virtual: true,
		},
		{
			name:    "case insensitive",
			device:  model.CameraDevice{Name: "obs virtual camera"},
			virtual: true,
		},
		{
			name:    "substring containment mid-name",
			device:  model.CameraDevice{Name: "My ManyCam Device"},
			virtual: true,
		},
		{
			name:    "match via manufacturer",
			device:  model.CameraDevice{Name: "HD Camera", Manufacturer: "Streamlabs Inc"},
			virtual: true,
		},
		{
			name:    "match via driver",
			device:  model.CameraDevice{Name: "Capture Device", Driver: "droidcam"},
			virtual: true,
		},
		{
			name:    "match via device path",
			device:  model.CameraDevice{Name: "Camera", DevicePath: `root\xsplitbroadcaster\0000`},
			virtual: true,
		},
		{
			name:    "real hardware passes",
			device:  model.CameraDevice{Name: "Logitech BRIO", Manufacturer: "Logitech"},
			virtual: false,
		},
		{
			name:    "integrated webcam passes",
			device:  model.CameraDevice{Name: "Integrated Webcam", Driver: "usbvideo"},
			virtual: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsVirtual(tt.device); got != tt.virtual {
				t.Errorf("IsVirtual() = %v, want %v", got, tt.virtual)
			}
		})
	}
}

func TestIsVirtualClassIDLayer(t *testing.T) {
	c := NewClassifier(nil)

	virtual := model.CameraDevice{
		Name:    "Filter Device",
		ClassID: "{E5323777-F976-4F5B-9B55-B94699C46E44}",
	}
	if !c.IsVirtual(virtual) {
		t.Error("blacklisted class identifier should classify virtual")
	}

	real := model.CameraDevice{
		Name:    "USB Camera",
		ClassID: "{6bdd1fc6-810f-11d0-bec7-08002be2092f}",
	}
	if c.IsVirtual(real) {
		t.Error("unlisted class identifier should classify real")
	}

	// Absence of a class identifier is not evidence either way
	if c.IsVirtual(model.CameraDevice{Name: "USB Camera"}) {
		t.Error("device without class identifier should classify real")
	}
}

func TestIsVirtualHardwareLayer(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name    string
		device  model.CameraDevice
		virtual bool
	}{
		{
			name:    "known virtual pair",
			device:  model.CameraDevice{Name: "Camera", VendorID: "0bda", ProductID: "58f4"},
			virtual: true,
		},
		{
			name:    "uppercase ids still match",
			device:  model.CameraDevice{Name: "Camera", VendorID: "0BDA", ProductID: "58F4"},
			virtual: true,
		},
		{
			name:    "vendor matches but product does not",
			device:  model.CameraDevice{Name: "Camera", VendorID: "0bda", ProductID: "0000"},
			virtual: false,
		},
		{
			name:    "product matches but vendor does not",
			device:  model.CameraDevice{Name: "Camera", VendorID: "ffff", ProductID: "58f4"},
			virtual: false,
		},
		{
			name:    "vendor only is ignored",
			device:  model.CameraDevice{Name: "Camera", VendorID: "0bda"},
			virtual: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsVirtual(tt.device); got != tt.virtual {
				t.Errorf("IsVirtual() = %v, want %v", got, tt.virtual)
			}
		})
	}
}

func TestClassifyReportsResponsibleLayer(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name      string
		device    model.CameraDevice
		wantLayer string
	}{
		{
			name:      "name layer wins over hardware layer",
			device:    model.CameraDevice{Name: "OBS Virtual Camera", VendorID: "0bda", ProductID: "58f4"},
			wantLayer: LayerName,
		},
		{
			name:      "hardware layer reported when names are clean",
			device:    model.CameraDevice{Name: "USB Camera", VendorID: "2b7e", ProductID: "f13a"},
			wantLayer: LayerHardwareID,
		},
		{
			name:      "class id layer",
			device:    model.CameraDevice{Name: "Filter", ClassID: "{e5323777-f976-4f5b-9b55-b94699c46e44}"},
			wantLayer: LayerClassID,
		},
		{
			name:      "no layer for real device",
			device:    model.CameraDevice{Name: "Logitech BRIO"},
			wantLayer: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.device)
			if result.Layer != tt.wantLayer {
				t.Errorf("Classify() layer = %q, want %q", result.Layer, tt.wantLayer)
			}
			if result.Virtual != (tt.wantLayer != "") {
				t.Errorf("Classify() virtual = %v inconsistent with layer %q", result.Virtual, result.Layer)
			}
		})
	}
}

func TestCustomBlacklist(t *testing.T) {
	c := NewClassifier(&Blacklist{
		NameSubstrings: []string{"fakecam"},
		HardwareIDs:    []HardwareID{{VendorID: "dead", ProductID: "beef"}},
	})

	if !c.IsVirtual(model.CameraDevice{Name: "FakeCam Pro"}) {
		t.Error("custom name rule should match")
	}
	if !c.IsVirtual(model.CameraDevice{Name: "Camera", VendorID: "dead", ProductID: "beef"}) {
		t.Error("custom hardware rule should match")
	}
	// Default rules are replaced, not merged
	if c.IsVirtual(model.CameraDevice{Name: "OBS Virtual Camera"}) {
		t.Error("default rules should not apply with a custom blacklist")
	}
}

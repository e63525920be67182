//go:build linux

package enumerate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// buildSysfs lays out a minimal fake video4linux sysfs tree:
// a USB webcam on video0 and a platform device without USB ids on video1.
func buildSysfs(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	classDir := filepath.Join(root, "class", "video4linux")
	usbIface := filepath.Join(root, "devices", "usb1", "1-2", "1-2:1.0")
	platformDev := filepath.Join(root, "devices", "platform", "cam")

	for _, dir := range []string{
		filepath.Join(classDir, "video0"),
		filepath.Join(classDir, "video1"),
		usbIface,
		platformDev,
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	writeFile := func(path, content string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	writeFile(filepath.Join(classDir, "video0", "name"), "HD Pro Webcam C920\n")
	writeFile(filepath.Join(root, "devices", "usb1", "1-2", "idVendor"), "046D\n")
	writeFile(filepath.Join(root, "devices", "usb1", "1-2", "idProduct"), "082D\n")
	if err := os.Symlink(usbIface, filepath.Join(classDir, "video0", "device")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "drivers", "uvcvideo"), filepath.Join(usbIface, "driver")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	writeFile(filepath.Join(classDir, "video1", "name"), "Platform Camera\n")
	if err := os.Symlink(platformDev, filepath.Join(classDir, "video1", "device")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	return classDir
}

func TestV4L2SourceEnumerate(t *testing.T) {
	source := &v4l2Source{root: buildSysfs(t)}

	devices, err := source.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("devices = %d, want 2", len(devices))
	}

	usb := devices[0]
	if usb.Name != "HD Pro Webcam C920" {
		t.Errorf("name = %q", usb.Name)
	}
	if usb.DevicePath != "/dev/video0" {
		t.Errorf("device path = %q", usb.DevicePath)
	}
	if usb.Driver != "uvcvideo" {
		t.Errorf("driver = %q, want uvcvideo", usb.Driver)
	}
	if usb.VendorID != "046d" || usb.ProductID != "082d" {
		t.Errorf("ids = %q/%q, want lowercased 046d/082d", usb.VendorID, usb.ProductID)
	}

	platform := devices[1]
	if platform.Name != "Platform Camera" {
		t.Errorf("name = %q", platform.Name)
	}
	if platform.VendorID != "" || platform.ProductID != "" {
		t.Errorf("platform device should carry no USB ids, got %q/%q", platform.VendorID, platform.ProductID)
	}
}

func TestV4L2SourceMissingClassDir(t *testing.T) {
	source := &v4l2Source{root: filepath.Join(t.TempDir(), "does-not-exist")}

	devices, err := source.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("missing class dir should not be an error, got %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("devices = %d, want 0", len(devices))
	}
}

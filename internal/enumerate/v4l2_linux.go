//go:build linux

package enumerate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/martinsuchenak/camguard/internal/hwid"
	"github.com/martinsuchenak/camguard/pkg/detection"
	"github.com/martinsuchenak/camguard/pkg/model"
)

const sysfsVideoClass = "/sys/class/video4linux"

// platformSources returns the Linux camera sources
func platformSources() []detection.Source {
	return []detection.Source{newV4L2Source()}
}

// v4l2Source lists video4linux capture devices from sysfs. The class
// directory is read once per pass; no device node is ever opened.
type v4l2Source struct {
	root string // sysfs class directory, overridable for tests
}

func newV4L2Source() *v4l2Source {
	return &v4l2Source{root: sysfsVideoClass}
}

func (s *v4l2Source) Name() string {
	return "v4l2"
}

func (s *v4l2Source) Enumerate(_ context.Context) ([]model.CameraDevice, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			// No video4linux class registered: zero cameras, not a failure
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.root, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "video") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	devices := make([]model.CameraDevice, 0, len(names))
	for _, name := range names {
		devices = append(devices, s.readDevice(name))
	}

	return devices, nil
}

// readDevice assembles one record from the sysfs attributes of a video node.
// Every attribute is optional; unreadable files leave fields empty.
func (s *v4l2Source) readDevice(node string) model.CameraDevice {
	dir := s.root + "/" + node

	device := model.CameraDevice{
		Name:       readAttr(dir + "/name"),
		DevicePath: "/dev/" + node,
	}
	if device.Name == "" {
		device.Name = "Unknown Camera"
	}

	if target, err := os.Readlink(dir + "/device/driver"); err == nil {
		device.Driver = filepath.Base(target)
	}

	// For USB cameras the interface's parent device carries the USB ids.
	// The ".." must be resolved by the kernel through the device symlink,
	// so the path is built without filepath.Join's lexical cleaning.
	vendor := readAttr(dir + "/device/../idVendor")
	product := readAttr(dir + "/device/../idProduct")
	if vendor != "" && product != "" {
		device.VendorID = strings.ToLower(vendor)
		device.ProductID = strings.ToLower(product)
	} else {
		device.VendorID, device.ProductID = hwid.ParseDevicePath(device.DevicePath)
	}

	return device
}

func readAttr(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

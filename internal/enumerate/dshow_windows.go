//go:build windows

package enumerate

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/martinsuchenak/camguard/internal/hwid"
	"github.com/martinsuchenak/camguard/pkg/model"
)

// videoInputDeviceCategory is the DirectShow capture device category CLSID.
// Registered source filters, including every virtual camera that announces
// itself to DirectShow hosts, appear as instance subkeys under it.
const videoInputDeviceCategory = `CLSID\{860BB310-5D01-11D0-BD3B-00A0C911CE86}\Instance`

// directShowSource lists DirectShow video input filters from the registry.
// This covers virtual cameras that register a source filter without a PnP
// device node, which the WMI source cannot see.
type directShowSource struct{}

func (s *directShowSource) Name() string {
	return "directshow"
}

func (s *directShowSource) Enumerate(_ context.Context) ([]model.CameraDevice, error) {
	category, err := registry.OpenKey(registry.CLASSES_ROOT, videoInputDeviceCategory, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, fmt.Errorf("opening video input device category: %w", err)
	}
	defer category.Close()

	names, err := category.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("listing device instances: %w", err)
	}

	var devices []model.CameraDevice
	for _, name := range names {
		device, err := readInstance(name)
		if err != nil {
			continue
		}
		devices = append(devices, device)
	}

	return devices, nil
}

// readInstance reads one filter instance subkey. Missing values are left
// empty; only an unreadable key skips the instance.
func readInstance(subkey string) (model.CameraDevice, error) {
	key, err := registry.OpenKey(registry.CLASSES_ROOT, videoInputDeviceCategory+`\`+subkey, registry.QUERY_VALUE)
	if err != nil {
		return model.CameraDevice{}, err
	}
	defer key.Close()

	device := model.CameraDevice{
		Name:       stringValue(key, "FriendlyName", "Unknown Camera"),
		DevicePath: stringValue(key, "DevicePath", ""),
		ClassID:    stringValue(key, "CLSID", ""),
	}
	device.VendorID, device.ProductID = hwid.ParseDevicePath(device.DevicePath)
	return device, nil
}

func stringValue(key registry.Key, name, fallback string) string {
	value, _, err := key.GetStringValue(name)
	if err != nil || value == "" {
		return fallback
	}
	return value
}

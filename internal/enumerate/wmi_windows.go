//go:build windows

package enumerate

import (
	"context"
	"fmt"

	"github.com/yusufpapurcu/wmi"

	"github.com/martinsuchenak/camguard/internal/hwid"
	"github.com/martinsuchenak/camguard/pkg/model"
)

// win32PnPEntity mirrors the Win32_PnPEntity WMI class fields read by the
// query below. Nullable WMI properties map to pointers.
type win32PnPEntity struct {
	Name         *string
	Manufacturer *string
	PNPDeviceID  *string
	Service      *string
	ClassGuid    *string
}

const pnpCameraQuery = "SELECT Name, Manufacturer, PNPDeviceID, Service, ClassGuid " +
	"FROM Win32_PnPEntity WHERE PNPClass = 'Camera' OR PNPClass = 'Image'"

// wmiSource lists camera-class PnP devices via WMI. The wmi client performs
// its own COM initialize/teardown scoped to each query, so no process-wide
// state survives an enumeration pass.
type wmiSource struct{}

func (s *wmiSource) Name() string {
	return "wmi"
}

func (s *wmiSource) Enumerate(_ context.Context) ([]model.CameraDevice, error) {
	var entities []win32PnPEntity
	if err := wmi.Query(pnpCameraQuery, &entities); err != nil {
		return nil, fmt.Errorf("querying Win32_PnPEntity: %w", err)
	}

	devices := make([]model.CameraDevice, 0, len(entities))
	for _, entity := range entities {
		device := model.CameraDevice{
			Name:         stringOr(entity.Name, "Unknown Camera"),
			Manufacturer: stringOr(entity.Manufacturer, ""),
			DevicePath:   stringOr(entity.PNPDeviceID, ""),
			Driver:       stringOr(entity.Service, ""),
			ClassID:      stringOr(entity.ClassGuid, ""),
		}
		device.VendorID, device.ProductID = hwid.ParseDevicePath(device.DevicePath)
		devices = append(devices, device)
	}

	return devices, nil
}

func stringOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

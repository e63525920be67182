package hwid

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestParseDevicePath(t *testing.T) {
	tests := []struct {
		name       string
		devicePath string
		wantVendor string
		wantProd   string
	}{
		{
			name:       "typical USB instance path",
			devicePath: `USB\VID_046D&PID_085E\6&2ab2c89&0&3`,
			wantVendor: "046d",
			wantProd:   "085e",
		},
		{
			name:       "symbolic link with mixed case",
			devicePath: `\\?\usb#Vid_0BDA&Pid_58F4#5&123#{65e8773d-8f56-11d0-a3b9-00a0c9223196}`,
			wantVendor: "0bda",
			wantProd:   "58f4",
		},
		{
			name:       "empty path",
			devicePath: "",
			wantVendor: "",
			wantProd:   "",
		},
		{
			name:       "no identifiers present",
			devicePath: `ROOT\IMAGE\0000`,
			wantVendor: "",
			wantProd:   "",
		},
		{
			name:       "truncated product id is dropped not shortened",
			devicePath: `usb#vid_04f2&pid_b5`,
			wantVendor: "04f2",
			wantProd:   "",
		},
		{
			name:       "vendor only",
			devicePath: `usb#vid_1234#something`,
			wantVendor: "1234",
			wantProd:   "",
		},
		{
			name:       "product only",
			devicePath: `usb#pid_beef#something`,
			wantVendor: "",
			wantProd:   "beef",
		},
		{
			name:       "non-hex characters are captured verbatim",
			devicePath: `usb#vid_zzzz&pid_wxyz`,
			wantVendor: "zzzz",
			wantProd:   "wxyz",
		},
		{
			name:       "token at the very end of the path",
			devicePath: `something#vid_`,
			wantVendor: "",
			wantProd:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vendor, product := ParseDevicePath(tt.devicePath)
			if vendor != tt.wantVendor {
				t.Errorf("vendor = %q, want %q", vendor, tt.wantVendor)
			}
			if product != tt.wantProd {
				t.Errorf("product = %q, want %q", product, tt.wantProd)
			}
		})
	}
}

// Extracted identifiers are always lowercase, exactly four characters, and
// match the text following the token in the lowercased path.
func TestParseDevicePathProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		path := rapid.String().Draw(t, "path")
		vendor, product := ParseDevicePath(path)

		for _, id := range []string{vendor, product} {
			if id == "" {
				continue
			}
			if len(id) != 4 {
				t.Fatalf("identifier %q has length %d, want 4", id, len(id))
			}
			if id != strings.ToLower(id) {
				t.Fatalf("identifier %q is not lowercase", id)
			}
		}

		lower := strings.ToLower(path)
		if idx := strings.Index(lower, "vid_"); idx >= 0 && idx+8 <= len(lower) {
			if want := lower[idx+4 : idx+8]; vendor != want {
				t.Fatalf("vendor = %q, want %q from path %q", vendor, want, path)
			}
		}
	})
}

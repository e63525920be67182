// Package hwid extracts USB vendor/product identifiers from OS device path
// strings such as Windows PnP instance paths
// (`USB\VID_046D&PID_085E\...`) or symbolic links.
package hwid

import (
	"strings"
)

const idLength = 4

// ParseDevicePath pulls the vendor and product identifiers out of a device
// path. Either value is empty when its token is missing or followed by fewer
// than four characters. The two extractions are independent, and the captured
// characters are taken verbatim without hex validation.
func ParseDevicePath(devicePath string) (vendorID, productID string) {
	if devicePath == "" {
		return "", ""
	}

	lower := strings.ToLower(devicePath)
	vendorID = extractSegment(lower, "vid_")
	productID = extractSegment(lower, "pid_")
	return vendorID, productID
}

// extractSegment returns the idLength characters following the first
// occurrence of token, or "" if the token is absent or the remainder is
// too short.
func extractSegment(source, token string) string {
	idx := strings.Index(source, token)
	if idx < 0 {
		return ""
	}

	start := idx + len(token)
	if start+idLength > len(source) {
		return ""
	}

	return source[start : start+idLength]
}

// Package metadata derives client context from a submission: device,
// browser, and OS from the User-Agent string, plus phone number
// validation and normalization.
package metadata

import (
	"regexp"
	"strings"

	"github.com/mssola/useragent"
)

// DeviceType buckets a client into the coarse categories the dashboard
// segments on.
type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceDesktop DeviceType = "desktop"
	DeviceUnknown DeviceType = "unknown"
)

// ClientInfo is what the submission record stores about the client.
type ClientInfo struct {
	DeviceType DeviceType
	Browser    string
	OS         string
}

var tabletPattern = regexp.MustCompile(`(?i)tablet|ipad|playbook|silk`)

// ParseUserAgent classifies a raw User-Agent string. An empty string
// yields unknown/Unknown rather than an error.
func ParseUserAgent(raw string) ClientInfo {
	if strings.TrimSpace(raw) == "" {
		return ClientInfo{DeviceType: DeviceUnknown, Browser: "Unknown", OS: "Unknown"}
	}

	ua := useragent.New(raw)

	device := DeviceDesktop
	if tabletPattern.MatchString(raw) {
		device = DeviceTablet
	} else if ua.Mobile() {
		device = DeviceMobile
	}

	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown"
	}

	return ClientInfo{
		DeviceType: device,
		Browser:    browser,
		OS:         normalizeOS(ua, raw),
	}
}

// normalizeOS collapses the parser's OS names into the handful of labels
// the dashboard groups by.
func normalizeOS(ua *useragent.UserAgent, raw string) string {
	name := ua.OSInfo().Name
	switch {
	case strings.Contains(name, "Windows"):
		return "Windows"
	// iPad and iPhone agents mention "like Mac OS X", so check them
	// before the macOS bucket.
	case strings.Contains(name, "iPhone"), strings.Contains(name, "iOS"),
		strings.Contains(raw, "iPhone"), strings.Contains(raw, "iPad"):
		return "iOS"
	case strings.Contains(name, "Mac"):
		return "macOS"
	case strings.Contains(name, "Android"):
		return "Android"
	case strings.Contains(name, "Linux"):
		return "Linux"
	}
	if name != "" {
		return name
	}
	return "Unknown"
}

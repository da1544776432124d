package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent(t *testing.T) {
	t.Run("empty string is unknown", func(t *testing.T) {
		info := ParseUserAgent("")
		assert.Equal(t, DeviceUnknown, info.DeviceType)
		assert.Equal(t, "Unknown", info.Browser)
		assert.Equal(t, "Unknown", info.OS)
	})

	t.Run("chrome on windows desktop", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		assert.Equal(t, DeviceDesktop, info.DeviceType)
		assert.Equal(t, "Chrome", info.Browser)
		assert.Equal(t, "Windows", info.OS)
	})

	t.Run("safari on iphone is mobile", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
		assert.Equal(t, DeviceMobile, info.DeviceType)
		assert.Equal(t, "Safari", info.Browser)
		assert.Equal(t, "iOS", info.OS)
	})

	t.Run("ipad is tablet", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1")
		assert.Equal(t, DeviceTablet, info.DeviceType)
		assert.Equal(t, "iOS", info.OS)
	})

	t.Run("firefox on linux", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0")
		assert.Equal(t, DeviceDesktop, info.DeviceType)
		assert.Equal(t, "Firefox", info.Browser)
		assert.Equal(t, "Linux", info.OS)
	})

	t.Run("android phone is mobile", func(t *testing.T) {
		info := ParseUserAgent("Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36")
		assert.Equal(t, DeviceMobile, info.DeviceType)
		assert.Equal(t, "Android", info.OS)
	})
}

func TestValidPhone(t *testing.T) {
	valid := []string{
		"+2348012345678",
		"08012345678",
		"0701 234 5678",
		"+234 902 345 6789",
	}
	for _, p := range valid {
		assert.True(t, ValidPhone(p), "expected %q to be valid", p)
	}

	invalid := []string{
		"",
		"12345",
		"+2346012345678", // bad prefix digit
		"0801234567",     // too short
		"080123456789",   // too long
		"+4478012345678", // wrong country
	}
	for _, p := range invalid {
		assert.False(t, ValidPhone(p), "expected %q to be invalid", p)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+2348012345678", NormalizePhone("08012345678"))
	assert.Equal(t, "+2348012345678", NormalizePhone("0801 234 5678"))
	assert.Equal(t, "+2348012345678", NormalizePhone("+2348012345678"))

	t.Run("same subscriber in both formats compares equal", func(t *testing.T) {
		assert.Equal(t, NormalizePhone("08012345678"), NormalizePhone("+234 801 234 5678"))
	})
}

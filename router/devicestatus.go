package router

import (
	"fmt"
	"regexp"
	"strings"
)

// Field positions inside the devStatusDataOnlyInfo array, reverse-engineered
// from the web UI's JavaScript. The vendor documents none of this.
const (
	devFieldSMS        = 0
	devFieldWAN        = 2
	devFieldBattery    = 3
	devFieldSDCard     = 4
	devFieldWiFi       = 5
	devFieldSignal     = 7
	devFieldBatteryPct = 9

	devFieldCount = devFieldBatteryPct + 1
)

// Battery codes in the devFieldBattery slot. Any other code means the
// battery is discharging and devFieldBatteryPct holds the charge level.
const (
	devBatteryCharging = "5"
	devBatteryAbsent   = "6"
)

var devStatusRe = regexp.MustCompile(`var devStatusDataOnlyInfo = new Array\(([0-9\s,]*)\);`)

// DecodeDeviceStatus decodes the device status page body into a
// DeviceStatus. It is a pure function of the body text.
func DecodeDeviceStatus(body []byte) (*DeviceStatus, error) {
	fields, err := extractArray(devStatusRe, body, devFieldCount)
	if err != nil {
		return nil, err
	}

	return &DeviceStatus{
		Battery: decodeBattery(fields),
		SDCard:  fields[devFieldSDCard],
		Signal:  fields[devFieldSignal] + "%",
		WAN:     decodeWANFlag(fields[devFieldWAN]),
		// Unread flag only; full message info lives in devSmsFullInfo.
		SMS: decodeSMS(fields[devFieldSMS]),
		// Firmware quirk: always reports connected.
		WiFi: fields[devFieldWiFi],
	}, nil
}

func decodeBattery(fields []string) string {
	switch fields[devFieldBattery] {
	case devBatteryCharging:
		return "charging"
	case devBatteryAbsent:
		return "no battery"
	default:
		return fields[devFieldBatteryPct] + "%"
	}
}

func decodeWANFlag(v string) string {
	if v == wanCodeConnected {
		return "0"
	}
	return "1"
}

func decodeSMS(v string) string {
	if v == "0" {
		return "none"
	}
	return "unread"
}

// extractArray locates a JavaScript array literal with re, strips all
// whitespace from the match and splits it into comma-separated tokens,
// requiring at least min of them.
func extractArray(re *regexp.Regexp, body []byte, min int) ([]string, error) {
	m := re.FindSubmatch(body)
	if m == nil {
		return nil, &ParseError{Reason: "cannot parse page output"}
	}
	raw := strings.Join(strings.Fields(string(m[1])), "")
	fields := strings.Split(raw, ",")
	if len(fields) < min {
		return nil, &ParseError{Reason: fmt.Sprintf("expected at least %d fields, got %d", min, len(fields))}
	}
	return fields, nil
}

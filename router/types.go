// Package router provides a client for the embedded web management
// interface of the TP-Link M5250 mobile 3G router.
//
// The device exposes no API. Telemetry lives in JavaScript array literals
// embedded in the HTML pages served by its web UI; field meanings are
// positional and reverse-engineered. This package authenticates against the
// UI's session mechanism, fetches the status pages and decodes those arrays
// into status records.
package router

// DeviceStatus is a point-in-time snapshot decoded from the device status
// page (userRpm/deviceStatus.htm). It is never cached; every fetch produces
// a fresh record.
type DeviceStatus struct {
	// Battery is "charging", "no battery", or a charge percentage such
	// as "87%".
	Battery string

	// SDCard is the raw SD-card presence indicator.
	SDCard string

	// Signal is the cellular signal strength percentage, e.g. "64%".
	Signal string

	// WAN is "0" when the WAN link is up, "1" otherwise.
	WAN string

	// SMS is "none" or "unread".
	SMS string

	// WiFi is the raw WiFi indicator. The firmware reports the WiFi link
	// as connected regardless of actual state; the value is passed
	// through unchanged.
	WiFi string
}

// LinkStatus is a point-in-time snapshot decoded from the link status page
// (userRpm/linkStatus.htm).
type LinkStatus struct {
	// SSID is the access point name with surrounding quotes stripped.
	SSID string

	// Clients is the number of associated WiFi clients.
	Clients string

	// Channel is "auto" or a channel number.
	Channel string

	// Security is "none" or "wpa12psk"; the UI distinguishes no other
	// schemes.
	Security string

	// Link is one of the Link* constants.
	Link string

	// Network is one of the Network* constants.
	Network string

	// SIM is one of the SIM* constants.
	SIM string

	// Byte counters and durations as reported by the firmware, without
	// unit conversion. Durations are in seconds.
	RX            string
	TX            string
	TotalData     string
	DurationSec   string
	TotalDuration string

	// Dotted-decimal addresses decoded from the firmware's little-endian
	// integer representation.
	IP   string
	DNS1 string
	DNS2 string
}

// WAN link states reported in LinkStatus.Link.
const (
	LinkConnected     = "connected"
	LinkConnecting    = "connecting"
	LinkDisconnecting = "disconnecting"
	LinkDisconnected  = "disconnected"
)

// WAN network types reported in LinkStatus.Network.
const (
	NetworkNoService   = "no service"
	NetworkUMTS        = "UMTS"
	NetworkUMTSRoaming = "UMTS Roaming"
)

// SIM card states reported in LinkStatus.SIM.
const (
	SIMInvalid     = "invalid"
	SIMReady       = "ready"
	SIMPinRequired = "pin required"
	SIMPukRequired = "puk required"
	SIMPinVerified = "pin verified"
	SIMUnknown     = "unknown"
)

package router

import (
	"regexp"
	"strconv"
	"strings"
)

// Field positions inside the wwanStatusInfo array. An earlier firmware
// generation transmitted the byte counters at indices 4/6/9/11 instead;
// that layout is not supported.
const (
	wanFieldSIM       = 0
	wanFieldLink      = 2
	wanFieldNetwork   = 3
	wanFieldDuration  = 8
	wanFieldTotalDur  = 13
	wanFieldIP        = 14
	wanFieldDNS1      = 15
	wanFieldDNS2      = 16
	wanFieldTotalData = 18
	wanFieldRX        = 19
	wanFieldTX        = 20

	wanFieldCount = wanFieldTX + 1
)

// Field positions inside the wifiStatusInfo array.
const (
	wifiFieldClients  = 0
	wifiFieldChannel  = 1
	wifiFieldSecurity = 2
	wifiFieldSSID     = 3

	wifiFieldCount = wifiFieldSSID + 1
)

// Link state codes in the wanFieldLink slot. Unknown codes decode as
// disconnected.
const (
	wanCodeConnected     = "32"
	wanCodeConnecting    = "4"
	wanCodeDisconnecting = "0x40"
)

var (
	wwanStatusRe = regexp.MustCompile(`var wwanStatusInfo = new Array\(([0-9\s,.A-Z"]*)\);`)
	wifiStatusRe = regexp.MustCompile(`var wifiStatusInfo = new Array\(([0-9a-zA-Z",\s_\-]*)\);`)
)

// DecodeLinkStatus decodes the link status page body into a LinkStatus.
// It is a pure function of the body text.
func DecodeLinkStatus(body []byte) (*LinkStatus, error) {
	wan, err := extractArray(wwanStatusRe, body, wanFieldCount)
	if err != nil {
		return nil, err
	}
	wifi, err := extractArray(wifiStatusRe, body, wifiFieldCount)
	if err != nil {
		return nil, err
	}

	ip, err := littleEndianIP(wan[wanFieldIP])
	if err != nil {
		return nil, err
	}
	dns1, err := littleEndianIP(wan[wanFieldDNS1])
	if err != nil {
		return nil, err
	}
	dns2, err := littleEndianIP(wan[wanFieldDNS2])
	if err != nil {
		return nil, err
	}

	return &LinkStatus{
		SSID:     strings.Trim(wifi[wifiFieldSSID], `"`),
		Clients:  wifi[wifiFieldClients],
		Channel:  decodeChannel(wifi[wifiFieldChannel]),
		Security: decodeSecurity(wifi[wifiFieldSecurity]),

		Link:    decodeLinkState(wan[wanFieldLink]),
		Network: decodeNetwork(wan),
		SIM:     decodeSIM(wan[wanFieldSIM]),

		RX:            wan[wanFieldRX],
		TX:            wan[wanFieldTX],
		TotalData:     wan[wanFieldTotalData],
		DurationSec:   wan[wanFieldDuration],
		TotalDuration: wan[wanFieldTotalDur],

		IP:   ip,
		DNS1: dns1,
		DNS2: dns2,
	}, nil
}

func decodeChannel(v string) string {
	if v == "0" {
		return "auto"
	}
	return v
}

func decodeSecurity(v string) string {
	if v == "0" {
		return "none"
	}
	return "wpa12psk"
}

func decodeLinkState(v string) string {
	switch v {
	case wanCodeConnected:
		return LinkConnected
	case wanCodeConnecting:
		return LinkConnecting
	case wanCodeDisconnecting:
		return LinkDisconnecting
	default:
		return LinkDisconnected
	}
}

func decodeNetwork(wan []string) string {
	if wan[wanFieldSIM] == "0" {
		return NetworkNoService
	}
	switch wan[wanFieldNetwork] {
	case "5":
		return NetworkUMTS
	case "3":
		return NetworkUMTSRoaming
	default:
		return NetworkNoService
	}
}

func decodeSIM(v string) string {
	switch v {
	case "0":
		return SIMInvalid
	case "1":
		return SIMReady
	case "2":
		return SIMPinRequired
	case "3":
		return SIMPukRequired
	case "4":
		return SIMPinVerified
	default:
		return SIMUnknown
	}
}

// littleEndianIP converts the decimal little-endian 32-bit integer the
// firmware uses for addresses into dotted-decimal form.
func littleEndianIP(v string) (string, error) {
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return "", &ParseError{Reason: "bad address field " + strconv.Quote(v)}
	}
	octets := []string{
		strconv.FormatUint(n&0xff, 10),
		strconv.FormatUint((n>>8)&0xff, 10),
		strconv.FormatUint((n>>16)&0xff, 10),
		strconv.FormatUint((n>>24)&0xff, 10),
	}
	return strings.Join(octets, "."), nil
}

package router

import (
	"encoding/base64"
	"fmt"
	"regexp"
)

// sentinelSessionID is what the firmware embeds when no login happened.
const sentinelSessionID = "0"

var sessionIDRe = regexp.MustCompile(`var session_id = "(\d+)"`)

// Session holds the state of one authenticated web UI session: the
// server-issued session identifier and the Cookie header value the firmware
// expects on every request. The zero value is unauthenticated.
//
// The firmware has no renewal protocol. If the device invalidates the
// session server-side, subsequent fetches fail and the caller constructs a
// new client; nothing here detects invalidation proactively.
type Session struct {
	ID     string
	Cookie string
}

// Authenticated reports whether the session holds a usable identifier.
func (s Session) Authenticated() bool {
	return s.ID != "" && s.ID != sentinelSessionID
}

// loginCookie builds the Cookie header the firmware checks on login. The
// subType and TPLoginTimes fields are required verbatim; without them the
// device serves the page with session_id "0".
func loginCookie(login, password string) string {
	credentials := base64.StdEncoding.EncodeToString([]byte(login + ":" + password))
	return fmt.Sprintf("Authorization=Basic%%20%s; subType=pcSub; TPLoginTimes=1", credentials)
}

// extractSessionID scans a served page for the session identifier the
// firmware assigns to the login.
func extractSessionID(body []byte) (string, error) {
	m := sessionIDRe.FindSubmatch(body)
	if m == nil {
		return "", &AuthError{Reason: "authorization failed"}
	}
	id := string(m[1])
	if id == sentinelSessionID {
		return "", &AuthError{Reason: "authorization failed"}
	}
	return id, nil
}

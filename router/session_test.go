package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const loginPage = `<html><head><script language="javascript">
var session_id = "4821";
</script></head><body></body></html>`

func TestNewClient_Authenticates(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		w.Write([]byte(loginPage))
	}))
	defer srv.Close()

	c, err := NewClientWithHTTP(ClientConfig{URL: srv.URL, Login: "admin", Password: "admin"}, srv.Client())
	if err != nil {
		t.Fatalf("NewClientWithHTTP() error = %v", err)
	}

	if got := c.Session().ID; got != "4821" {
		t.Errorf("session ID = %q, want %q", got, "4821")
	}
	want := "Authorization=Basic%20YWRtaW46YWRtaW4=; subType=pcSub; TPLoginTimes=1"
	if gotCookie != want {
		t.Errorf("Cookie = %q, want %q", gotCookie, want)
	}
}

func TestNewClient_SentinelSessionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`var session_id = "0";`))
	}))
	defer srv.Close()

	_, err := NewClientWithHTTP(ClientConfig{URL: srv.URL, Login: "admin", Password: "wrong"}, srv.Client())
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("NewClientWithHTTP() error = %v, want *AuthError", err)
	}
}

func TestNewClient_MissingSessionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>login page without script</body></html>`))
	}))
	defer srv.Close()

	_, err := NewClientWithHTTP(ClientConfig{URL: srv.URL, Login: "admin", Password: "admin"}, srv.Client())
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("NewClientWithHTTP() error = %v, want *AuthError", err)
	}
}

func TestNewClient_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClientWithHTTP(ClientConfig{URL: srv.URL, Login: "admin", Password: "admin"}, srv.Client())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("NewClientWithHTTP() error = %v, want *TransportError", err)
	}
	if transportErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want %d", transportErr.StatusCode, http.StatusServiceUnavailable)
	}
}

func TestFetch_UnauthenticatedSession(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := &Client{baseURL: srv.URL + "/", httpClient: srv.Client()}

	for _, s := range []Session{{}, {ID: "0"}} {
		_, err := c.fetch(s, deviceStatusPath, nil)
		var authErr *AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("fetch() with session %+v error = %v, want *AuthError", s, err)
		}
	}
	if hits != 0 {
		t.Errorf("fetch() with unauthenticated session hit the server %d times", hits)
	}
}

func TestFetch_AppendsSessionID(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := &Client{baseURL: srv.URL + "/", httpClient: srv.Client()}

	body, err := c.fetch(Session{ID: "4821", Cookie: "x"}, linkStatusPath, nil)
	if err != nil {
		t.Fatalf("fetch() error = %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("body = %q, want %q", body, "ok")
	}
	if gotQuery != "session_id=4821" {
		t.Errorf("query = %q, want %q", gotQuery, "session_id=4821")
	}
}

func TestFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := &Client{baseURL: srv.URL + "/", httpClient: srv.Client()}

	_, err := c.fetch(Session{ID: "4821", Cookie: "x"}, deviceStatusPath, nil)
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("fetch() error = %v, want *TransportError", err)
	}
	if transportErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", transportErr.StatusCode, http.StatusNotFound)
	}
}

func TestClient_StatusPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(loginPage))
	})
	mux.HandleFunc("/userRpm/deviceStatus.htm", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("session_id") != "4821" {
			t.Errorf("deviceStatus session_id = %q, want %q", r.URL.Query().Get("session_id"), "4821")
		}
		if r.URL.Query().Get("dataRequestOnly") != "1" {
			t.Errorf("deviceStatus dataRequestOnly = %q, want %q", r.URL.Query().Get("dataRequestOnly"), "1")
		}
		w.Write([]byte(deviceStatusPage))
	})
	mux.HandleFunc("/userRpm/linkStatus.htm", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("session_id") != "4821" {
			t.Errorf("linkStatus session_id = %q, want %q", r.URL.Query().Get("session_id"), "4821")
		}
		w.Write([]byte(linkStatusPage))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := NewClientWithHTTP(ClientConfig{URL: srv.URL, Login: "admin", Password: "admin"}, srv.Client())
	if err != nil {
		t.Fatalf("NewClientWithHTTP() error = %v", err)
	}

	dev, err := c.DeviceStatus()
	if err != nil {
		t.Fatalf("DeviceStatus() error = %v", err)
	}
	if dev.Battery != "charging" {
		t.Errorf("Battery = %q, want %q", dev.Battery, "charging")
	}

	link, err := c.LinkStatus()
	if err != nil {
		t.Fatalf("LinkStatus() error = %v", err)
	}
	if link.SSID != "HOME_NET-1" {
		t.Errorf("SSID = %q, want %q", link.SSID, "HOME_NET-1")
	}
}

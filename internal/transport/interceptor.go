// Package transport makes every outgoing request authenticated and every
// authentication failure self-healing: it attaches session credentials before
// dispatch and reacts to auth-related status codes after, closing the local
// session and pushing the UI back to the entry point when the server rejects
// the session.
package transport

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"serviflex/mobile/internal/session"
)

// Response headers consulted for out-of-band credential rotation.
const (
	headerNewToken     = "New-Token"
	headerRefreshToken = "Refresh-Token"
)

// Notifier carries the two UI capabilities the transport needs: showing a
// blocking message and resetting navigation to the unauthenticated entry
// point. Either func may be nil. The UI layer is responsible for marshaling
// both onto its main execution context.
type Notifier struct {
	Alert           func(title, message string)
	ResetNavigation func()
}

// AuthRoundTripper wraps an http.RoundTripper, injecting credentials from the
// session manager and handling authentication failures in responses. Failure
// handling is strictly best-effort: it never alters the response returned to
// the caller and never turns a delivered response into an error.
type AuthRoundTripper struct {
	base       http.RoundTripper
	sessions   *session.Manager
	notifier   Notifier
	appVersion string
	platform   string
}

// NewAuthRoundTripper returns an AuthRoundTripper over base. base may be nil;
// then http.DefaultTransport is used.
func NewAuthRoundTripper(base http.RoundTripper, sessions *session.Manager, notifier Notifier, appVersion, platform string) *AuthRoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &AuthRoundTripper{
		base:       base,
		sessions:   sessions,
		notifier:   notifier,
		appVersion: appVersion,
		platform:   platform,
	}
}

// NewHTTPClient returns an *http.Client that sends every request through an
// AuthRoundTripper with the given fixed timeout budget.
func NewHTTPClient(sessions *session.Manager, notifier Notifier, timeout time.Duration, appVersion, platform string) *http.Client {
	return &http.Client{
		Transport: NewAuthRoundTripper(nil, sessions, notifier, appVersion, platform),
		Timeout:   timeout,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *AuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	t.addHeaders(out)

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	t.handleResponse(resp)
	return resp, nil
}

// addHeaders attaches credentials when a session exists, plus the static app
// identification headers.
func (t *AuthRoundTripper) addHeaders(req *http.Request) {
	if t.sessions.LoggedIn() {
		if token := t.sessions.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if id := t.sessions.SessionID(); id != "" {
			req.Header.Set("SessionId", id)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-App-Version", t.appVersion)
	req.Header.Set("X-Platform", t.platform)
	req.Header.Set("X-Device-Id", t.sessions.DeviceID())
}

// handleResponse runs the auth dispatch table over the received response.
// Nothing here may interrupt the original caller: panics are recovered and
// logged, the body is re-buffered when sniffed, notifications run off the
// caller's goroutine.
func (t *AuthRoundTripper) handleResponse(resp *http.Response) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("transport: auth response handling panicked: %v", r)
		}
	}()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		log.Printf("transport: 401 received, closing session")
		t.sessions.CloseSession()
		t.notify("Session Expired", "Your session has expired. Please log in again.", true)

	case http.StatusForbidden:
		log.Printf("transport: 403 received, session left intact")
		t.notify("Access Denied", "You do not have permission to perform this action.", false)

	case http.StatusBadRequest:
		body := sniffBody(resp)
		if strings.Contains(body, "token") || strings.Contains(body, "session") {
			log.Printf("transport: 400 with session error in body, closing session")
			t.sessions.CloseSession()
			t.notify("Invalid Session", "Your session is not valid. Please log in again.", true)
		}

	default:
		t.rotateTokenFromHeaders(resp)
	}
}

// rotateTokenFromHeaders applies a New-Token header when present and logs the
// presence of a Refresh-Token. No refresh flow is implemented; the backend
// never expires tokens.
func (t *AuthRoundTripper) rotateTokenFromHeaders(resp *http.Response) {
	if newToken := resp.Header.Get(headerNewToken); newToken != "" {
		t.sessions.UpdateToken(newToken)
		log.Printf("transport: token rotated from %s response header", headerNewToken)
	}
	if resp.Header.Get(headerRefreshToken) != "" {
		log.Printf("transport: %s response header received (ignored)", headerRefreshToken)
	}
}

// notify schedules the user-facing reaction off the caller's goroutine. The
// response is already on its way back to the caller when this runs.
func (t *AuthRoundTripper) notify(title, message string, reset bool) {
	alert := t.notifier.Alert
	resetNav := t.notifier.ResetNavigation
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("transport: notifier panicked: %v", r)
			}
		}()
		if alert != nil {
			alert(title, message)
		}
		if reset && resetNav != nil {
			resetNav()
		}
	}()
}

// sniffBody reads the response body for inspection and replaces it with a
// fresh reader so the caller can still consume it.
func sniffBody(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		resp.Body = io.NopCloser(bytes.NewReader(raw))
		return ""
	}
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	return string(raw)
}

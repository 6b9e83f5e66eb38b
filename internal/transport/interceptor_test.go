package transport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"serviflex/mobile/internal/session"
	"serviflex/mobile/internal/store"
)

func newLoggedInManager(t *testing.T) *session.Manager {
	t.Helper()
	m := session.NewManager(store.NewMemoryStore(), nil)
	m.Save(&session.Session{SesionID: "sess-1", Token: "tok-1", Activo: true}, "a@b.com", "", 0)
	return m
}

func newTestClient(mgr *session.Manager, n Notifier) *http.Client {
	return &http.Client{
		Transport: NewAuthRoundTripper(nil, mgr, n, "1.0", "test"),
		Timeout:   5 * time.Second,
	}
}

// waitAlert receives one alert title or fails the test.
func waitAlert(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case title := <-ch:
		return title
	case <-time.After(2 * time.Second):
		t.Fatal("no alert scheduled")
		return ""
	}
}

// expectNoMore asserts no further value arrives on ch.
func expectNoMore(t *testing.T, ch <-chan string) {
	t.Helper()
	select {
	case title := <-ch:
		t.Fatalf("unexpected extra alert %q", title)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRoundTrip_AttachesAuthHeadersWhenLoggedIn(t *testing.T) {
	var gotAuth, gotSession, gotAccept, gotVersion, gotPlatform, gotDevice string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotSession = r.Header.Get("SessionId")
		gotAccept = r.Header.Get("Accept")
		gotVersion = r.Header.Get("X-App-Version")
		gotPlatform = r.Header.Get("X-Platform")
		gotDevice = r.Header.Get("X-Device-Id")
	}))
	defer srv.Close()

	mgr := newLoggedInManager(t)
	resp, err := newTestClient(mgr, Notifier{}).Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-1")
	}
	if gotSession != "sess-1" {
		t.Errorf("SessionId = %q, want %q", gotSession, "sess-1")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
	if gotVersion != "1.0" || gotPlatform != "test" {
		t.Errorf("app headers = %q/%q, want 1.0/test", gotVersion, gotPlatform)
	}
	if gotDevice == "" {
		t.Error("X-Device-Id missing")
	}
}

func TestRoundTrip_NoAuthHeadersWhenLoggedOut(t *testing.T) {
	var gotAuth, gotSession string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotSession = r.Header.Get("SessionId")
	}))
	defer srv.Close()

	mgr := session.NewManager(store.NewMemoryStore(), nil)
	resp, err := newTestClient(mgr, Notifier{}).Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty when logged out", gotAuth)
	}
	if gotSession != "" {
		t.Errorf("SessionId = %q, want empty when logged out", gotSession)
	}
}

func TestRoundTrip_401ClosesSessionAndNotifiesOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	alerts := make(chan string, 8)
	resets := make(chan string, 8)
	mgr := newLoggedInManager(t)
	client := newTestClient(mgr, Notifier{
		Alert:           func(title, _ string) { alerts <- title },
		ResetNavigation: func() { resets <- "reset" },
	})

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()

	if mgr.LoggedIn() {
		t.Error("LoggedIn = true after 401")
	}
	if title := waitAlert(t, alerts); title != "Session Expired" {
		t.Errorf("alert title = %q, want %q", title, "Session Expired")
	}
	waitAlert(t, resets)
	expectNoMore(t, alerts)
}

func TestRoundTrip_403LeavesSessionIntact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	alerts := make(chan string, 8)
	resets := make(chan string, 8)
	mgr := newLoggedInManager(t)
	client := newTestClient(mgr, Notifier{
		Alert:           func(title, _ string) { alerts <- title },
		ResetNavigation: func() { resets <- "reset" },
	})

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()

	if !mgr.LoggedIn() {
		t.Error("LoggedIn = false after 403, session should stay intact")
	}
	if title := waitAlert(t, alerts); title != "Access Denied" {
		t.Errorf("alert title = %q, want %q", title, "Access Denied")
	}
	expectNoMore(t, resets)
}

func TestRoundTrip_400WithTokenBodyClosesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "invalid token")
	}))
	defer srv.Close()

	alerts := make(chan string, 8)
	mgr := newLoggedInManager(t)
	client := newTestClient(mgr, Notifier{Alert: func(title, _ string) { alerts <- title }})

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	// the caller must still see the body after the interceptor sniffed it
	if string(body) != "invalid token" {
		t.Errorf("body = %q, want %q", body, "invalid token")
	}
	if mgr.LoggedIn() {
		t.Error("LoggedIn = true after 400 with token error")
	}
	if title := waitAlert(t, alerts); title != "Invalid Session" {
		t.Errorf("alert title = %q, want %q", title, "Invalid Session")
	}
}

func TestRoundTrip_400WithoutKeywordsIsIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "missing Nombre field")
	}))
	defer srv.Close()

	alerts := make(chan string, 8)
	mgr := newLoggedInManager(t)
	client := newTestClient(mgr, Notifier{Alert: func(title, _ string) { alerts <- title }})

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()

	if !mgr.LoggedIn() {
		t.Error("LoggedIn = false after plain 400")
	}
	expectNoMore(t, alerts)
}

func TestRoundTrip_CaseSensitiveBodyMatch(t *testing.T) {
	// "Token" capitalized must not match; the check is a case-sensitive
	// substring match against the raw body.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "Token field malformed")
	}))
	defer srv.Close()

	mgr := newLoggedInManager(t)
	resp, err := newTestClient(mgr, Notifier{}).Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()

	if !mgr.LoggedIn() {
		t.Error("session closed on capitalized 'Token', match must be case-sensitive")
	}
}

func TestRoundTrip_NewTokenHeaderRotates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("New-Token", "tok-2")
		io.WriteString(w, "{}")
	}))
	defer srv.Close()

	mgr := newLoggedInManager(t)
	resp, err := newTestClient(mgr, Notifier{}).Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()

	if got := mgr.Token(); got != "tok-2" {
		t.Errorf("Token = %q, want rotated %q", got, "tok-2")
	}
	if got := mgr.SessionID(); got != "sess-1" {
		t.Errorf("SessionID = %q, want unchanged %q", got, "sess-1")
	}
}

func TestRoundTrip_RefreshTokenHeaderIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Refresh-Token", "refresh-1")
		io.WriteString(w, "{}")
	}))
	defer srv.Close()

	mgr := newLoggedInManager(t)
	resp, err := newTestClient(mgr, Notifier{}).Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()

	if got := mgr.Token(); got != "tok-1" {
		t.Errorf("Token = %q, want unchanged %q", got, "tok-1")
	}
}

func TestRoundTrip_NotifierPanicDoesNotPropagate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	done := make(chan string, 1)
	mgr := newLoggedInManager(t)
	client := newTestClient(mgr, Notifier{
		Alert: func(title, _ string) {
			done <- title
			panic("ui exploded")
		},
	})

	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()
	waitAlert(t, done)

	if mgr.LoggedIn() {
		t.Error("LoggedIn = true after 401")
	}
}

func TestRoundTrip_OriginalRequestNotMutated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	mgr := newLoggedInManager(t)
	rt := NewAuthRoundTripper(nil, mgr, Notifier{}, "1.0", "test")

	req, err := http.NewRequest(http.MethodGet, srv.URL, strings.NewReader(""))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip: %v", err)
	}
	resp.Body.Close()

	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("original request Authorization = %q, want untouched", got)
	}
}

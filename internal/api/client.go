package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"serviflex/mobile/internal/session"
)

// Client exposes one typed operation per backend endpoint. Methods never
// return a Go error: every failure is folded into the response envelope with
// a non-empty message, so pages only ever branch on the result flag.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Manager
}

// New returns a Client that sends requests through httpClient (expected to be
// built by transport.NewHTTPClient so credentials and auth-failure handling
// are applied) against the given base URL.
func New(baseURL string, httpClient *http.Client, sessions *session.Manager) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{baseURL: baseURL, http: httpClient, sessions: sessions}
}

// respPtr constrains exchange to response types embedding Result.
type respPtr[R any] interface {
	*R
	fail(code int, message string)
}

// failure builds a synthetic failure response of type R.
func failure[R any, PR respPtr[R]](code int, message string) *R {
	var r R
	PR(&r).fail(code, message)
	return &r
}

// envelopeProbe detects whether an error body is the structured envelope.
type envelopeProbe struct {
	Error []ErrorItem `json:"error"`
}

// exchange implements the normalization contract shared by every endpoint:
// serialize, dispatch through the authenticated client, then map the outcome
// to a typed response. 2xx bodies that are empty or unparseable become -4/-5;
// non-2xx bodies are passed through when structured, otherwise synthesized
// from the raw status and body; 401 escalates to -12 (the transport has
// already closed the session); transport failures become -1/-2/-3.
func exchange[R any, PR respPtr[R]](ctx context.Context, c *Client, method, path string, body any) *R {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return failure[R, PR](CodeUnexpected, fmt.Sprintf("serialize request: %v", err))
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return failure[R, PR](CodeUnexpected, fmt.Sprintf("build request: %v", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportFailure[R, PR](err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure[R, PR](CodeUnexpected, fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return decodeSuccess[R, PR](raw)
	}
	return decodeFailure[R, PR](resp.StatusCode, raw)
}

// transportFailure maps a transport-level error to its reserved code.
func transportFailure[R any, PR respPtr[R]](err error) *R {
	var uerr *url.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &uerr) && uerr.Timeout():
		return failure[R, PR](CodeTimeout, "request timed out")
	case errors.As(err, &uerr):
		return failure[R, PR](CodeConnection, fmt.Sprintf("connection failed: %v", uerr.Err))
	default:
		return failure[R, PR](CodeUnexpected, fmt.Sprintf("unexpected error: %v", err))
	}
}

// decodeSuccess deserializes a 2xx body, synthesizing -4 for an absent
// payload and -5 for one that cannot be parsed.
func decodeSuccess[R any, PR respPtr[R]](raw []byte) *R {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return failure[R, PR](CodeEmptyBody, "empty response from server")
	}
	var r R
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return failure[R, PR](CodeMalformedBody, fmt.Sprintf("malformed response from server: %v", err))
	}
	return &r
}

// decodeFailure handles a non-2xx response: a structured envelope passes
// through unchanged; anything else carries the raw status and body. A 401
// becomes -12 unconditionally; by the time this runs the transport has
// already closed the local session.
func decodeFailure[R any, PR respPtr[R]](status int, raw []byte) *R {
	if status == http.StatusUnauthorized {
		return failure[R, PR](CodeSessionRejected, "invalid session, please log in again")
	}
	// A 400 naming the token or session is the backend rejecting the session,
	// not a validation error; the transport has closed the session on it too.
	if status == http.StatusBadRequest &&
		(bytes.Contains(raw, []byte("token")) || bytes.Contains(raw, []byte("session"))) {
		return failure[R, PR](CodeSessionRejected, "invalid session, please log in again")
	}

	// Pass a structured error payload through unchanged, but only when it
	// actually carries errors: the caller is promised a non-empty message on
	// every failure.
	var probe envelopeProbe
	if err := json.Unmarshal(raw, &probe); err == nil && len(probe.Error) > 0 {
		var r R
		if err := json.Unmarshal(raw, &r); err == nil {
			return &r
		}
	}

	log.Printf("api: server error status=%d body=%s", status, raw)
	return failure[R, PR](status, fmt.Sprintf("server error (%d): %s", status, raw))
}

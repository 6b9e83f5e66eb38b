// Package session owns the single active session on the device: the
// server-issued session id, the bearer token, and the identity of the user
// who logged in, persisted in the local preferences store.
package session

import "time"

// Session is the server-issued session as it appears on the wire. The
// timestamps arrive as strings and are parsed lazily; some backends send
// formats that are not RFC 3339.
type Session struct {
	SesionID      string `json:"SesionId"`
	Activo        bool   `json:"Activo"`
	FechaCreacion string `json:"FechaCreacion"`
	FechaCierre   string `json:"FechaCierre"`
	Token         string `json:"Token"`
}

// timeLayouts are the accepted server timestamp formats, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CreationTime parses FechaCreacion. Returns nil when absent or unparseable.
func (s *Session) CreationTime() *time.Time {
	return parseServerTime(s.FechaCreacion)
}

// CloseTime parses FechaCierre. Returns nil when absent or unparseable.
func (s *Session) CloseTime() *time.Time {
	return parseServerTime(s.FechaCierre)
}

func parseServerTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

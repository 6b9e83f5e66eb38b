package session

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"serviflex/mobile/internal/store"
)

// Preference keys for the persisted session state.
const (
	keySessionID   = "SessionId"
	keyToken       = "Token"
	keyIsLoggedIn  = "IsLoggedIn"
	keyUserEmail   = "UserEmail"
	keyUserID      = "UserId"
	keyUserName    = "UserName"
	keySessionData = "SessionData"
	keyCreatedAt   = "SessionCreatedAt"
	keyDeviceID    = "DeviceId"
)

// Manager is the single source of truth for "is there a usable session, and
// what is it". It persists exactly one session at a time in the preferences
// store; there is no multi-account support.
//
// Reads are safe to call concurrently. Whole-session mutations (Save, Close)
// are not ordered against each other and must not race; they are invoked only
// from login success, explicit logout, and the transport's auth failure
// handling.
type Manager struct {
	store  store.Store
	sealer *store.Sealer
}

// NewManager returns a Manager over the given preferences store. sealer may
// be nil; then the session backup blob is stored unsealed.
func NewManager(s store.Store, sealer *store.Sealer) *Manager {
	return &Manager{store: s, sealer: sealer}
}

// Save persists the session and the user identity behind it. When userName is
// empty it is derived from the local part of userEmail. When userID is zero a
// numeric user id is extracted best-effort from the token claims.
//
// Save never fails the caller: persistence errors are logged and swallowed,
// since losing session persistence must not take the UI down with it.
func (m *Manager) Save(s *Session, userEmail, userName string, userID int) {
	if s == nil {
		log.Printf("session: save called with nil session")
		return
	}
	if userName == "" {
		userName = localPart(userEmail)
	}
	if userID == 0 {
		userID = userIDFromToken(s.Token)
	}

	m.set(keySessionID, s.SesionID)
	m.set(keyToken, s.Token)
	m.set(keyUserEmail, userEmail)
	m.set(keyUserName, userName)
	if err := m.store.SetBool(keyIsLoggedIn, true); err != nil {
		log.Printf("session: persist %s: %v", keyIsLoggedIn, err)
	}
	if err := m.store.SetInt(keyUserID, userID); err != nil {
		log.Printf("session: persist %s: %v", keyUserID, err)
	}

	if t := s.CreationTime(); t != nil {
		m.set(keyCreatedAt, t.UTC().Format(time.RFC3339))
	}

	blob, err := json.Marshal(s)
	if err != nil {
		log.Printf("session: serialize backup: %v", err)
		return
	}
	data := string(blob)
	if m.sealer != nil {
		data, err = m.sealer.Seal(data)
		if err != nil {
			log.Printf("session: seal backup: %v", err)
			return
		}
	}
	m.set(keySessionData, data)
}

// CloseSession removes every persisted session key. Closing an already-closed
// session is a no-op.
func (m *Manager) CloseSession() {
	for _, key := range []string{
		keySessionID, keyToken, keyIsLoggedIn, keyUserEmail,
		keyUserID, keyUserName, keySessionData, keyCreatedAt,
	} {
		if err := m.store.Remove(key); err != nil {
			log.Printf("session: remove %s: %v", key, err)
		}
	}
}

// LoggedIn reports whether a usable session exists: the logged-in flag is set
// and both token and session id are non-empty. Side-effect-free; called
// before every authenticated request.
func (m *Manager) LoggedIn() bool {
	return m.store.GetBool(keyIsLoggedIn, false) &&
		m.Token() != "" &&
		m.SessionID() != ""
}

// Expired reports whether the session is unusable. The backend this client
// targets never expires tokens, so no expiry check is performed: expired is
// defined purely as not logged in.
func (m *Manager) Expired() bool {
	return !m.LoggedIn()
}

// Token returns the bearer token, or "" when absent.
func (m *Manager) Token() string {
	return m.store.GetString(keyToken, "")
}

// SessionID returns the server-issued session id, or "" when absent.
func (m *Manager) SessionID() string {
	return m.store.GetString(keySessionID, "")
}

// UserEmail returns the email the session was created for, or "" when absent.
func (m *Manager) UserEmail() string {
	return m.store.GetString(keyUserEmail, "")
}

// UserName returns the stored display name, or "" when absent.
func (m *Manager) UserName() string {
	return m.store.GetString(keyUserName, "")
}

// UserID returns the numeric user id, or 0 when absent.
func (m *Manager) UserID() int {
	return m.store.GetInt(keyUserID, 0)
}

// CreatedAt returns the parsed session creation time, or the zero time and
// false when it was never stored.
func (m *Manager) CreatedAt() (time.Time, bool) {
	raw := m.store.GetString(keyCreatedAt, "")
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// UpdateToken overwrites only the token, used when the backend rotates the
// credential out-of-band via a response header. Other session fields are left
// untouched.
func (m *Manager) UpdateToken(newToken string) {
	m.set(keyToken, newToken)
}

// UpdateUserInfo partially updates the stored identity: name only when
// non-empty, userID only when positive.
func (m *Manager) UpdateUserInfo(name string, userID int) {
	if name != "" {
		m.set(keyUserName, name)
	}
	if userID > 0 {
		if err := m.store.SetInt(keyUserID, userID); err != nil {
			log.Printf("session: persist %s: %v", keyUserID, err)
		}
	}
}

// FullSession deserializes the session backup blob. Returns nil, not an
// error, when the blob is absent or corrupt.
func (m *Manager) FullSession() *Session {
	data := m.store.GetString(keySessionData, "")
	if data == "" {
		return nil
	}
	if m.sealer != nil {
		plain, err := m.sealer.Open(data)
		if err != nil {
			log.Printf("session: unseal backup: %v", err)
			return nil
		}
		data = plain
	}
	var s Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		log.Printf("session: decode backup: %v", err)
		return nil
	}
	return &s
}

// DeviceID returns the stable per-install identifier, generating and
// persisting one on first use.
func (m *Manager) DeviceID() string {
	id := m.store.GetString(keyDeviceID, "")
	if id != "" {
		return id
	}
	id = uuid.NewString()
	m.set(keyDeviceID, id)
	return id
}

// LogSessionInfo writes the current session state to the log, for debugging.
// The token itself is never logged.
func (m *Manager) LogSessionInfo() {
	log.Printf("session: logged_in=%v email=%s name=%s session_id=%s user_id=%d",
		m.LoggedIn(), m.UserEmail(), m.UserName(), m.SessionID(), m.UserID())
}

func (m *Manager) set(key, value string) {
	if err := m.store.SetString(key, value); err != nil {
		log.Printf("session: persist %s: %v", key, err)
	}
}

// localPart returns everything before the first '@' of an email address.
func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

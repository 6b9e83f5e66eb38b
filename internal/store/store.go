// Package store provides the durable on-device key/value preferences store
// backing the session state, plus sealing for the session backup blob.
package store

// Store is durable, process-surviving key/value storage with typed defaults.
// Get methods return the given default when the key is absent or unreadable;
// they never fail the caller.
type Store interface {
	// GetString returns the value for key, or def when absent.
	GetString(key, def string) string
	// SetString writes key=value, replacing any previous value.
	SetString(key, value string) error
	// GetBool returns the boolean value for key, or def when absent or not a boolean.
	GetBool(key string, def bool) bool
	// SetBool writes key=value.
	SetBool(key string, value bool) error
	// GetInt returns the integer value for key, or def when absent or not an integer.
	GetInt(key string, def int) int
	// SetInt writes key=value.
	SetInt(key string, value int) error
	// Remove deletes key. Removing an absent key is a no-op.
	Remove(key string) error
	// Close releases the underlying storage.
	Close() error
}

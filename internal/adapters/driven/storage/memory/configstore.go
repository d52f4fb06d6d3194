package memory

import (
	"sync"

	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps configuration in memory.
//
// With a base store it is an overlay: a key reads from the base until it is
// set here, and nothing is ever written back. Ephemeral runs use it so the
// settings commands leave the config file untouched.
type ConfigStore struct {
	mu     sync.RWMutex
	base   driven.ConfigStore
	values map[string]any
}

// NewConfigStore creates an empty in-memory config store.
func NewConfigStore() *ConfigStore {
	return NewOverlayConfigStore(nil)
}

// NewOverlayConfigStore creates an in-memory store layered over base.
// A nil base gives an empty store.
func NewOverlayConfigStore(base driven.ConfigStore) *ConfigStore {
	return &ConfigStore{
		base:   base,
		values: make(map[string]any),
	}
}

// Get returns the value set in memory, falling back to the base store.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	val, ok := s.values[key]
	s.mu.RUnlock()

	if ok || s.base == nil {
		return val, ok
	}
	return s.base.Get(key)
}

func (s *ConfigStore) GetString(key string) string {
	str, _ := s.value(key).(string)
	return str
}

// GetInt accepts any numeric value, truncating floats.
func (s *ConfigStore) GetInt(key string) int {
	switch v := s.value(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// GetFloat accepts any numeric value. TOML integers arrive as int64.
func (s *ConfigStore) GetFloat(key string) float64 {
	switch v := s.value(key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func (s *ConfigStore) GetBool(key string) bool {
	b, _ := s.value(key).(bool)
	return b
}

// GetStringSlice keeps the string items of a []any, as decoded from TOML arrays.
func (s *ConfigStore) GetStringSlice(key string) []string {
	switch v := s.value(key).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// Set records the value in memory only.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save is a no-op; in-memory values are discarded with the store.
func (s *ConfigStore) Save() error {
	return nil
}

// Load re-reads the base store, if any. Values set in memory still win.
func (s *ConfigStore) Load() error {
	if s.base == nil {
		return nil
	}
	return s.base.Load()
}

// Path reports ":memory:", or the base path marked as in memory.
func (s *ConfigStore) Path() string {
	if s.base == nil {
		return ":memory:"
	}
	return s.base.Path() + " (in memory)"
}

func (s *ConfigStore) value(key string) any {
	val, _ := s.Get(key)
	return val
}

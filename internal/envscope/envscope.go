// Package envscope provides strictly scoped process-environment overlays.
// Every mutation made through a Scope is recorded and undone by Restore, so
// tests and plugins that read prefixed environment variables can exercise
// that path without leaking state past their own block. Callers defer
// Restore immediately after acquiring a scope; that covers success, test
// failure, and panic exits alike.
package envscope

import "os"

// Scope tracks environment mutations so they can be reverted. The zero
// value is not usable; acquire scopes through Overlay or Clear.
type Scope struct {
	// prior value per touched key; nil means the key was unset before
	saved map[string]*string
	// full snapshot to reinstate, set only by Clear
	snapshot []string
}

// Overlay returns a scope that records the prior state of each key on its
// first mutation.
func Overlay() *Scope {
	return &Scope{saved: make(map[string]*string)}
}

// Clear snapshots the entire process environment and then clears it. Restore
// reinstates the snapshot exactly.
func Clear() *Scope {
	s := &Scope{saved: make(map[string]*string), snapshot: os.Environ()}
	os.Clearenv()
	return s
}

// Set assigns key within the scope, remembering what it shadowed.
func (s *Scope) Set(key, value string) error {
	s.remember(key)
	return os.Setenv(key, value)
}

// Unset removes key within the scope, remembering what it shadowed.
func (s *Scope) Unset(key string) error {
	s.remember(key)
	return os.Unsetenv(key)
}

func (s *Scope) remember(key string) {
	if _, seen := s.saved[key]; seen {
		return
	}
	if prev, ok := os.LookupEnv(key); ok {
		p := prev
		s.saved[key] = &p
	} else {
		s.saved[key] = nil
	}
}

// Restore reverts every mutation made through the scope. For a Clear scope
// it reinstates the full pre-scope environment. Restore is idempotent.
func (s *Scope) Restore() {
	if s.snapshot != nil {
		os.Clearenv()
		for _, kv := range s.snapshot {
			for i := 0; i < len(kv); i++ {
				if kv[i] == '=' {
					os.Setenv(kv[:i], kv[i+1:])
					break
				}
			}
		}
		s.snapshot = nil
		s.saved = make(map[string]*string)
		return
	}
	for key, prev := range s.saved {
		if prev == nil {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, *prev)
		}
	}
	s.saved = make(map[string]*string)
}

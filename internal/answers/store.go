// Package answers holds the values collected by wizard steps, keyed by dotted
// paths such as "reporting.endpoint.url", and renders them as YAML or TOML.
package answers

import (
	"fmt"
	"strings"
	"sync"
)

// Store is an insertion-ordered set of dotted keys. It is safe for
// concurrent use.
type Store struct {
	mu     sync.RWMutex
	keys   []string
	values map[string]any
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[string]any)}
}

// Set stores v under key. A new key is appended to the order; an existing key
// keeps its position.
func (s *Store) Set(key string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// String returns the value at key formatted as a string, or "" when unset.
func (s *Store) String(key string) string {
	v, ok := s.Get(key)
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

// Bool returns the value at key interpreted as a boolean.
func (s *Store) Bool(key string) bool {
	v, ok := s.Get(key)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(b) {
		case "true", "yes", "on", "1":
			return true
		}
	}
	return false
}

// Delete removes key.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.keys...)
}

// Len returns the number of keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Clone returns an independent copy.
func (s *Store) Clone() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := &Store{
		keys:   append([]string(nil), s.keys...),
		values: make(map[string]any, len(s.values)),
	}
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// Prune returns a copy without the given keys. Keys nested under a dropped
// key ("a.b" under "a") are dropped too.
func (s *Store) Prune(drop []string) *Store {
	c := s.Clone()
	for _, key := range c.Keys() {
		for _, d := range drop {
			if key == d || strings.HasPrefix(key, d+".") {
				c.Delete(key)
				break
			}
		}
	}
	return c
}

// Merge copies every key of other into s, in other's order.
func (s *Store) Merge(other *Store) {
	for _, key := range other.Keys() {
		v, _ := other.Get(key)
		s.Set(key, v)
	}
}

package cookie

import (
	"net/http"
	"slices"
	"sync"
	"time"
)

// Record is one persisted cookie together with the host that set it.
type Record struct {
	Host     string        `json:"host"`
	Name     string        `json:"name"`
	Value    string        `json:"value"`
	Domain   string        `json:"domain,omitempty"`
	Path     string        `json:"path"`
	Expires  time.Time     `json:"expires,omitzero"`
	Secure   bool          `json:"secure,omitempty"`
	HTTPOnly bool          `json:"http_only,omitempty"`
	SameSite http.SameSite `json:"same_site,omitempty"`
}

// Expired reports whether the record has a deadline before now.
func (r Record) Expired(now time.Time) bool {
	return !r.Expires.IsZero() && !r.Expires.After(now)
}

// key identifies a cookie the way a jar does: domain, path and name.
func (r Record) key() string {
	d := r.Domain
	if d == "" {
		d = r.Host
	}
	return d + "|" + r.Path + "|" + r.Name
}

// Store persists the records of one jar.
type Store interface {
	// Load returns the stored records. An empty store returns nil.
	Load() ([]Record, error)
	// Save replaces the stored records.
	Save(records []Record) error
	// Close erases the store. Calling it again is a no-op.
	Close() error
}

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records), nil
}

func (s *MemoryStore) Save(records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = slices.Clone(records)
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

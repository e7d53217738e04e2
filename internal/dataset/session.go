package dataset

import "fmt"

// Session is the working mapping of one render pass: datasets keyed by
// name plus the duplicate guard. Build a new one for every pass.
type Session struct {
	byName map[string]*Dataset
	order  []string
	seen   map[string]struct{}
}

func NewSession() *Session {
	return &Session{
		byName: make(map[string]*Dataset),
		seen:   make(map[string]struct{}),
	}
}

// Seen reports whether name was already claimed in this pass.
func (s *Session) Seen(name string) bool {
	_, ok := s.seen[name]
	return ok
}

// Claim records name in the duplicate guard. It returns false when the
// name was already claimed, in which case the caller must skip it.
func (s *Session) Claim(name string) bool {
	if s.Seen(name) {
		return false
	}
	s.seen[name] = struct{}{}
	return true
}

// Add stores d under its name. A second dataset with the same name is
// rejected with ErrDuplicate and the first one is kept.
func (s *Session) Add(d *Dataset) error {
	if d == nil {
		return fmt.Errorf("add dataset: nil")
	}
	if _, ok := s.byName[d.Name]; ok {
		return fmt.Errorf("%s: %w", d.Name, ErrDuplicate)
	}
	s.seen[d.Name] = struct{}{}
	s.byName[d.Name] = d
	s.order = append(s.order, d.Name)
	return nil
}

func (s *Session) Get(name string) (*Dataset, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Names returns loaded dataset names in load order.
func (s *Session) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Session) Len() int { return len(s.order) }

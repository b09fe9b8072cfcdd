package entity

import "sync"

// SelectionEntry is one item marked for removal. ID is the stable key derived
// from Ref; Ref is the navigable path used to re-locate the live row.
type SelectionEntry struct {
	ID  string
	Ref string
}

// SelectionSet maps item id to its entry. Keys are unique; insertion order is
// preserved so job snapshots process items in sidebar order. Workers remove
// entries concurrently, so all access goes through the mutex.
type SelectionSet struct {
	mu      sync.Mutex
	entries map[string]SelectionEntry
	order   []string
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{
		entries: make(map[string]SelectionEntry),
	}
}

func (s *SelectionSet) Add(e SelectionEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.ID]; !ok {
		s.order = append(s.order, e.ID)
	}
	s.entries[e.ID] = e
}

func (s *SelectionSet) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return
	}
	delete(s.entries, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *SelectionSet) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	return ok
}

func (s *SelectionSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *SelectionSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]SelectionEntry)
	s.order = nil
}

// Snapshot returns the entries in insertion order. The returned slice is a
// copy; later mutations of the set do not affect it.
func (s *SelectionSet) Snapshot() []SelectionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SelectionEntry, 0, len(s.entries))
	for _, id := range s.order {
		out = append(out, s.entries[id])
	}
	return out
}

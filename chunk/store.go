package chunk

// Store is an ordered map from chunk id to chunk record. It carries no
// synchronization of its own: the enclosing library's reader-writer lock is
// the sole guard against concurrent access, per the concurrency model.
type Store struct {
	order []string
	byID  map[string]Chunk
}

// NewStore returns an empty chunk store.
func NewStore() *Store {
	return &Store{byID: make(map[string]Chunk)}
}

// Put inserts or overwrites c.
func (s *Store) Put(c Chunk) {
	if _, exists := s.byID[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.byID[c.ID] = c
}

// Get returns the chunk for id, if present.
func (s *Store) Get(id string) (Chunk, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Delete removes id, reporting whether it was present.
func (s *Store) Delete(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len reports the number of chunks held.
func (s *Store) Len() int {
	return len(s.byID)
}

// IterIDs returns every chunk id in insertion order.
func (s *Store) IterIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// IterByDocument returns every chunk id belonging to documentID, in
// insertion order.
func (s *Store) IterByDocument(documentID string) []string {
	out := make([]string, 0)
	for _, id := range s.order {
		if s.byID[id].DocumentID == documentID {
			out = append(out, id)
		}
	}
	return out
}

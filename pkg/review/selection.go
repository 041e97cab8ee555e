package review

// Selection tracks which generated items are marked for a bulk action.
// IDs are kept in insertion order so bulk operations run in a stable
// sequence; the set index keeps membership checks O(1).
type Selection struct {
	order []string
	index map[string]int
}

func NewSelection() *Selection {
	return &Selection{index: map[string]int{}}
}

// Toggle flips membership for one id.
func (s *Selection) Toggle(id string) {
	if _, ok := s.index[id]; ok {
		s.remove(id)
		return
	}
	s.index[id] = len(s.order)
	s.order = append(s.order, id)
}

// SelectAll replaces the selection with the given ids, dropping
// duplicates while preserving first appearance.
func (s *Selection) SelectAll(ids []string) {
	s.order = s.order[:0]
	s.index = make(map[string]int, len(ids))
	for _, id := range ids {
		if _, ok := s.index[id]; ok {
			continue
		}
		s.index[id] = len(s.order)
		s.order = append(s.order, id)
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.order = s.order[:0]
	s.index = map[string]int{}
}

// Remove drops one id; a miss is a no-op.
func (s *Selection) Remove(id string) {
	if _, ok := s.index[id]; !ok {
		return
	}
	s.remove(id)
}

func (s *Selection) remove(id string) {
	pos := s.index[id]
	s.order = append(s.order[:pos], s.order[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.order); i++ {
		s.index[s.order[i]] = i
	}
}

// Has reports membership.
func (s *Selection) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// IDs returns the selected ids in insertion order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Selection) Count() int { return len(s.order) }

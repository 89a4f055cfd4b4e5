package models

// ChosenItem is one staged catalog material: the material id and the
// quantity the user intends to order. Presence in a Selection is the "added"
// flag; a removed item simply has no entry.
type ChosenItem struct {
	MaterialID int    `yaml:"material_id"`
	Name       string `yaml:"name,omitempty"`
	Quantity   int    `yaml:"quantity"`
}

// Selection is the staging area of catalog materials chosen for a phase but
// not yet submitted. It is keyed by material id and keeps insertion order so
// the review list and the submitted batch read in the order items were
// picked. All mutation happens from the single UI goroutine that owns the
// picker; Selection does no locking of its own.
type Selection struct {
	byID  map[int]int // material id -> index into items
	items []ChosenItem
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{byID: map[int]int{}}
}

// Put inserts or updates the entry for the given material. Quantities below
// one are stored as one; a selection never holds a zero-quantity entry.
func (s *Selection) Put(materialID int, name string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	if idx, ok := s.byID[materialID]; ok {
		s.items[idx].Quantity = quantity
		if name != "" {
			s.items[idx].Name = name
		}
		return
	}
	s.byID[materialID] = len(s.items)
	s.items = append(s.items, ChosenItem{MaterialID: materialID, Name: name, Quantity: quantity})
}

// Remove deletes the entry for the given material, if present.
func (s *Selection) Remove(materialID int) {
	idx, ok := s.byID[materialID]
	if !ok {
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	delete(s.byID, materialID)
	for i := idx; i < len(s.items); i++ {
		s.byID[s.items[i].MaterialID] = i
	}
}

// Has reports whether the material is currently chosen.
func (s *Selection) Has(materialID int) bool {
	_, ok := s.byID[materialID]
	return ok
}

// Quantity returns the chosen quantity for the material and whether it is
// chosen at all.
func (s *Selection) Quantity(materialID int) (int, bool) {
	idx, ok := s.byID[materialID]
	if !ok {
		return 0, false
	}
	return s.items[idx].Quantity, true
}

// Items returns the chosen items in pick order. The returned slice is a
// copy; mutating it does not affect the selection.
func (s *Selection) Items() []ChosenItem {
	out := make([]ChosenItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of chosen items.
func (s *Selection) Len() int {
	return len(s.items)
}

// SelectionFile is the on-disk form of a selection, written next to the
// project the user is working on so picking and submitting can happen in
// separate invocations.
type SelectionFile struct {
	PhaseID   int          `yaml:"phase_id"`
	PhaseName string       `yaml:"phase_name,omitempty"`
	Items     []ChosenItem `yaml:"items"`
}

// ToFile captures the selection for serialization.
func (s *Selection) ToFile(phaseID int, phaseName string) SelectionFile {
	return SelectionFile{PhaseID: phaseID, PhaseName: phaseName, Items: s.Items()}
}

// FromFile rebuilds a selection from its on-disk form, dropping any entries
// with a non-positive quantity.
func FromFile(f SelectionFile) *Selection {
	s := NewSelection()
	for _, it := range f.Items {
		if it.Quantity < 1 {
			continue
		}
		s.Put(it.MaterialID, it.Name, it.Quantity)
	}
	return s
}

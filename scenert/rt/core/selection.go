package core

import "fmt"

// Slot is the single active choice among a table of preloaded assets.
type Slot struct {
	kind   string
	table  map[string]*Asset
	active *Asset
	name   string
}

func NewSlot(kind string, table map[string]*Asset) *Slot {
	if table == nil {
		table = map[string]*Asset{}
	}
	return &Slot{kind: kind, table: table}
}

// Select activates name. An empty name clears the slot. An unknown name
// also clears it and returns ErrUnknownAsset.
func (s *Slot) Select(name string) error {
	a, ok := s.table[name]
	if !ok {
		s.active, s.name = nil, ""
		if name == "" {
			return nil
		}
		return fmt.Errorf("%w: %s %q", ErrUnknownAsset, s.kind, name)
	}
	s.active, s.name = a, name
	return nil
}

func (s *Slot) Active() (*Asset, bool) {
	return s.active, s.active != nil
}

// Name is the active asset name, or "" when the slot is clear.
func (s *Slot) Name() string {
	return s.name
}

func (s *Slot) Has(name string) bool {
	_, ok := s.table[name]
	return ok
}

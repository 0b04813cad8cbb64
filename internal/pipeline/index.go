package pipeline

import "github.com/ppiankov/supplycheck/internal/model"

// SupplyIndex maps supply ids to their supply type
type SupplyIndex struct {
	types map[string]string
}

// BuildSupplyIndex indexes supplies by id.
// Records without an id or a cardSupplyType are skipped and counted;
// a repeated id overwrites the earlier record.
func BuildSupplyIndex(supplies []model.Supply) (*SupplyIndex, int) {
	idx := &SupplyIndex{types: make(map[string]string, len(supplies))}
	skipped := 0

	for _, s := range supplies {
		if s.ID.IsZero() || s.CardSupplyType == nil {
			skipped++
			continue
		}
		idx.types[s.ID.Key()] = *s.CardSupplyType
	}

	return idx, skipped
}

// Lookup returns the supply type for an id
func (idx *SupplyIndex) Lookup(id model.ID) (string, bool) {
	if id.IsZero() {
		return "", false
	}
	t, ok := idx.types[id.Key()]
	return t, ok
}

// Len returns the number of distinct supply ids
func (idx *SupplyIndex) Len() int {
	return len(idx.types)
}

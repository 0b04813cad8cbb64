package model

// FallbackSupplyType is the classification of a card with no matching supply
const FallbackSupplyType = "normal"

// Known card supply types
const (
	SupplyNormal                  = "normal"
	SupplyBirthday                = "birthday"
	SupplyTermLimited             = "term_limited"
	SupplyColorfulFestivalLimited = "colorful_festival_limited"
	SupplyBloomFestivalLimited    = "bloom_festival_limited"
	SupplyUnitEventLimited        = "unit_event_limited"
	SupplyCollaborationLimited    = "collaboration_limited"
)

var supplyTypeLabels = map[string]string{
	SupplyNormal:                  "Permanent",
	SupplyBirthday:                "Birthday",
	SupplyTermLimited:             "Limited",
	SupplyColorfulFestivalLimited: "Colorful Festival",
	SupplyBloomFestivalLimited:    "Bloom Festival",
	SupplyUnitEventLimited:        "World Link",
	SupplyCollaborationLimited:    "Collaboration",
}

// SupplyTypeLabel returns the display label for a supply type.
// Unknown types are returned unchanged.
func SupplyTypeLabel(supplyType string) string {
	if label, ok := supplyTypeLabels[supplyType]; ok {
		return label
	}
	return supplyType
}

// IsKnownSupplyType reports whether the type is in the catalogue
func IsKnownSupplyType(supplyType string) bool {
	_, ok := supplyTypeLabels[supplyType]
	return ok
}

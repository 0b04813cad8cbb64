package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

var jsonNull = []byte("null")

// Card is a collectible card from cards.json.
// Only the fields the supply mapping needs are decoded.
type Card struct {
	ID           ID `json:"id"`
	CardSupplyID ID `json:"cardSupplyId"` // Absent or null for cards without a supply
}

// UnmarshalJSON rejects a null record
func (c *Card) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return errors.New("card record is null")
	}
	type plain Card
	return json.Unmarshal(data, (*plain)(c))
}

// Supply is a card supply record from cardSupplies.json
type Supply struct {
	ID              ID      `json:"id"`
	CardSupplyType  *string `json:"cardSupplyType"` // nil when the field is missing
	Name            string  `json:"name,omitempty"`
	AssetbundleName string  `json:"assetbundleName,omitempty"`
}

// UnmarshalJSON rejects a null record
func (s *Supply) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return errors.New("supply record is null")
	}
	type plain Supply
	return json.Unmarshal(data, (*plain)(s))
}

package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ID is a master data identifier kept as its compact JSON text.
// The number 1 and the string "1" are different identifiers, and a JSON
// null decodes to the zero ID.
type ID struct {
	raw string
}

// NumberID returns the identifier for a numeric id
func NumberID(n int64) ID {
	return ID{raw: strconv.FormatInt(n, 10)}
}

// StringID returns the identifier for a string id
func StringID(s string) ID {
	b, _ := json.Marshal(s)
	return ID{raw: string(b)}
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ID) UnmarshalJSON(data []byte) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	if s := buf.String(); s != "null" {
		id.raw = s
	} else {
		id.raw = ""
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (id ID) MarshalJSON() ([]byte, error) {
	if id.raw == "" {
		return []byte("null"), nil
	}
	return []byte(id.raw), nil
}

// IsZero reports whether the identifier was absent or null
func (id ID) IsZero() bool {
	return id.raw == ""
}

// Key returns the lookup key for the identifier
func (id ID) Key() string {
	return id.raw
}

func (id ID) String() string {
	if id.raw == "" {
		return "null"
	}
	return id.raw
}

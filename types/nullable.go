package types

import (
	"bytes"
	"encoding/json"
)

// NullableSlice is a list field documented as "array or null". A null value
// decodes to an empty, non-nil slice. UnmarshalJSON only runs for a key
// that is present, so records holding one normalise an absent key
// themselves.
type NullableSlice[T any] []T

// UnmarshalJSON implements json.Unmarshaler.
func (s *NullableSlice[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = NullableSlice[T]{}
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	*s = items
	return nil
}

// MarshalJSON implements json.Marshaler. An empty slice encodes as [].
func (s NullableSlice[T]) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(s))
}

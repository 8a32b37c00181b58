package dto

import "encoding/json"

// Optional is a three-state field for partial updates: absent from the
// request body (Set is false), explicit null (Set true, Valid false), or a
// value (Set and Valid true). An absent field preserves the stored value,
// an explicit null clears it.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// UnmarshalJSON is only invoked for keys present in the payload, so Set
// records key presence.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Valid = false
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Some wraps a value into a present Optional. Mostly useful in tests.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns an explicit-null Optional.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Presence is the state of an optional input field.
type Presence uint8

const (
	// Unset means the caller did not mention the field at all.
	Unset Presence = iota
	// Null means the caller sent an explicit null.
	Null
	// Set means the caller sent a value.
	Set
)

// Field carries an optional input value together with whether, and how, the
// caller supplied it. Only Null and Set fields are forwarded upstream.
type Field[T any] struct {
	Presence Presence
	Value    T
}

// Value returns a Field holding v.
func Value[T any](v T) Field[T] {
	return Field[T]{Presence: Set, Value: v}
}

// NullOf returns an explicitly-null Field.
func NullOf[T any]() Field[T] {
	return Field[T]{Presence: Null}
}

func (f Field[T]) IsSet() bool   { return f.Presence == Set }
func (f Field[T]) IsNull() bool  { return f.Presence == Null }
func (f Field[T]) IsUnset() bool { return f.Presence == Unset }

// UnmarshalJSON is only invoked when the key is present in the input, so a
// decoded Field is never Unset. Unknown keys in nested objects are rejected.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Field[T]{Presence: Null}
		return nil
	}
	var v T
	if err := decodeStrict(data, &v); err != nil {
		return err
	}
	*f = Field[T]{Presence: Set, Value: v}
	return nil
}

// ParseArgument reads key from loosely-typed tool arguments into a Field.
func ParseArgument[T any](args map[string]any, key string) (Field[T], error) {
	raw, ok := args[key]
	if !ok {
		return Field[T]{}, nil
	}
	if raw == nil {
		return NullOf[T](), nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return Field[T]{}, invalid(key, "%v", err)
	}
	return ParseJSON[T](key, data)
}

// ParseJSON decodes a JSON document supplied for argument into a Field. Empty
// input is treated as an absent argument.
func ParseJSON[T any](argument string, data []byte) (Field[T], error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Field[T]{}, nil
	}
	var f Field[T]
	if err := f.UnmarshalJSON(data); err != nil {
		return Field[T]{}, invalid(argument, "%v", err)
	}
	return f, nil
}

func decodeStrict(data []byte, v any) error {
	if err := checkKeys(data, reflect.TypeOf(v).Elem()); err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}

// checkKeys rejects object keys that do not match a field's json name
// exactly. encoding/json matches keys case-insensitively, so without this
// "ISAVAILABLE" would be accepted as "isAvailable". Malformed input is left
// for the decoder to report.
func checkKeys(data []byte, t reflect.Type) error {
	switch t.Kind() {
	case reflect.Slice:
		if t.Elem().Kind() != reflect.Struct {
			return nil
		}
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		for i, item := range items {
			if err := checkKeys(item, t.Elem()); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	case reflect.Struct:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		names := jsonNames(t)
		for _, key := range slices.Sorted(maps.Keys(obj)) {
			if !names[key] {
				return fmt.Errorf("unknown field %q", key)
			}
		}
	}
	return nil
}

func jsonNames(t reflect.Type) map[string]bool {
	names := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		names[name] = true
	}
	return names
}

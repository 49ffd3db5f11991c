package catalog

import (
	"errors"
	"testing"
)

func TestParseArgument_States(t *testing.T) {
	args := map[string]any{"null": nil, "set": "x"}

	f, err := ParseArgument[string](args, "missing")
	if err != nil || !f.IsUnset() {
		t.Fatalf("expected unset field, got %+v err=%v", f, err)
	}
	f, err = ParseArgument[string](args, "null")
	if err != nil || !f.IsNull() {
		t.Fatalf("expected null field, got %+v err=%v", f, err)
	}
	f, err = ParseArgument[string](args, "set")
	if err != nil || !f.IsSet() || f.Value != "x" {
		t.Fatalf("expected set field, got %+v err=%v", f, err)
	}
}

func TestParseArgument_WrongType(t *testing.T) {
	_, err := ParseArgument[string](map[string]any{"search": 12}, "search")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Argument != "search" {
		t.Fatalf("unexpected argument %q", ve.Argument)
	}
}

func TestParseJSON_NestedPresence(t *testing.T) {
	f, err := ParseJSON[StringFilter]("name", []byte(`{"eq": null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.IsSet() || !f.Value.Eq.IsNull() || !f.Value.OneOf.IsUnset() {
		t.Fatalf("unexpected presence: %+v", f)
	}
}

func TestParseJSON_Empty(t *testing.T) {
	f, err := ParseJSON[ProductWhere]("where", []byte("  "))
	if err != nil || !f.IsUnset() {
		t.Fatalf("expected unset field, got %+v err=%v", f, err)
	}
}

func TestParseJSON_ExactKeys(t *testing.T) {
	_, err := ParseJSON[ProductOrder]("sortBy", []byte(`{"Field": "NAME"}`))
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Argument != "sortBy" {
		t.Fatalf("expected sortBy ValidationError, got %v", err)
	}

	f, err := ParseJSON[ProductOrder]("sortBy", []byte(`{"field": "NAME", "attributeId": "QXR0cmlidXRlOjE="}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Value.Field.Value != "NAME" || !f.Value.AttributeID.IsSet() {
		t.Fatalf("unexpected order %+v", f.Value)
	}
}

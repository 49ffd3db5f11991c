package catalog

import (
	"errors"
	"reflect"
	"testing"
)

func TestTranslateWhere_OnlyMentionedFields(t *testing.T) {
	where, err := ParseArgument[ProductWhere](map[string]any{
		"where": map[string]any{
			"isAvailable": true,
			"category":    nil,
			"name":        map[string]any{"oneOf": []any{"Mug", "Cup"}},
		},
	}, "where")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got, err := TranslateWhere(where)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	want := map[string]any{
		"isAvailable": true,
		"category":    nil,
		"name":        map[string]any{"oneOf": []string{"Mug", "Cup"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected translation:\n got %#v\nwant %#v", got, want)
	}
}

func TestTranslateWhere_TopLevel(t *testing.T) {
	got, err := TranslateWhere(Field[ProductWhere]{})
	if err != nil || got != nil {
		t.Fatalf("unset filter should translate to nil, got %#v err=%v", got, err)
	}
	got, err = TranslateWhere(NullOf[ProductWhere]())
	if err != nil || got != nil {
		t.Fatalf("null filter should translate to nil, got %#v err=%v", got, err)
	}
	got, err = TranslateWhere(Value(ProductWhere{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("empty filter should translate to an empty map, got %#v", got)
	}
}

func TestTranslateWhere_Nested(t *testing.T) {
	where, err := ParseJSON[ProductWhere]("where", []byte(`{
		"OR": [
			{"price": {"range": {"gte": 10}}},
			{"updatedAt": {"range": {"gte": "2024-01-01T00:00:00Z"}}}
		]
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := TranslateWhere(where)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	want := map[string]any{
		"OR": []any{
			map[string]any{"price": map[string]any{"range": map[string]any{"gte": 10.0}}},
			map[string]any{"updatedAt": map[string]any{"range": map[string]any{"gte": "2024-01-01T00:00:00Z"}}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected translation:\n got %#v\nwant %#v", got, want)
	}
}

func TestTranslateWhere_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown field":   `{"colour": {"eq": "red"}}`,
		"bad enum":        `{"stockAvailability": "SOMETIMES"}`,
		"bad timestamp":   `{"publishedFrom": "yesterday"}`,
		"nested bad enum": `{"AND": [{"stockAvailability": "LOW"}]}`,
		"key case":        `{"ISAVAILABLE": true}`,
		"list key case":   `{"and": [{"slug": {"eq": "x"}}]}`,
		"nested key case": `{"AND": [{"Slug": {"eq": "x"}}]}`,
		"filter key case": `{"name": {"EQ": "x"}}`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			where, err := ParseJSON[ProductWhere]("where", []byte(input))
			if err == nil {
				_, err = TranslateWhere(where)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Argument != "where" {
				t.Fatalf("unexpected argument %q", ve.Argument)
			}
		})
	}
}

func TestTranslateOrder(t *testing.T) {
	order, err := ParseJSON[ProductOrder]("sortBy", []byte(`{"field": "PRICE", "direction": "DESC"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := TranslateOrder(order)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	want := map[string]any{"field": "PRICE", "direction": "DESC"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected translation: %#v", got)
	}

	_, err = TranslateOrder(Value(ProductOrder{Direction: Value("SIDEWAYS")}))
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Argument != "sortBy" {
		t.Fatalf("expected sortBy ValidationError, got %v", err)
	}
}

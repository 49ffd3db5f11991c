package catalog

import (
	"fmt"
	"time"
)

// ProductWhere mirrors the subset of the upstream ProductWhereInput that the
// products tool accepts. Only fields the caller mentioned are forwarded.
type ProductWhere struct {
	IDs                   Field[[]string]       `json:"ids"`
	Name                  Field[StringFilter]   `json:"name"`
	Slug                  Field[StringFilter]   `json:"slug"`
	ProductType           Field[StringFilter]   `json:"productType"`
	Category              Field[StringFilter]   `json:"category"`
	Collection            Field[StringFilter]   `json:"collection"`
	IsAvailable           Field[bool]           `json:"isAvailable"`
	IsPublished           Field[bool]           `json:"isPublished"`
	IsVisibleInListing    Field[bool]           `json:"isVisibleInListing"`
	HasCategory           Field[bool]           `json:"hasCategory"`
	GiftCard              Field[bool]           `json:"giftCard"`
	HasPreorderedVariants Field[bool]           `json:"hasPreorderedVariants"`
	PublishedFrom         Field[string]         `json:"publishedFrom"`
	AvailableFrom         Field[string]         `json:"availableFrom"`
	Price                 Field[DecimalFilter]  `json:"price"`
	MinimalPrice          Field[DecimalFilter]  `json:"minimalPrice"`
	UpdatedAt             Field[DateTimeFilter] `json:"updatedAt"`
	StockAvailability     Field[string]         `json:"stockAvailability"`
	And                   Field[[]ProductWhere] `json:"AND"`
	Or                    Field[[]ProductWhere] `json:"OR"`
}

// StringFilter matches exact values. Used for both string and global ID filters.
type StringFilter struct {
	Eq    Field[string]   `json:"eq"`
	OneOf Field[[]string] `json:"oneOf"`
}

type DecimalFilter struct {
	Eq    Field[float64]      `json:"eq"`
	OneOf Field[[]float64]    `json:"oneOf"`
	Range Field[DecimalRange] `json:"range"`
}

type DecimalRange struct {
	Gte Field[float64] `json:"gte"`
	Lte Field[float64] `json:"lte"`
}

type DateTimeFilter struct {
	Eq    Field[string]        `json:"eq"`
	OneOf Field[[]string]      `json:"oneOf"`
	Range Field[DateTimeRange] `json:"range"`
}

type DateTimeRange struct {
	Gte Field[string] `json:"gte"`
	Lte Field[string] `json:"lte"`
}

// ProductOrder mirrors the upstream ProductOrder input.
type ProductOrder struct {
	Field       Field[string] `json:"field"`
	Direction   Field[string] `json:"direction"`
	AttributeID Field[string] `json:"attributeId"`
	Channel     Field[string] `json:"channel"`
}

var stockAvailabilityValues = map[string]bool{
	"IN_STOCK":     true,
	"OUT_OF_STOCK": true,
}

var orderDirectionValues = map[string]bool{
	"ASC":  true,
	"DESC": true,
}

var orderFieldValues = map[string]bool{
	"NAME":             true,
	"RANK":             true,
	"PRICE":            true,
	"MINIMAL_PRICE":    true,
	"LAST_MODIFIED":    true,
	"DATE":             true,
	"TYPE":             true,
	"PUBLISHED":        true,
	"PUBLICATION_DATE": true,
	"PUBLISHED_AT":     true,
	"LAST_MODIFIED_AT": true,
	"COLLECTION":       true,
	"RATING":           true,
	"CREATED_AT":       true,
}

// TranslateWhere converts a filter argument into the sparse map sent upstream.
// An absent or null argument yields nil so the variable is omitted entirely;
// an empty object yields an empty, non-nil map.
func TranslateWhere(f Field[ProductWhere]) (map[string]any, error) {
	if !f.IsSet() {
		return nil, nil
	}
	out, err := f.Value.translate()
	if err != nil {
		return nil, &ValidationError{Argument: "where", Reason: err.Error()}
	}
	return out, nil
}

// TranslateOrder converts a sort argument the same way TranslateWhere does.
func TranslateOrder(f Field[ProductOrder]) (map[string]any, error) {
	if !f.IsSet() {
		return nil, nil
	}
	out, err := f.Value.translate()
	if err != nil {
		return nil, &ValidationError{Argument: "sortBy", Reason: err.Error()}
	}
	return out, nil
}

type translator interface {
	translate() (map[string]any, error)
}

func (w ProductWhere) translate() (map[string]any, error) {
	out := make(map[string]any)
	put(out, "ids", w.IDs)
	put(out, "isAvailable", w.IsAvailable)
	put(out, "isPublished", w.IsPublished)
	put(out, "isVisibleInListing", w.IsVisibleInListing)
	put(out, "hasCategory", w.HasCategory)
	put(out, "giftCard", w.GiftCard)
	put(out, "hasPreorderedVariants", w.HasPreorderedVariants)

	for key, f := range map[string]Field[string]{
		"publishedFrom": w.PublishedFrom,
		"availableFrom": w.AvailableFrom,
	} {
		if err := checkDateTime(key, f); err != nil {
			return nil, err
		}
		put(out, key, f)
	}

	if err := checkEnum("stockAvailability", w.StockAvailability, stockAvailabilityValues); err != nil {
		return nil, err
	}
	put(out, "stockAvailability", w.StockAvailability)

	for key, f := range map[string]Field[StringFilter]{
		"name":        w.Name,
		"slug":        w.Slug,
		"productType": w.ProductType,
		"category":    w.Category,
		"collection":  w.Collection,
	} {
		if err := putInput(out, key, f); err != nil {
			return nil, err
		}
	}
	if err := putInput(out, "price", w.Price); err != nil {
		return nil, err
	}
	if err := putInput(out, "minimalPrice", w.MinimalPrice); err != nil {
		return nil, err
	}
	if err := putInput(out, "updatedAt", w.UpdatedAt); err != nil {
		return nil, err
	}
	if err := putInputs(out, "AND", w.And); err != nil {
		return nil, err
	}
	if err := putInputs(out, "OR", w.Or); err != nil {
		return nil, err
	}
	return out, nil
}

func (s StringFilter) translate() (map[string]any, error) {
	out := make(map[string]any)
	put(out, "eq", s.Eq)
	put(out, "oneOf", s.OneOf)
	return out, nil
}

func (d DecimalFilter) translate() (map[string]any, error) {
	out := make(map[string]any)
	put(out, "eq", d.Eq)
	put(out, "oneOf", d.OneOf)
	if err := putInput(out, "range", d.Range); err != nil {
		return nil, err
	}
	return out, nil
}

func (r DecimalRange) translate() (map[string]any, error) {
	out := make(map[string]any)
	put(out, "gte", r.Gte)
	put(out, "lte", r.Lte)
	return out, nil
}

func (d DateTimeFilter) translate() (map[string]any, error) {
	out := make(map[string]any)
	if err := checkDateTime("eq", d.Eq); err != nil {
		return nil, err
	}
	put(out, "eq", d.Eq)
	if d.OneOf.IsSet() {
		for i, v := range d.OneOf.Value {
			if _, err := time.Parse(time.RFC3339, v); err != nil {
				return nil, fmt.Errorf("oneOf[%d]: %q is not an RFC 3339 timestamp", i, v)
			}
		}
	}
	put(out, "oneOf", d.OneOf)
	if err := putInput(out, "range", d.Range); err != nil {
		return nil, err
	}
	return out, nil
}

func (r DateTimeRange) translate() (map[string]any, error) {
	out := make(map[string]any)
	for key, f := range map[string]Field[string]{"gte": r.Gte, "lte": r.Lte} {
		if err := checkDateTime(key, f); err != nil {
			return nil, err
		}
		put(out, key, f)
	}
	return out, nil
}

func (o ProductOrder) translate() (map[string]any, error) {
	if err := checkEnum("field", o.Field, orderFieldValues); err != nil {
		return nil, err
	}
	if err := checkEnum("direction", o.Direction, orderDirectionValues); err != nil {
		return nil, err
	}
	out := make(map[string]any)
	put(out, "field", o.Field)
	put(out, "direction", o.Direction)
	put(out, "attributeId", o.AttributeID)
	put(out, "channel", o.Channel)
	return out, nil
}

func put[T any](out map[string]any, key string, f Field[T]) {
	switch f.Presence {
	case Null:
		out[key] = nil
	case Set:
		out[key] = f.Value
	}
}

func putInput[T translator](out map[string]any, key string, f Field[T]) error {
	switch f.Presence {
	case Null:
		out[key] = nil
	case Set:
		v, err := f.Value.translate()
		if err != nil {
			return fmt.Errorf("%s.%w", key, err)
		}
		out[key] = v
	}
	return nil
}

func putInputs[T translator](out map[string]any, key string, f Field[[]T]) error {
	switch f.Presence {
	case Null:
		out[key] = nil
	case Set:
		items := make([]any, 0, len(f.Value))
		for i, item := range f.Value {
			v, err := item.translate()
			if err != nil {
				return fmt.Errorf("%s[%d].%w", key, i, err)
			}
			items = append(items, v)
		}
		out[key] = items
	}
	return nil
}

func checkEnum(key string, f Field[string], allowed map[string]bool) error {
	if f.IsSet() && !allowed[f.Value] {
		return fmt.Errorf("%s: unsupported value %q", key, f.Value)
	}
	return nil
}

func checkDateTime(key string, f Field[string]) error {
	if !f.IsSet() {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, f.Value); err != nil {
		return fmt.Errorf("%s: %q is not an RFC 3339 timestamp", key, f.Value)
	}
	return nil
}

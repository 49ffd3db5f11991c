package catalog

import (
	"encoding/json"
	"time"
)

// Product is the canonical catalog record. Values are built once from an
// upstream node and never modified afterwards. Missing optional values are
// serialized as null rather than dropped.
type Product struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Slug              string     `json:"slug"`
	Description       string     `json:"description"`
	ExternalReference *string    `json:"externalReference" jsonschema:"nullable"`
	ProductType       *NamedRef  `json:"productType" jsonschema:"nullable"`
	Category          *NamedRef  `json:"category" jsonschema:"nullable"`
	Created           *time.Time `json:"created" jsonschema:"nullable"`
	UpdatedAt         *time.Time `json:"updatedAt" jsonschema:"nullable"`
	Thumbnail         *Image     `json:"thumbnail" jsonschema:"nullable"`
	Pricing           *Pricing   `json:"pricing" jsonschema:"nullable"`
}

type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Image struct {
	URL string  `json:"url"`
	Alt *string `json:"alt" jsonschema:"nullable"`
}

// Pricing is channel dependent; amounts are gross.
type Pricing struct {
	OnSale                 bool        `json:"onSale"`
	PriceRange             *MoneyRange `json:"priceRange" jsonschema:"nullable"`
	PriceRangeUndiscounted *MoneyRange `json:"priceRangeUndiscounted" jsonschema:"nullable"`
}

type MoneyRange struct {
	Start *Money `json:"start" jsonschema:"nullable"`
	Stop  *Money `json:"stop" jsonschema:"nullable"`
}

type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// AsMap serializes the product into a generic key/value mapping.
func (p Product) AsMap() (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

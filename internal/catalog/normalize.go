package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// NormalizeProduct builds a Product from a raw upstream node. Only known
// fields are read, so anything the upstream schema adds later is dropped.
func NormalizeProduct(raw []byte) (Product, error) {
	if !gjson.ValidBytes(raw) {
		return Product{}, errors.New("product node is not valid JSON")
	}
	node := gjson.ParseBytes(raw)
	if !node.IsObject() {
		return Product{}, errors.New("product node is not an object")
	}
	id := node.Get("id").String()
	if id == "" {
		return Product{}, errors.New("product node has no id")
	}

	created, err := timestamp(node.Get("created"))
	if err != nil {
		return Product{}, fmt.Errorf("product %s: created: %w", id, err)
	}
	updated, err := timestamp(node.Get("updatedAt"))
	if err != nil {
		return Product{}, fmt.Errorf("product %s: updatedAt: %w", id, err)
	}

	return Product{
		ID:                id,
		Name:              node.Get("name").String(),
		Slug:              node.Get("slug").String(),
		Description:       text(node.Get("description")),
		ExternalReference: optionalString(node.Get("externalReference")),
		ProductType:       namedRef(node.Get("productType")),
		Category:          namedRef(node.Get("category")),
		Created:           created,
		UpdatedAt:         updated,
		Thumbnail:         image(node.Get("thumbnail")),
		Pricing:           pricing(node.Get("pricing")),
	}, nil
}

// text keeps rich-text JSON descriptions verbatim.
func text(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.JSON:
		return r.Raw
	case gjson.Null:
		return ""
	default:
		return r.String()
	}
}

func optionalString(r gjson.Result) *string {
	if r.Type != gjson.String {
		return nil
	}
	s := r.Str
	return &s
}

func timestamp(r gjson.Result) (*time.Time, error) {
	if r.Type != gjson.String || r.Str == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, r.Str)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func namedRef(r gjson.Result) *NamedRef {
	if !r.IsObject() {
		return nil
	}
	return &NamedRef{ID: r.Get("id").String(), Name: r.Get("name").String()}
}

func image(r gjson.Result) *Image {
	if !r.IsObject() {
		return nil
	}
	url := r.Get("url").String()
	if url == "" {
		return nil
	}
	return &Image{URL: url, Alt: optionalString(r.Get("alt"))}
}

func pricing(r gjson.Result) *Pricing {
	if !r.IsObject() {
		return nil
	}
	return &Pricing{
		OnSale:                 r.Get("onSale").Bool(),
		PriceRange:             moneyRange(r.Get("priceRange")),
		PriceRangeUndiscounted: moneyRange(r.Get("priceRangeUndiscounted")),
	}
}

func moneyRange(r gjson.Result) *MoneyRange {
	if !r.IsObject() {
		return nil
	}
	return &MoneyRange{Start: money(r.Get("start.gross")), Stop: money(r.Get("stop.gross"))}
}

func money(r gjson.Result) *Money {
	if !r.IsObject() {
		return nil
	}
	return &Money{Amount: r.Get("amount").Float(), Currency: r.Get("currency").String()}
}

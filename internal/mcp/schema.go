package mcp

// Input schemas for the structured filter and sort arguments. They describe
// the subset of the upstream inputs that the catalog package accepts.

var stringFilterSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"eq":    map[string]any{"type": "string"},
		"oneOf": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
	"additionalProperties": false,
}

var decimalFilterSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"eq":    map[string]any{"type": "number"},
		"oneOf": map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
		"range": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"gte": map[string]any{"type": "number"},
				"lte": map[string]any{"type": "number"},
			},
			"additionalProperties": false,
		},
	},
	"additionalProperties": false,
}

var dateTimeSchema = map[string]any{"type": "string", "format": "date-time"}

var dateTimeFilterSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"eq":    dateTimeSchema,
		"oneOf": map[string]any{"type": "array", "items": dateTimeSchema},
		"range": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"gte": dateTimeSchema,
				"lte": dateTimeSchema,
			},
			"additionalProperties": false,
		},
	},
	"additionalProperties": false,
}

var booleanSchema = map[string]any{"type": "boolean"}

func productWhereProperties() map[string]any {
	props := map[string]any{
		"ids":                   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"name":                  stringFilterSchema,
		"slug":                  stringFilterSchema,
		"productType":           stringFilterSchema,
		"category":              stringFilterSchema,
		"collection":            stringFilterSchema,
		"isAvailable":           booleanSchema,
		"isPublished":           booleanSchema,
		"isVisibleInListing":    booleanSchema,
		"hasCategory":           booleanSchema,
		"giftCard":              booleanSchema,
		"hasPreorderedVariants": booleanSchema,
		"publishedFrom":         dateTimeSchema,
		"availableFrom":         dateTimeSchema,
		"price":                 decimalFilterSchema,
		"minimalPrice":          decimalFilterSchema,
		"updatedAt":             dateTimeFilterSchema,
		"stockAvailability":     map[string]any{"type": "string", "enum": []string{"IN_STOCK", "OUT_OF_STOCK"}},
	}
	nested := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "object", "description": "Nested product filter with the same fields."},
	}
	props["AND"] = nested
	props["OR"] = nested
	return props
}

var productOrderProperties = map[string]any{
	"field": map[string]any{
		"type": "string",
		"enum": []string{
			"NAME", "RANK", "PRICE", "MINIMAL_PRICE", "LAST_MODIFIED", "DATE", "TYPE",
			"PUBLISHED", "PUBLICATION_DATE", "PUBLISHED_AT", "LAST_MODIFIED_AT",
			"COLLECTION", "RATING", "CREATED_AT",
		},
	},
	"direction":   map[string]any{"type": "string", "enum": []string{"ASC", "DESC"}},
	"attributeId": map[string]any{"type": "string"},
	"channel":     map[string]any{"type": "string"},
}

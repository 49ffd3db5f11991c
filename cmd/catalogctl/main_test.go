package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/roivaz/catalog-mcp/internal/catalog"
)

func TestWrite_Formats(t *testing.T) {
	results := catalog.SearchResults{Results: []catalog.SearchResult{{ID: "1", Title: "Red Mug", URL: "https://demo.nimara.store/products/red-mug"}}}
	t.Cleanup(func() { output = "json" })

	var buf bytes.Buffer
	output = "json"
	if err := write(&buf, results); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), `"title": "Red Mug"`) {
		t.Fatalf("unexpected json output:\n%s", buf.String())
	}

	buf.Reset()
	output = "yaml"
	if err := write(&buf, results); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "title: Red Mug") {
		t.Fatalf("unexpected yaml output:\n%s", buf.String())
	}

	output = "xml"
	if err := write(&buf, results); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestSchemaURLFromFile(t *testing.T) {
	path := writeFile(t, `
[project]
name = "store"

[tool.ariadne-codegen]
remote_schema_url = "https://store.example.com/graphql/"
target_package_name = "graphql_client"
`)
	url, err := SchemaURLFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://store.example.com/graphql/" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestSchemaURLFromFile_MissingKey(t *testing.T) {
	path := writeFile(t, "[tool.other]\nvalue = 1\n")
	_, err := SchemaURLFromFile(path)
	if err == nil || !strings.Contains(err.Error(), "remote_schema_url") {
		t.Fatalf("expected missing key error, got %v", err)
	}
}

func TestResolveGraphQLURL_PrefersExplicitValue(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set(KeyGraphQLURL, "https://explicit.example.com/graphql/")
	viper.Set(KeySchemaConfig, filepath.Join(t.TempDir(), "missing.toml"))

	url, err := ResolveGraphQLURL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://explicit.example.com/graphql/" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestResolveGraphQLURL_FallsBackToSchemaConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	path := writeFile(t, "[tool.ariadne-codegen]\nremote_schema_url = \"https://fallback.example.com/graphql/\"\n")
	viper.Set(KeySchemaConfig, path)

	url, err := ResolveGraphQLURL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://fallback.example.com/graphql/" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestUpstreamTimeout(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set(KeyUpstreamTimeout, "5s")
	if got := UpstreamTimeout().String(); got != "5s" {
		t.Fatalf("expected 5s, got %s", got)
	}
	viper.Set(KeyUpstreamTimeout, "bogus")
	if got := UpstreamTimeout().String(); got != "30s" {
		t.Fatalf("expected fallback 30s, got %s", got)
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type pyproject struct {
	Tool struct {
		AriadneCodegen struct {
			RemoteSchemaURL string `toml:"remote_schema_url"`
		} `toml:"ariadne-codegen"`
	} `toml:"tool"`
}

// ResolveGraphQLURL returns the configured GraphQL endpoint. When none is set
// explicitly it falls back to the remote_schema_url that the code generator
// section of the schema config file points at.
func ResolveGraphQLURL() (string, error) {
	if url := strings.TrimSpace(GraphQLURL()); url != "" {
		return url, nil
	}
	path := SchemaConfig()
	if path == "" {
		return "", errors.New("graphql_url is not set and no schema config file is configured")
	}
	url, err := SchemaURLFromFile(path)
	if err != nil {
		return "", fmt.Errorf("graphql_url is not set: %w", err)
	}
	return url, nil
}

// SchemaURLFromFile reads [tool.ariadne-codegen].remote_schema_url from a TOML file.
func SchemaURLFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read schema config %s: %w", path, err)
	}
	var cfg pyproject
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("parse schema config %s: %w", path, err)
	}
	url := strings.TrimSpace(cfg.Tool.AriadneCodegen.RemoteSchemaURL)
	if url == "" {
		return "", fmt.Errorf("remote_schema_url missing from [tool.ariadne-codegen] in %s", path)
	}
	return url, nil
}

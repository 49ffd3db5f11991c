package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roivaz/catalog-mcp/internal/catalog"
)

// Init wires environment variables, an optional .env file and the root
// command's persistent flags into viper. Flags are registered with dashes and
// bound to the underscore keys used everywhere else.
func Init(root *cobra.Command) {
	viper.SetEnvPrefix("CATALOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		root.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			_ = viper.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
		})
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeySchemaConfig, "pyproject.toml")
	viper.SetDefault(KeyDefaultChannel, catalog.DefaultChannel)
	viper.SetDefault(KeyStorefrontURL, catalog.DefaultStorefrontURL)
	viper.SetDefault(KeyPageSize, catalog.DefaultPageSize)
	viper.SetDefault(KeyUpstreamTimeout, "30s")
	viper.SetDefault(KeyGraphQLDebug, false)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyHost, "127.0.0.1")
	viper.SetDefault(KeyPort, 8000)
	viper.SetDefault(KeyEndpointPath, "/mcp")
}

func GraphQLURL() string     { return viper.GetString(KeyGraphQLURL) }
func SchemaConfig() string   { return viper.GetString(KeySchemaConfig) }
func DefaultChannel() string { return viper.GetString(KeyDefaultChannel) }
func StorefrontURL() string  { return viper.GetString(KeyStorefrontURL) }
func PageSize() int          { return viper.GetInt(KeyPageSize) }
func GraphQLDebug() bool     { return viper.GetBool(KeyGraphQLDebug) }
func LogLevel() string       { return viper.GetString(KeyLogLevel) }
func Host() string           { return viper.GetString(KeyHost) }
func Port() int              { return viper.GetInt(KeyPort) }
func EndpointPath() string   { return viper.GetString(KeyEndpointPath) }

// UpstreamTimeout returns the per-request timeout applied to the GraphQL HTTP
// client. Invalid or empty values fall back to 30s.
func UpstreamTimeout() time.Duration {
	d, err := parseDuration(viper.GetString(KeyUpstreamTimeout), 30*time.Second)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	return time.ParseDuration(trimmed)
}

// AddCatalogFlags registers the flags shared by every binary that talks to
// the catalog API.
func AddCatalogFlags(fs *pflag.FlagSet) {
	fs.String("graphql-url", "", "Saleor GraphQL endpoint (defaults to remote_schema_url from the schema config)")
	fs.String("schema-config", "pyproject.toml", "TOML file holding [tool.ariadne-codegen].remote_schema_url")
	fs.String("default-channel", catalog.DefaultChannel, "Channel used by the search and fetch tools")
	fs.String("storefront-url", catalog.DefaultStorefrontURL, "Base URL of public product pages")
	fs.Int("page-size", catalog.DefaultPageSize, "Products requested per upstream page")
	fs.String("upstream-timeout", "30s", "Timeout for a single GraphQL request")
	fs.Bool("graphql-debug", false, "Log GraphQL requests and responses")
	fs.String("log-level", "info", "Log level (debug, info)")
}

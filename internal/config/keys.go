package config

const (
	KeyGraphQLURL      = "graphql_url"
	KeySchemaConfig    = "schema_config"
	KeyDefaultChannel  = "default_channel"
	KeyStorefrontURL   = "storefront_url"
	KeyPageSize        = "page_size"
	KeyUpstreamTimeout = "upstream_timeout"
	KeyGraphQLDebug    = "graphql_debug"
	KeyLogLevel        = "log_level"
	KeyHost            = "host"
	KeyPort            = "port"
	KeyEndpointPath    = "endpoint_path"
)

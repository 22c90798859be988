package config

import "github.com/dmitrymomot/rulekit/pkg/lookup"

// App is the configuration of the rulekit binary.
type App struct {
	Env             string `env:"RULEKIT_ENV" envDefault:"development"`
	Service         string `env:"RULEKIT_SERVICE" envDefault:"rulekit"`
	LogLevel        string `env:"RULEKIT_LOG_LEVEL" envDefault:"info"`
	SchemaDir       string `env:"RULEKIT_SCHEMA_DIR" envDefault:"schemas"`
	SchemaCacheSize int    `env:"RULEKIT_SCHEMA_CACHE_SIZE" envDefault:"128"`

	// Lookup backends for db::exists and db::unique. Postgres wins when both
	// connection strings are set; with neither the db rules are not registered.
	Postgres lookup.PostgresConfig `envPrefix:"RULEKIT_"`
	Redis    lookup.RedisConfig    `envPrefix:"RULEKIT_"`
}

// LookupBackend names the configured lookup backend: "postgres", "redis" or "".
func (a App) LookupBackend() string {
	switch {
	case a.Postgres.ConnectionString != "":
		return "postgres"
	case a.Redis.ConnectionURL != "":
		return "redis"
	default:
		return ""
	}
}

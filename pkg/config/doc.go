// Package config loads configuration structs from the environment.
//
// Values come from process variables, optionally seeded from .env files via
// github.com/joho/godotenv, and are parsed with github.com/caarlos0/env/v11
// field tags. Each struct type is parsed once per process and cached; tests
// call ResetCache between cases.
//
//	config.MustLoadEnv(".env.local")
//
//	var app config.App
//	config.MustLoad(&app)
//
// App holds the settings of the rulekit binary. All of its variables carry
// the RULEKIT_ prefix, e.g. RULEKIT_SCHEMA_DIR or RULEKIT_PG_CONN_URL.
// Library packages never read the environment themselves; they take
// functional options.
package config

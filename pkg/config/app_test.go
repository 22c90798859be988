package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/config"
)

func TestAppDefaults(t *testing.T) {
	config.ResetCache()

	var app config.App
	require.NoError(t, config.Load(&app))
	assert.Equal(t, "development", app.Env)
	assert.Equal(t, "rulekit", app.Service)
	assert.Equal(t, "schemas", app.SchemaDir)
	assert.Equal(t, 128, app.SchemaCacheSize)
	assert.Equal(t, "rulekit", app.Redis.Prefix)
	assert.Equal(t, 2*time.Second, app.Postgres.RetryInterval)
	assert.Empty(t, app.LookupBackend())
}

func TestAppLookupBackend(t *testing.T) {
	config.ResetCache()
	t.Setenv("RULEKIT_REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("RULEKIT_LOOKUP_PREFIX", "app")

	var app config.App
	require.NoError(t, config.Load(&app))
	assert.Equal(t, "redis://localhost:6379/1", app.Redis.ConnectionURL)
	assert.Equal(t, "app", app.Redis.Prefix)
	assert.Equal(t, "redis", app.LookupBackend())

	config.ResetCache()
	t.Setenv("RULEKIT_PG_CONN_URL", "postgres://localhost/app")
	require.NoError(t, config.Load(&app))
	assert.Equal(t, "postgres", app.LookupBackend())
}

package cmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/cmd/rulekit/cmd"
	"github.com/dmitrymomot/rulekit/pkg/config"
	"github.com/dmitrymomot/rulekit/pkg/engine"
)

// The commands read the process environment through the shared config
// cache, so these tests do not run in parallel.

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	config.ResetCache()

	root := cmd.NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const signupSchema = `
email: required|email|preTrim
age: integer|between(18,99)
`

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "signup.yaml", signupSchema)

	t.Run("valid", func(t *testing.T) {
		data := writeFile(t, dir, "ok.json", `{"email":" ann@example.com ","age":30}`)
		out, err := run(t, "", "validate", "--schema", schemaPath, "--data", data)
		require.NoError(t, err)

		var results engine.Results
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		assert.True(t, results.Valid())
		assert.Equal(t, "ann@example.com", results["email"].ProcessedValue)
	})

	t.Run("invalid", func(t *testing.T) {
		data := writeFile(t, dir, "bad.yaml", "email: nope\nage: 12\n")
		out, err := run(t, "", "validate", "-s", schemaPath, "-d", data, "--errors")
		assert.ErrorIs(t, err, cmd.ErrInvalidInput)

		var errs map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &errs))
		assert.Len(t, errs, 2)
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "age")
	})

	t.Run("stdin", func(t *testing.T) {
		out, err := run(t, `{"email":"ann@example.com"}`, "validate", "--schema", schemaPath, "--data", "-")
		require.NoError(t, err)
		assert.Contains(t, out, `"valid": true`)
	})

	t.Run("unknown rule", func(t *testing.T) {
		broken := writeFile(t, dir, "broken.json", `{"x": "string|nope"}`)
		data := writeFile(t, dir, "x.json", `{"x": "a"}`)
		_, err := run(t, "", "validate", "--schema", broken, "--data", data)
		require.Error(t, err)
		assert.NotErrorIs(t, err, cmd.ErrInvalidInput)
		assert.Contains(t, err.Error(), "unknown rule")
	})

	t.Run("missing flags", func(t *testing.T) {
		_, err := run(t, "", "validate")
		assert.Error(t, err)
	})
}

func TestRulesCommand(t *testing.T) {
	out, err := run(t, "", "rules", "--kind", "rule", "--json")
	require.NoError(t, err)

	var infos []struct {
		Key     string   `json:"key"`
		Kind    string   `json:"kind"`
		Param   string   `json:"param"`
		Aliases []string `json:"aliases"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.NotEmpty(t, infos)

	keys := make(map[string]bool, len(infos))
	for _, info := range infos {
		assert.Equal(t, "rule", info.Kind)
		keys[info.Key] = true
	}
	assert.True(t, keys["string::email"])
	assert.True(t, keys["field::require"])
	assert.False(t, keys["db::unique"], "lookup rules need a configured backend")
	assert.False(t, keys["trim"])

	out, err = run(t, "", "rules")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "KEY"))
	assert.Contains(t, out, "preTrim")

	_, err = run(t, "", "rules", "--kind", "bogus")
	assert.Error(t, err)
}

func TestEnvFileFlag(t *testing.T) {
	envFile := writeFile(t, t.TempDir(), ".env", "RULEKIT_LOG_LEVEL=debug\n")
	t.Setenv("RULEKIT_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("RULEKIT_LOG_LEVEL"))

	_, err := run(t, "", "--env-file", envFile, "rules", "--json")
	require.NoError(t, err)
	assert.Equal(t, "debug", os.Getenv("RULEKIT_LOG_LEVEL"))

	_, err = run(t, "", "--env-file", filepath.Join(t.TempDir(), "missing"), "rules")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

package loader_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/loader"
	"github.com/dmitrymomot/rulekit/pkg/schema"
)

const signupYAML = `
name: required|string|min(2)
email:
  required: true
  email: true
  max: 120
  messages:
    email: "@{name} looks wrong"
age: integer|between(18,99)
`

const signupJSON = `{
  "name": "required|string|min(2)",
  "email": {"required": true, "email": true, "max": 120},
  "age": "integer|between(18,99)"
}`

func TestFormatOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    loader.Format
		wantErr bool
	}{
		{path: "a.json", want: loader.FormatJSON},
		{path: "dir/a.YAML", want: loader.FormatYAML},
		{path: "a.yml", want: loader.FormatYAML},
		{path: "a.toml", wantErr: true},
		{path: "noext", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			got, err := loader.FormatOf(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeKeepsOrder(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		data   string
		format loader.Format
	}{
		"yaml": {data: signupYAML, format: loader.FormatYAML},
		"json": {data: signupJSON, format: loader.FormatJSON},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			obj, err := loader.Decode([]byte(tc.data), tc.format)
			require.NoError(t, err)
			assert.Equal(t, []string{"name", "email", "age"}, obj.Keys())

			email, ok := obj.Get("email")
			require.True(t, ok)
			inner, ok := email.(*schema.Object)
			require.True(t, ok)
			assert.Equal(t, []string{"required", "email", "max"}, inner.Keys()[:3])
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	_, err := loader.Decode([]byte("{not json"), loader.FormatJSON)
	assert.ErrorIs(t, err, loader.ErrParseDocument)

	_, err = loader.Decode([]byte("a: [1"), loader.FormatYAML)
	assert.ErrorIs(t, err, loader.ErrParseDocument)

	_, err = loader.Decode([]byte("{}"), loader.Format("toml"))
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)

	_, err = loader.DecodeValues([]byte("{}"), loader.Format("toml"))
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}

func TestRead(t *testing.T) {
	t.Parallel()

	obj, err := loader.Read(strings.NewReader(signupJSON), loader.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 3, obj.Len())
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "signup.yml")
	require.NoError(t, os.WriteFile(path, []byte(signupYAML), 0o600))

	obj, err := loader.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "email", "age"}, obj.Keys())

	_, err = loader.LoadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, loader.ErrReadFile)

	_, err = loader.LoadFile(filepath.Join(dir, "signup.txt"))
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}

func TestDecodeValues(t *testing.T) {
	t.Parallel()

	values, err := loader.DecodeValues([]byte(`{"age": 42, "price": 5.0, "tags": ["a"]}`), loader.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, json.Number("42"), values["age"])
	assert.Equal(t, json.Number("5.0"), values["price"])
	assert.Equal(t, []any{"a"}, values["tags"])

	values, err = loader.DecodeValues([]byte("age: 42\nname: Ann\n"), loader.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 42, values["age"])
	assert.Equal(t, "Ann", values["name"])

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Ann"}`), 0o600))
	values, err = loader.LoadValuesFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ann"}, values)
}

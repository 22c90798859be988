package schemastore_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/registry"
	"github.com/dmitrymomot/rulekit/pkg/schema"
	"github.com/dmitrymomot/rulekit/pkg/schemastore"
)

type countingParser struct {
	parser *schema.Parser
	calls  atomic.Int32
}

func (p *countingParser) Parse(raw any) (*schema.Schema, error) {
	p.calls.Add(1)
	return p.parser.Parse(raw)
}

func newParser(t *testing.T) *countingParser {
	t.Helper()
	reg, err := registry.NewDefault(nil)
	require.NoError(t, err)
	return &countingParser{parser: schema.NewParser(reg)}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestStoreGet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "signup.yaml", "email: required|email\nname: string\n")
	writeFile(t, dir, "login.json", `{"password": "required|min(8)"}`)
	writeFile(t, dir, "broken.yml", "age: integer|nope\n")

	p := newParser(t)
	store := schemastore.New(dir, p)

	s, err := store.Get("signup")
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "name"}, s.Names())

	again, err := store.Get("signup")
	require.NoError(t, err)
	assert.Same(t, s, again)
	assert.Equal(t, int32(1), p.calls.Load(), "second Get is served from cache")

	s, err = store.Get("login")
	require.NoError(t, err)
	assert.Equal(t, []string{"password"}, s.Names())

	_, err = store.Get("broken")
	assert.ErrorIs(t, err, schema.ErrUnknownRule)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, schemastore.ErrSchemaNotFound)

	_, err = store.Get("../etc/passwd")
	assert.ErrorIs(t, err, schemastore.ErrInvalidName)
}

func TestStoreCacheEviction(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"x": "string"}`)
	writeFile(t, dir, "b.json", `{"y": "string"}`)

	p := newParser(t)
	store := schemastore.New(dir, p, schemastore.WithCacheSize(1))

	_, err := store.Get("a")
	require.NoError(t, err)
	_, err = store.Get("b")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Cached())

	_, err = store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, int32(3), p.calls.Load(), "a was evicted by b")

	store.Invalidate("a")
	assert.Equal(t, 0, store.Cached())

	_, err = store.Get("b")
	require.NoError(t, err)
	store.Reset()
	assert.Equal(t, 0, store.Cached())
}

func TestStoreInvalidateRereads(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "profile.json", `{"name": "string"}`)
	store := schemastore.New(dir, newParser(t))

	s, err := store.Get("profile")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, s.Names())

	writeFile(t, dir, "profile.json", `{"name": "string", "bio": "string"}`)
	s, err = store.Get("profile")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, s.Names(), "stale until invalidated")

	store.Invalidate("profile")
	s, err = store.Get("profile")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "bio"}, s.Names())
}

func TestStoreRegisterAndNames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "signup.yaml", "email: email\n")
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o700))

	p := newParser(t)
	store := schemastore.New(dir, p)

	inline := p.parser.MustParse(map[string]any{"code": "required"})
	require.NoError(t, store.Register("invite", inline))
	require.NoError(t, store.Register("signup", inline))
	assert.ErrorIs(t, store.Register("bad name", inline), schemastore.ErrInvalidName)

	got, err := store.Get("signup")
	require.NoError(t, err)
	assert.Same(t, inline, got, "registered schemas shadow files")

	names, err := store.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"invite", "signup"}, names)
}

func TestStoreWithoutDir(t *testing.T) {
	t.Parallel()

	store := schemastore.New("", newParser(t))
	_, err := store.Get("anything")
	assert.ErrorIs(t, err, schemastore.ErrSchemaNotFound)

	names, err := store.Names()
	require.NoError(t, err)
	assert.Empty(t, names)

	missing := schemastore.New(filepath.Join(t.TempDir(), "absent"), newParser(t))
	names, err = missing.Names()
	require.NoError(t, err)
	assert.Empty(t, names)
}

package rules_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/rules"
)

func allFamilies() []*rules.Family {
	return []*rules.Family{
		rules.Field(), rules.String(), rules.Integer(), rules.Float(), rules.Boolean(),
		rules.Date(), rules.Time(), rules.DateTime(), rules.Array(), rules.Object(), rules.File(),
		rules.Lookup(nil),
	}
}

func TestFamilyAliasTransparency(t *testing.T) {
	for _, f := range allFamilies() {
		t.Run(f.Type(), func(t *testing.T) {
			require.NotNil(t, f.Canonical(), "family must expose a canonical function")
			for _, fn := range f.Funcs() {
				byName, ok := f.Func(fn.Name)
				require.True(t, ok)
				assert.Same(t, fn, byName)
				for _, alias := range fn.Aliases {
					byAlias, ok := f.Func(alias)
					require.True(t, ok, alias)
					assert.Same(t, fn, byAlias, alias)
				}
			}
		})
	}
}

func TestFamilyRegister(t *testing.T) {
	t.Run("rejects duplicate names", func(t *testing.T) {
		f := rules.NewFamily("x", "x")
		require.NoError(t, f.Register(&rules.Func{Name: "x"}))
		err := f.Register(&rules.Func{Name: "x"})
		require.ErrorIs(t, err, rules.ErrDuplicateFunction)
	})

	t.Run("rejects alias that shadows a function", func(t *testing.T) {
		f := rules.NewFamily("x", "x")
		require.NoError(t, f.Register(&rules.Func{Name: "x"}))
		err := f.Register(&rules.Func{Name: "y", Aliases: []string{"x"}})
		require.ErrorIs(t, err, rules.ErrDuplicateFunction)
	})

	t.Run("rejects unnamed function", func(t *testing.T) {
		err := rules.NewFamily("x", "x").Register(&rules.Func{})
		require.ErrorIs(t, err, rules.ErrInvalidFunction)
	})

	t.Run("keeps registration order", func(t *testing.T) {
		f := rules.NewFamily("x", "a").MustRegister(&rules.Func{Name: "a"}, &rules.Func{Name: "c"}, &rules.Func{Name: "b"})
		var names []string
		for _, fn := range f.Funcs() {
			names = append(names, fn.Name)
		}
		assert.Equal(t, []string{"a", "c", "b"}, names)
	})
}

func TestFamilyValidate(t *testing.T) {
	t.Run("unknown function is an error", func(t *testing.T) {
		_, err := rules.String().Validate("nope", rules.Input{Value: "x"})
		require.ErrorIs(t, err, rules.ErrUnknownFunction)
	})

	t.Run("first failing step wins", func(t *testing.T) {
		f := rules.NewFamily("x", "x").MustRegister(&rules.Func{
			Name: "x",
			Steps: []rules.Step{
				rules.CheckValue(func(any) bool { return false }, "first"),
				rules.CheckValue(func(any) bool { return false }, "second"),
			},
		})
		out, err := f.Validate("x", rules.Input{})
		require.NoError(t, err)
		assert.False(t, out.Valid)
		assert.Equal(t, "x", out.Function)
		assert.Equal(t, "first", out.Message)
	})

	t.Run("step errors propagate", func(t *testing.T) {
		boom := errors.New("boom")
		f := rules.NewFamily("x", "x").MustRegister(&rules.Func{
			Name:  "x",
			Steps: []rules.Step{rules.CheckErr(func(rules.Input) (bool, error) { return false, boom }, "m")},
		})
		_, err := f.Validate("x", rules.Input{})
		require.ErrorIs(t, err, boom)
	})

	t.Run("func without steps passes", func(t *testing.T) {
		out, err := rules.Field().Validate("optional", rules.Input{})
		require.NoError(t, err)
		assert.True(t, out.Valid)
	})
}

type stubChecker struct {
	found  map[string]bool
	err    error
	target string
}

func (s *stubChecker) Exists(_ context.Context, target string, value any) (bool, error) {
	s.target = target
	if s.err != nil {
		return false, s.err
	}
	return s.found[value.(string)], nil
}

func TestLookupFamily(t *testing.T) {
	checker := &stubChecker{found: map[string]bool{"taken@example.com": true}}
	f := rules.Lookup(checker)

	out, err := f.Validate("unique", rules.Input{Value: "taken@example.com", Param: "users.email"})
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Equal(t, "@{name} has already been taken", out.Message)
	assert.Equal(t, "users.email", checker.target)

	out, err = f.Validate("unique", rules.Input{Value: "free@example.com", Param: "users.email"})
	require.NoError(t, err)
	assert.True(t, out.Valid)

	out, err = f.Validate("exists", rules.Input{Value: "taken@example.com", Param: "users.email"})
	require.NoError(t, err)
	assert.True(t, out.Valid)

	t.Run("checker failure aborts", func(t *testing.T) {
		failing := rules.Lookup(&stubChecker{err: errors.New("connection refused")})
		_, err := failing.Validate("exists", rules.Input{Value: "x", Param: "users.id"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("nil checker is unavailable", func(t *testing.T) {
		_, err := rules.Lookup(nil).Validate("exists", rules.Input{Value: "x", Param: params.FieldRef("users.id")})
		require.ErrorIs(t, err, rules.ErrLookupUnavailable)
	})
}

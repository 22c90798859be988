package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/processor"
	"github.com/dmitrymomot/rulekit/pkg/registry"
	"github.com/dmitrymomot/rulekit/pkg/rules"
)

type nopChecker struct{}

func (nopChecker) Exists(context.Context, string, any) (bool, error) { return false, nil }

func TestNewDefault(t *testing.T) {
	reg, err := registry.NewDefault(nil)
	require.NoError(t, err)

	t.Run("rules by key and alias resolve to the same entry", func(t *testing.T) {
		byKey, ok := reg.Lookup("field::require")
		require.True(t, ok)
		byAlias, ok := reg.Lookup("required")
		require.True(t, ok)
		assert.Same(t, byKey, byAlias)
		assert.Equal(t, registry.KindRule, byKey.Kind)
		assert.True(t, byKey.Requirement)
	})

	t.Run("canonical type checks are flagged", func(t *testing.T) {
		e, ok := reg.Lookup("int")
		require.True(t, ok)
		assert.Equal(t, "integer::integer", e.Key)
		assert.True(t, e.Canonical)

		e, ok = reg.Lookup("integer::between")
		require.True(t, ok)
		assert.False(t, e.Canonical)
		assert.Equal(t, params.ParamRange, e.ParamType)
	})

	t.Run("processor keys", func(t *testing.T) {
		tests := []struct {
			name string
			key  string
			kind registry.Kind
		}{
			{"trim", "trim", registry.KindPostProcessor},
			{"ltrim", "trim::left", registry.KindPostProcessor},
			{"case::lower", "case::lower", registry.KindPostProcessor},
			{"preTrim", "preTrim", registry.KindPreProcessor},
			{"preLtrim", "preTrim::left", registry.KindPreProcessor},
			{"preCase::lower", "preCase::lower", registry.KindPreProcessor},
			{"preCast::integer", "preCast::integer", registry.KindPreProcessor},
			{"math::round", "math::round", registry.KindPostProcessor},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				e, ok := reg.Lookup(tt.name)
				require.True(t, ok)
				assert.Equal(t, tt.key, e.Key)
				assert.Equal(t, tt.kind, e.Kind)
			})
		}
	})

	t.Run("db family only with a checker", func(t *testing.T) {
		_, ok := reg.Lookup("db::unique")
		assert.False(t, ok)

		withDB, err := registry.NewDefault(nopChecker{})
		require.NoError(t, err)
		e, ok := withDB.Lookup("unique")
		require.True(t, ok)
		assert.Equal(t, "db::unique", e.Key)
	})

	t.Run("keys are sorted and include aliases", func(t *testing.T) {
		keys := reg.Keys()
		assert.IsIncreasing(t, keys)
		assert.Contains(t, keys, "squish")
		assert.Contains(t, keys, "string::email")
		assert.Equal(t, len(keys), reg.Len())
		assert.Less(t, len(reg.Entries()), reg.Len())
	})
}

func TestUnknownEntry(t *testing.T) {
	reg, err := registry.NewDefault(nil)
	require.NoError(t, err)

	_, ok := reg.Lookup("nope")
	assert.False(t, ok)

	e := &registry.Entry{Key: "nope"}
	assert.False(t, e.Known())
	assert.Equal(t, registry.KindUnknown, e.Kind)

	_, err = e.Validate(rules.Input{Value: "x"})
	require.ErrorIs(t, err, registry.ErrUnknownName)
}

func TestEntryExecution(t *testing.T) {
	reg, err := registry.NewDefault(nil)
	require.NoError(t, err)

	email, _ := reg.Lookup("email")
	out, err := email.Validate(rules.Input{Value: "nope"})
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Equal(t, "email", out.Function)

	lower, _ := reg.Lookup("preCase::lower")
	v, err := lower.Process("JOHN", nil)
	require.NoError(t, err)
	assert.Equal(t, "john", v)

	_, err = email.Process("x", nil)
	require.ErrorIs(t, err, registry.ErrUnknownName)

	pattern, _ := reg.Lookup("regex")
	prepared, err := pattern.PrepareParam("^[a-z]+$")
	require.NoError(t, err)
	out, err = pattern.Validate(rules.Input{Value: "abc", Param: prepared})
	require.NoError(t, err)
	assert.True(t, out.Valid)

	_, err = pattern.PrepareParam("([")
	require.ErrorIs(t, err, rules.ErrInvalidPattern)
}

func TestDuplicateNames(t *testing.T) {
	t.Run("alias collides across families", func(t *testing.T) {
		a := rules.NewFamily("a", "x").MustRegister(&rules.Func{Name: "x", Aliases: []string{"shared"}})
		b := rules.NewFamily("b", "y").MustRegister(&rules.Func{Name: "y", Aliases: []string{"shared"}})
		_, err := registry.NewBuilder().Rules(a, b).Build()
		require.ErrorIs(t, err, registry.ErrDuplicateName)
	})

	t.Run("family registered twice", func(t *testing.T) {
		_, err := registry.NewBuilder().Rules(rules.String(), rules.String()).Build()
		require.ErrorIs(t, err, registry.ErrDuplicateName)
	})

	t.Run("processor alias collides with rule alias", func(t *testing.T) {
		p := processor.New("fmt").MustRegister(&processor.Func{Name: "x", Aliases: []string{"email"}})
		_, err := registry.NewBuilder().Rules(rules.String()).Processors(p).Build()
		require.ErrorIs(t, err, registry.ErrDuplicateName)
	})

	t.Run("MustBuild panics", func(t *testing.T) {
		assert.Panics(t, func() {
			registry.NewBuilder().Processors(processor.Trim(), processor.Trim()).MustBuild()
		})
	})
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "rule", registry.KindRule.String())
	assert.Equal(t, "preprocessor", registry.KindPreProcessor.String())
	assert.Equal(t, "postprocessor", registry.KindPostProcessor.String())
	assert.Equal(t, "unknown", registry.KindUnknown.String())
	assert.True(t, registry.KindPreProcessor.IsProcessor())
	assert.False(t, registry.KindRule.IsProcessor())
}

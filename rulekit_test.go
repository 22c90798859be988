package rulekit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit"
	"github.com/dmitrymomot/rulekit/pkg/lookup"
	"github.com/dmitrymomot/rulekit/pkg/processor"
	"github.com/dmitrymomot/rulekit/pkg/registry"
	"github.com/dmitrymomot/rulekit/pkg/rules"
)

func TestValidator(t *testing.T) {
	v := rulekit.MustNew()
	ctx := context.Background()

	s := v.MustParse(map[string]any{
		"email": "require|email",
		"name":  map[string]any{"require": true, "cast": "trim|case::title"},
	})

	results, err := v.Validate(ctx, s, map[string]any{"email": "a@b.co", "name": "  ada lovelace "})
	require.NoError(t, err)
	assert.True(t, results.Valid())
	assert.Equal(t, "Ada Lovelace", results["name"].ProcessedValue)

	values, err := v.Check(ctx, s, map[string]any{"email": "a@b.co", "name": "ada"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"email": "a@b.co", "name": "Ada"}, values)

	_, err = v.Check(ctx, s, map[string]any{"email": "nope"})
	var verr rulekit.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Email must be a valid email address", verr.Get("email"))
	assert.Equal(t, "Name is required", verr.Get("name"))
}

func TestValidateRaw(t *testing.T) {
	v := rulekit.MustNew()

	results, err := v.ValidateRaw(context.Background(),
		map[string]any{"age": "require|integer|between(18,65)"},
		map[string]any{"age": "70"})
	require.NoError(t, err)
	assert.Equal(t, "Age must be between 18 and 65", results["age"].Error)

	_, err = v.ValidateRaw(context.Background(), map[string]any{"age": "nope"}, nil)
	require.Error(t, err)
}

func TestValidateField(t *testing.T) {
	v := rulekit.MustNew()
	s := v.MustParse(map[string]any{"password": "require|min(8)", "confirm": "require|match(password)"})

	resp, err := v.ValidateField(context.Background(), s, "confirm", "secret12", map[string]any{"password": "secret12"})
	require.NoError(t, err)
	assert.True(t, resp.Valid)

	_, err = v.ValidateField(context.Background(), s, "missing", "x", nil)
	require.ErrorIs(t, err, rulekit.ErrUnknownField)
}

func TestCustomFamilies(t *testing.T) {
	family := rules.NewFamily("color", "color").MustRegister(&rules.Func{
		Name:    "color",
		Aliases: []string{"color"},
		Steps: []rules.Step{rules.CheckValue(func(v any) bool {
			s, _ := v.(string)
			return len(s) == 7 && s[0] == '#'
		}, "@{name} must be a hex color")},
	})
	reverse := processor.New("reverse").MustRegister(&processor.Func{
		Name: "reverse",
		Steps: []processor.Transform{func(v, _ any) (any, error) {
			r := []rune(v.(string))
			for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
				r[i], r[j] = r[j], r[i]
			}
			return string(r), nil
		}},
	})

	v, err := rulekit.New(rulekit.WithRules(family), rulekit.WithProcessors(reverse))
	require.NoError(t, err)

	results, err := v.ValidateRaw(context.Background(),
		map[string]any{"bg": "color|reverse"},
		map[string]any{"bg": "#abcdef"})
	require.NoError(t, err)
	assert.True(t, results["bg"].Valid)
	assert.Equal(t, "fedcba#", results["bg"].ProcessedValue)

	_, err = rulekit.New(rulekit.WithRules(rules.String()))
	require.ErrorIs(t, err, registry.ErrDuplicateName)
}

func TestValidationError(t *testing.T) {
	v := rulekit.MustNew()
	s := v.MustParse(map[string]any{
		"users": map[string]any{"arrayOfSchema": map[string]any{"name": "require"}},
	})
	results, err := v.Validate(context.Background(), s, map[string]any{"users": []any{map[string]any{}}})
	require.NoError(t, err)

	verr := rulekit.FromResults(results)
	assert.True(t, verr.Has("users"))
	assert.Equal(t, "Name is required", verr.Get("users.0.name"))
	assert.Equal(t, map[string]string{
		"users":        "Users contains invalid items",
		"users.0.name": "Name is required",
	}, verr.Map())
	assert.Equal(t, "validation error: users: Users contains invalid items, users.0.name: Name is required", verr.Error())

	empty := rulekit.NewValidationError()
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "validation failed", empty.Error())
	empty.Add("x", "bad")
	assert.False(t, empty.IsEmpty())
}

func TestLookupRules(t *testing.T) {
	checker := lookup.NewMemory().
		Add("users.email", "taken@example.com").
		Add("teams.id", 7)
	v := rulekit.MustNew(rulekit.WithChecker(checker))
	ctx := context.Background()

	s := v.MustParse(map[string]any{
		"email": "require|email|unique(users.email)",
		"team":  "integer|exists(teams.id)",
	})

	results, err := v.Validate(ctx, s, map[string]any{"email": "taken@example.com", "team": 8})
	require.NoError(t, err)
	assert.Equal(t, "Email has already been taken", results["email"].Error)
	assert.Equal(t, "db", results["email"].Rule)
	assert.Equal(t, "unique", results["email"].Function)
	assert.Equal(t, "the selected Team is invalid", results["team"].Error)

	results, err = v.Validate(ctx, s, map[string]any{"email": "new@example.com", "team": "7"})
	require.NoError(t, err)
	assert.True(t, results.Valid())

	_, err = rulekit.MustNew().Parse(map[string]any{"email": "unique(users.email)"})
	assert.Error(t, err, "db rules need a checker")
}

package processor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/params"
	"github.com/dmitrymomot/rulekit/pkg/processor"
)

func TestProcessors(t *testing.T) {
	tests := []struct {
		name  string
		proc  *processor.Processor
		fn    string
		value any
		param any
		want  any
	}{
		{"trim", processor.Trim(), "trim", "  JOHN  ", nil, "JOHN"},
		{"ltrim alias", processor.Trim(), "ltrim", "  a ", nil, "a "},
		{"rtrim alias", processor.Trim(), "rtrim", "  a ", nil, "  a"},
		{"squish", processor.Trim(), "squish", " a   b ", nil, "a b"},
		{"trim ignores numbers", processor.Trim(), "trim", 42, nil, 42},
		{"lower", processor.Case(), "lower", "JOHN", nil, "john"},
		{"camel", processor.Case(), "camel", "first name", nil, "firstName"},
		{"snake", processor.Case(), "snake", "firstName", nil, "first_name"},
		{"kebab", processor.Case(), "kebab", "First Name", nil, "first-name"},
		{"pascal", processor.Case(), "pascal", "first-name", nil, "FirstName"},
		{"title", processor.Case(), "title", "hello world", nil, "Hello World"},
		{"sentence", processor.Case(), "sentence", "hello. WORLD", nil, "Hello. World."},
		{"capitalize", processor.Case(), "capitalize", "john", nil, "John"},
		{"cast string", processor.Cast(), "string", 1.5, nil, "1.5"},
		{"cast number", processor.Cast(), "number", "1.5", nil, 1.5},
		{"cast integer truncates", processor.Cast(), "integer", "4.7", nil, int64(4)},
		{"cast boolean word", processor.Cast(), "boolean", "on", nil, true},
		{"cast boolean number", processor.Cast(), "boolean", 0, nil, false},
		{"cast array from csv", processor.Cast(), "array", "a, b", nil, []any{"a", "b"}},
		{"cast array from json", processor.Cast(), "array", `[1,2]`, nil, []any{float64(1), float64(2)}},
		{"cast array wraps scalar", processor.Cast(), "array", 3, nil, []any{3}},
		{"cast object from json", processor.Cast(), "object", `{"a":1}`, nil, map[string]any{"a": float64(1)}},
		{"cast json", processor.Cast(), "json", map[string]any{"a": 1}, nil, `{"a":1}`},
		{"round default places", processor.Math(), "round", "2.5", nil, 3.0},
		{"round places", processor.Math(), "round", 3.14159, int64(2), 3.14},
		{"ceil", processor.Math(), "ceil", 1.1, nil, 2.0},
		{"floor", processor.Math(), "floor", "1.9", nil, 1.0},
		{"abs", processor.Math(), "abs", -3, nil, 3.0},
		{"clamp", processor.Math(), "clamp", 15, params.Bounds{Min: 0.0, Max: 10.0}, 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.proc.Process(tt.fn, tt.value, tt.param)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCastFailureKeepsOriginal(t *testing.T) {
	tests := []struct {
		fn    string
		value any
	}{
		{"integer", "abc"},
		{"number", nil},
		{"object", "[1,2]"},
		{"boolean", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			got, err := processor.Cast().Process(tt.fn, tt.value, nil)
			require.ErrorIs(t, err, processor.ErrTransformFailed)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestChainAndPanics(t *testing.T) {
	t.Run("steps run in order", func(t *testing.T) {
		fn := &processor.Func{
			Name: "chain",
			Steps: []processor.Transform{
				func(v, _ any) (any, error) { return v.(string) + "a", nil },
				func(v, _ any) (any, error) { return v.(string) + "b", nil },
			},
		}
		got, err := fn.Apply("x", nil)
		require.NoError(t, err)
		assert.Equal(t, "xab", got)
	})

	t.Run("panic keeps original", func(t *testing.T) {
		fn := &processor.Func{
			Name:  "boom",
			Steps: []processor.Transform{func(any, any) (any, error) { panic("boom") }},
		}
		got, err := fn.Apply("x", nil)
		require.ErrorIs(t, err, processor.ErrTransformFailed)
		assert.Equal(t, "x", got)
	})

	t.Run("failing middle step keeps original", func(t *testing.T) {
		fn := &processor.Func{
			Name: "half",
			Steps: []processor.Transform{
				func(v, _ any) (any, error) { return "changed", nil },
				func(any, any) (any, error) { return nil, errors.New("nope") },
			},
		}
		got, err := fn.Apply("x", nil)
		require.ErrorIs(t, err, processor.ErrTransformFailed)
		assert.Equal(t, "x", got)
	})
}

func TestProcessorRegistry(t *testing.T) {
	_, err := processor.Case().Process("nope", "x", nil)
	require.ErrorIs(t, err, processor.ErrUnknownFunction)

	p := processor.New("x")
	require.NoError(t, p.Register(&processor.Func{Name: "a", Aliases: []string{"b"}}))
	require.ErrorIs(t, p.Register(&processor.Func{Name: "b"}), processor.ErrDuplicateFunction)

	byAlias, ok := processor.Trim().Func("squish")
	require.True(t, ok)
	assert.Equal(t, "all", byAlias.Name)
}

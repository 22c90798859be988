package errformat_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rulekit/pkg/errformat"
	"github.com/dmitrymomot/rulekit/pkg/params"
)

type profile struct {
	Name  string
	Email string
	tags  []string
}

func TestFormat(t *testing.T) {
	data := map[string]any{
		"name": "Age",
		"user": map[string]any{
			"name":     nil,
			"username": "jdoe",
			"roles":    []any{"admin", "editor"},
		},
		"param":   params.Bounds{Min: int64(18), Max: int64(65)},
		"cond":    params.FieldEquals{Field: "country", Value: "US"},
		"price":   9.5,
		"profile": &profile{Name: "  jane  ", tags: []string{"x"}},
		"matrix":  [][]int{{1, 2}, {3, 4}},
		"labels":  map[string]string{"first name": "First"},
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"no placeholders", "plain text", "plain text"},
		{"literal fallback on empty data", `User: @{user.name || "Guest"}`, "User: Guest"},
		{"simple path", "@{name} is required", "Age is required"},
		{"fallback path with modifier", `@{user.name || user.username | upper || "Guest"}`, "JDOE"},
		{"modifier on first candidate", "@{user.username | capitalize}", "Jdoe"},
		{"map method params", "@{name} must be between @{param.min} and @{param.max}", "Age must be between 18 and 65"},
		{"field equals params", "@{param.field}=@{param.value}", "country=US"},
		{"stringer param", "@{param}", "18,65"},
		{"arrays joined", "@{user.roles}", "admin, editor"},
		{"index", "@{user.roles[1]}", "editor"},
		{"nested index", "@{matrix[1][0]}", "3"},
		{"quoted key", `@{labels["first name"]}`, "First"},
		{"struct field case-insensitive", "@{profile.name | trim}", "jane"},
		{"unexported field unresolved", `@{profile.tags || "none"}`, "none"},
		{"float", "@{price}", "9.5"},
		{"missing path renders empty", "[@{nope.deeper}]", "[]"},
		{"index out of range", "[@{user.roles[5]}]", "[]"},
		{"malformed path", "[@{user..name}]", "[]"},
		{"literal with braces", `@{missing || "a}b"}`, "a}b"},
		{"unknown modifier ignored", "@{name | shout}", "Age"},
		{"unterminated placeholder kept", "@{name", "@{name"},
		{"multiple placeholders", "@{name}/@{name | lower}", "Age/age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errformat.Format(tt.template, data))
		})
	}
}

func TestFormatNilData(t *testing.T) {
	assert.Equal(t, "Hello !", errformat.Format("Hello @{name}!", nil))
	assert.Equal(t, "Hello you!", errformat.Format(`Hello @{name || 'you'}!`, nil))
}

func TestRender(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"int", 42, "42"},
		{"float", 1e6, "1000000"},
		{"bool", true, "true"},
		{"strings", []string{"a", "b"}, "a, b"},
		{"time", day, day.String()},
		{"file size", params.FileSize{Raw: "2mb", Size: 2, Unit: "mb", Bytes: 2 << 20}, "2mb"},
		{"nil pointer", (*profile)(nil), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errformat.Render(tt.in))
		})
	}
}

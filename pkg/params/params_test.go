package params_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/params"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		raw  string
		want params.Token
	}{
		{"require", params.Token{Name: "require", Func: "require"}},
		{"between(5,10)", params.Token{Name: "between", Func: "between", Param: "5,10", HasParam: true}},
		{"file::maxSize(2mb)", params.Token{Name: "file::maxSize", Type: "file", Func: "maxSize", Param: "2mb", HasParam: true}},
		{"string::email", params.Token{Name: "string::email", Type: "string", Func: "email"}},
		{" pattern(^a(b)c$) ", params.Token{Name: "pattern", Func: "pattern", Param: "^a(b)c$", HasParam: true}},
		{"empty()", params.Token{Name: "empty", Func: "empty", HasParam: true}},
		{"9bad", params.Token{Name: "9bad", Func: "9bad"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, params.Extract(tt.raw))
		})
	}
}

func TestSplitRules(t *testing.T) {
	assert.Equal(t,
		[]string{"require", "integer", "between(1|10)", "in(a,b)"},
		params.SplitRules("require|integer|between(1|10)| in(a,b) |"),
	)
	assert.Empty(t, params.SplitRules(""))
	assert.Equal(t, []string{"pattern(^(a|b)$)"}, params.SplitRules("pattern(^(a|b)$)"))
}

func TestParse(t *testing.T) {
	t.Run("none is a presence flag", func(t *testing.T) {
		v, err := params.Parse("", params.ParamNone)
		require.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("single integer", func(t *testing.T) {
		v, err := params.Parse("42", params.ParamSingle, params.ArgInteger)
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)
	})

	t.Run("single integer rejects garbage", func(t *testing.T) {
		_, err := params.Parse("4x", params.ParamSingle, params.ArgInteger)
		require.ErrorIs(t, err, params.ErrInvalidParam)
	})

	t.Run("single falls through argument types", func(t *testing.T) {
		v, err := params.Parse("abc", params.ParamSingle, params.ArgNumber, params.ArgString)
		require.NoError(t, err)
		assert.Equal(t, "abc", v)
	})

	t.Run("single date", func(t *testing.T) {
		v, err := params.Parse("2024-02-29", params.ParamSingle, params.ArgDate)
		require.NoError(t, err)
		assert.Equal(t, params.Date{Year: 2024, Month: 2, Day: 29}, v)
	})

	t.Run("range with comma and pipe", func(t *testing.T) {
		v, err := params.Parse("18,65", params.ParamRange, params.ArgInteger)
		require.NoError(t, err)
		assert.Equal(t, params.Bounds{Min: int64(18), Max: int64(65)}, v)

		v, err = params.Parse("(1.5|2.5)", params.ParamRange, params.ArgFloat)
		require.NoError(t, err)
		assert.Equal(t, params.Bounds{Min: 1.5, Max: 2.5}, v)
	})

	t.Run("range needs two bounds", func(t *testing.T) {
		_, err := params.Parse("1,2,3", params.ParamRange, params.ArgInteger)
		require.ErrorIs(t, err, params.ErrInvalidRange)
	})

	t.Run("list", func(t *testing.T) {
		v, err := params.Parse("a, b ,c", params.ParamList, params.ArgString)
		require.NoError(t, err)
		assert.Equal(t, []any{"a", "b", "c"}, v)
	})

	t.Run("file size", func(t *testing.T) {
		v, err := params.Parse("2MB", params.ParamFileSize)
		require.NoError(t, err)
		assert.Equal(t, params.FileSize{Raw: "2MB", Size: 2, Unit: "mb", Bytes: 2 * 1024 * 1024}, v)
	})

	t.Run("field reference", func(t *testing.T) {
		v, err := params.Parse(" password ", params.ParamFieldReference)
		require.NoError(t, err)
		assert.Equal(t, params.FieldRef("password"), v)
	})

	t.Run("field equals splits on first equals sign", func(t *testing.T) {
		v, err := params.Parse("mode=a=b", params.ParamFieldEquals)
		require.NoError(t, err)
		assert.Equal(t, params.FieldEquals{Field: "mode", Value: "a=b"}, v)

		_, err = params.Parse("mode", params.ParamFieldEquals)
		require.ErrorIs(t, err, params.ErrInvalidCondition)
	})

	t.Run("function is opaque", func(t *testing.T) {
		v, err := params.Parse("^[a-z]+$", params.ParamFunction)
		require.NoError(t, err)
		assert.Equal(t, "^[a-z]+$", v)
	})

	t.Run("unknown param type", func(t *testing.T) {
		_, err := params.Parse("x", params.ParamType("nope"))
		require.ErrorIs(t, err, params.ErrUnknownParamType)
	})
}

func TestCoerceAny(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"0", int64(0)},
		{"1.5", 1.5},
		{"true", true},
		{`"quoted"`, "quoted"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		v, err := params.Coerce(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v)
	}
}

func TestFileSize(t *testing.T) {
	tests := []struct {
		raw   string
		bytes int64
	}{
		{"100", 100},
		{"100bytes", 100},
		{"1kb", 1024},
		{"3 Gb", 3 * 1024 * 1024 * 1024},
	}
	for _, tt := range tests {
		fs, err := params.ParseFileSize(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.bytes, fs.Bytes, tt.raw)
	}

	_, err := params.ParseFileSize("1tb")
	require.ErrorIs(t, err, params.ErrInvalidFileSize)
	_, err = params.ParseFileSize("-1kb")
	require.ErrorIs(t, err, params.ErrInvalidFileSize)

	for _, raw := range []string{"10000000000gb", "9223372036854775807kb", "99999999999999999999"} {
		_, err = params.ParseFileSize(raw)
		require.ErrorIs(t, err, params.ErrInvalidFileSize, raw)
	}
	fs, err := params.ParseFileSize("8589934591gb")
	require.NoError(t, err)
	assert.Equal(t, int64(8589934591)*1024*1024*1024, fs.Bytes)
}

func TestTemporalRoundTrip(t *testing.T) {
	t.Run("date", func(t *testing.T) {
		d, err := params.ExtractDate("2023-07-04")
		require.NoError(t, err)
		again, err := params.ExtractDate(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, again)
	})

	t.Run("time", func(t *testing.T) {
		for _, s := range []string{"09:05", "23:59:59"} {
			tm, err := params.ExtractTime(s)
			require.NoError(t, err)
			assert.Equal(t, s, tm.String())
			again, err := params.ExtractTime(tm.String())
			require.NoError(t, err)
			assert.Equal(t, tm, again)
		}
	})

	t.Run("datetime", func(t *testing.T) {
		dt, err := params.ExtractDateTime("2023-07-04 10:30")
		require.NoError(t, err)
		assert.Equal(t, "2023-07-04T10:30", dt.String())
		again, err := params.ExtractDateTime(dt.String())
		require.NoError(t, err)
		assert.Equal(t, dt, again)
	})
}

func TestTemporalStrictness(t *testing.T) {
	for _, s := range []string{"2023-2-04", "2023-02-30", "2023-13-01", "23-01-01", "2023-01-01T"} {
		_, err := params.ExtractDate(s)
		assert.ErrorIs(t, err, params.ErrInvalidDate, s)
	}
	for _, s := range []string{"24:00", "9:00", "10:60", "10:00:60"} {
		_, err := params.ExtractTime(s)
		assert.ErrorIs(t, err, params.ErrInvalidTime, s)
	}
	_, err := params.ExtractDateTime("2023-02-30T10:00")
	assert.ErrorIs(t, err, params.ErrInvalidDateTime)

	a, _ := params.ExtractDateTime("2023-01-01T23:59")
	b, _ := params.ExtractDateTime("2023-01-02T00:00")
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
}

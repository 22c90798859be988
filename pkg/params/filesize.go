package params

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var fileSizeRegex = regexp.MustCompile(`(?i)^\s*(\d+)\s*(bytes|kb|mb|gb)?\s*$`)

// unitBytes is the fixed unit table used by file size parameters.
var unitBytes = map[string]int64{
	"bytes": 1,
	"kb":    1024,
	"mb":    1024 * 1024,
	"gb":    1024 * 1024 * 1024,
}

// FileSize is a human file size such as "2mb" resolved to bytes.
type FileSize struct {
	Raw   string
	Size  int64
	Unit  string
	Bytes int64
}

// ParseFileSize parses "<int><unit>" where unit is bytes, kb, mb or gb
// (case-insensitive). A missing unit means bytes.
func ParseFileSize(raw string) (FileSize, error) {
	m := fileSizeRegex.FindStringSubmatch(raw)
	if m == nil {
		return FileSize{}, fmt.Errorf("%w: %q", ErrInvalidFileSize, raw)
	}
	size, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return FileSize{}, fmt.Errorf("%w: %q", ErrInvalidFileSize, raw)
	}
	unit := strings.ToLower(m[2])
	if unit == "" {
		unit = "bytes"
	}
	if size > math.MaxInt64/unitBytes[unit] {
		return FileSize{}, fmt.Errorf("%w: %q overflows", ErrInvalidFileSize, raw)
	}
	return FileSize{
		Raw:   strings.TrimSpace(raw),
		Size:  size,
		Unit:  unit,
		Bytes: size * unitBytes[unit],
	}, nil
}

// Map exposes the size to message templates (@{param.raw}, @{param.bytes}...).
func (f FileSize) Map() map[string]any {
	return map[string]any{
		"raw":   f.Raw,
		"size":  f.Size,
		"unit":  f.Unit,
		"bytes": f.Bytes,
	}
}

func (f FileSize) String() string {
	return f.Raw
}

package lookup

import (
	"fmt"
	"regexp"
	"strings"
)

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Target is the "table.column" parameter of db::exists and db::unique.
// Table may itself be schema-qualified: "billing.accounts.email".
type Target struct {
	Schema string
	Table  string
	Column string
}

// ParseTarget splits a lookup target. Every part must be a plain identifier.
func ParseTarget(raw string) (Target, error) {
	parts := strings.Split(strings.TrimSpace(raw), ".")
	for _, p := range parts {
		if !identRegex.MatchString(p) {
			return Target{}, fmt.Errorf("%w: %q", ErrInvalidTarget, raw)
		}
	}

	switch len(parts) {
	case 2:
		return Target{Table: parts[0], Column: parts[1]}, nil
	case 3:
		return Target{Schema: parts[0], Table: parts[1], Column: parts[2]}, nil
	default:
		return Target{}, fmt.Errorf("%w: %q must be table.column", ErrInvalidTarget, raw)
	}
}

// QualifiedTable returns the schema-qualified table name.
func (t Target) QualifiedTable() string {
	if t.Schema == "" {
		return t.Table
	}
	return t.Schema + "." + t.Table
}

func (t Target) String() string {
	return t.QualifiedTable() + "." + t.Column
}

package lookup

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx the
// Postgres checker needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres answers lookups with SELECT EXISTS against table.column.
type Postgres struct {
	db      Querier
	allowed map[string]bool
}

// PostgresOption configures a Postgres checker.
type PostgresOption func(*Postgres)

// WithTables restricts lookups to the given tables ("users" or
// "billing.accounts"). Without it any well-formed target is queried.
func WithTables(tables ...string) PostgresOption {
	return func(p *Postgres) {
		if p.allowed == nil {
			p.allowed = make(map[string]bool, len(tables))
		}
		for _, t := range tables {
			p.allowed[t] = true
		}
	}
}

// NewPostgres creates a checker over db.
func NewPostgres(db Querier, opts ...PostgresOption) *Postgres {
	p := &Postgres{db: db}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Postgres) Exists(ctx context.Context, target string, value any) (bool, error) {
	t, err := ParseTarget(target)
	if err != nil {
		return false, err
	}
	if p.allowed != nil && !p.allowed[t.QualifiedTable()] {
		return false, fmt.Errorf("%w: %s", ErrTargetNotAllowed, t.QualifiedTable())
	}

	var found bool
	if err := p.db.QueryRow(ctx, existsQuery(t), value).Scan(&found); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, errors.Join(ErrLookupFailed, err)
	}
	return found, nil
}

func existsQuery(t Target) string {
	table := pgx.Identifier{t.Table}
	if t.Schema != "" {
		table = pgx.Identifier{t.Schema, t.Table}
	}
	column := pgx.Identifier{t.Column}
	return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", table.Sanitize(), column.Sanitize())
}

// Package lookup provides rules.Checker implementations backing the db::exists
// and db::unique rules.
//
// A lookup target is written "table.column" (optionally "schema.table.column").
// Three backends are available:
//
//   - Memory keeps values in process and suits tests and fixed lists.
//   - Postgres runs SELECT EXISTS against the target column through any
//     Querier (a *pgxpool.Pool, *pgx.Conn or pgx.Tx). Identifiers are quoted
//     with pgx.Identifier and WithTables restricts which tables may be queried.
//   - Redis checks membership of the set "<prefix>:<target>", which the
//     application keeps in sync with Add or its own SADD calls.
//
// ConnectPostgres and ConnectRedis open the underlying connections with
// retries, and the Healthcheck helpers plug into health endpoints.
//
//	pool, err := lookup.ConnectPostgres(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	v := rulekit.MustNew(rulekit.WithChecker(lookup.NewPostgres(pool, lookup.WithTables("users"))))
package lookup

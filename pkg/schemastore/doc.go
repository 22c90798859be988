// Package schemastore resolves schema names to parsed schemas.
//
// Schemas come from a directory of JSON or YAML documents (signup.yaml is the
// schema "signup") or are registered in code. Parsed file-backed schemas are
// kept in a small LRU so hot schemas are parsed once; Invalidate and Reset
// drop entries after the files change.
//
//	store := schemastore.New("schemas", validator, schemastore.WithCacheSize(64))
//	s, err := store.Get("signup")
//	if errors.Is(err, schemastore.ErrSchemaNotFound) {
//		// 404
//	}
package schemastore

package schemastore

import "errors"

var (
	ErrSchemaNotFound = errors.New("schema not found")
	ErrInvalidName    = errors.New("invalid schema name")
)

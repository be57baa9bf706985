// Package postgres provides PostgreSQL implementations of the store
// interfaces, using database/sql over the pgx stdlib driver, along with
// the goose migrations that define the schema.
package postgres

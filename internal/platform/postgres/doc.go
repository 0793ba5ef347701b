// Package postgres provides PostgreSQL implementations of the persistence
// interfaces defined in internal/store. It owns the SQL, the mapping between
// domain entities and rows, and the translation of driver errors into store
// sentinel errors.
package postgres

// Package postgres provides PostgreSQL implementations of the store
// interfaces. All stores accept a store.DBTX so they run identically on a
// connection pool or inside a transaction, and all database errors are
// mapped onto the store package's sentinel errors before they leave this
// package.
package postgres

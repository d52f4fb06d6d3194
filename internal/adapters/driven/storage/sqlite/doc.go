// Package sqlite persists analysis history with modernc.org/sqlite, a pure Go
// SQLite that needs no CGO.
//
// # Schema
//
// The schema is managed through versioned migrations in migrations/. Each
// migration is a pair of .up.sql and .down.sql files and records its own
// version in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.atsfit/data/history.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. The database runs in WAL mode.
package sqlite

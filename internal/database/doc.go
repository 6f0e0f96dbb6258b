// Package database provides the PostgreSQL connection pool used by the
// optional snapshot history writer.
package database

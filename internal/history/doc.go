// Package history persists each successful poll tick to PostgreSQL. The
// writer consumes tick snapshots from a buffered channel, batches the rows,
// and flushes on batch size or a timer. History is additive: the browsing
// surface never reads from it.
package history

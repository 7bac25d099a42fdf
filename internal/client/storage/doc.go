// Package storage is the client's durable store: a synchronous, string-keyed
// key/value table in a local SQLite database that survives restarts.
//
// Values are opaque strings (the session layer stores JSON). The store has
// no expiry of its own. Writes larger than the configured per-value quota
// fail with ErrQuotaExceeded.
//
// See Also
//
//   - Open, RunMigrations: database bootstrap with embedded goose migrations
//   - Repository, Store: the key/value contract and its transactional form
//   - SQLiteStore: the modernc.org/sqlite implementation
package storage

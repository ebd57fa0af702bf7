// Package state implements the durable storage slots behind the persisted
// store envelope.
//
// Two implementations exist:
//
//   - SQLiteRepository keeps slots in the persisted_state table of a local
//     SQLite database (modernc.org/sqlite). The schema is applied by goose
//     from the embedded migrations; see OpenSQLite and RunMigrations.
//   - FileRepository keeps one file per slot under a directory. Writes go to
//     a temp file that is renamed over the target.
//   - RedisRepository keeps slots as fields of one Redis hash
//     (github.com/redis/go-redis/v9), for clients that share state with a
//     local Redis.
//
// Values are opaque bytes. Callers store already encrypted blobs.
package state

// Package store persists and looks up daily price records.
//
// The engine in internal/series reads through its RecordSource contract;
// this package supplies the two implementations behind it. SQLiteStore is
// the production store, a single-file database shared with the ingestion
// pipeline that writes the records. MemoryStore backs tests and ad-hoc
// fixtures with the same lookup semantics.
//
// Both stores keep at most one record per (category, day): SQLiteStore
// through its primary key with upsert writes, MemoryStore by replacing on
// insert. Range queries return ascending, point queries return (nil, nil)
// when nothing matches.
package store

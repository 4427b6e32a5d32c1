// Package journal persists assembled component lists in SQLite so
// publishes can be audited after the fact.
//
// The Store manages the database connection, schema initialization, and
// record/list/get queries. A file lock next to the database serializes
// writers, since multiple publish processes may record concurrently.
//
// The journal is an append-only audit log, not upload state: the upload
// integration keeps its own bookkeeping.
package journal

// Package index maintains the run index: a single CSV file accumulating one
// summary row per benchmark run.
//
// The column schema is an explicit ordered value threaded through every
// write. It only ever grows: once a column exists its relative position is
// preserved, and new canonical columns are appended at the end. Files written
// by older versions of the schema are migrated in place (union schema, old
// values kept under their original columns) on the first write after an
// upgrade.
//
// Rows are deduplicated under replace mode by an identity key: the ordered
// tuple of run-identity columns compared as strings.
//
// The store performs no file locking. Concurrent replace writers to the same
// index can race (last writer wins); full-file rewrites go through a temp
// file and atomic rename so a crash mid-write never corrupts the index, but
// cross-process exclusion is the caller's responsibility.
package index

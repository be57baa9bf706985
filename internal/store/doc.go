// Package store defines the persistence interfaces for memos and groups,
// the sentinel errors shared by all store implementations, and a helper
// for running multiple store operations in one database transaction.
package store

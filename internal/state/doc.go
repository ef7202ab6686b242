// Package state holds the in-memory application state for PathInformatica.
//
// App is the single source of truth read by every command: the content
// collections loaded at bootstrap, the navigation pointers, and the live
// UserProgress record. It is an explicitly constructed, dependency-injected
// instance owned by the application root; there is no package-level
// singleton. All mutations go through named action methods, never direct
// field assignment, and every mutation of progress or navigation state is
// mirrored to a Persister so it survives restarts.
//
// The persisted subset is the Snapshot type: UserProgress plus the current
// module/lesson pointers, deliberately excluding the bulk content
// collections (those are re-seeded from the embedded datasets and the
// durable store). Snapshot writes are best-effort: a failed write is logged
// and the previously persisted snapshot stays intact.
package state

// Package store provides the SQLite-backed durable store adapter for
// PathInformatica content and progress.
//
// The store holds one table per record collection (modules, glossary,
// cases, loinc, snomed, progress), each keyed by the record's natural
// primary key with the record body serialized to a JSON payload column.
// Secondary indexes cover the range/filter queries the application makes:
// modules by ordering key, glossary terms and LOINC codes by category.
//
// Content tables are write-once from the application's perspective: the
// bootstrap seeds them so content can be read offline on later sessions,
// and only the explicit reset action clears them. The progress table holds
// the single mutable record per installation.
//
// Write semantics:
//
//   - all writes are upserts: a record sharing a key overwrites the prior
//     record, never duplicates it
//   - bulk puts run in one transaction; on failure nothing is committed and
//     the caller receives a *BatchError
//
// Failure taxonomy: a database that cannot be opened or prepared surfaces a
// *StorageError with KindUnavailable so callers can degrade to in-memory
// operation; lookups that find nothing return ErrNotFound, which is not an
// error condition for callers that treat it as an optional result.
package store

// Package content defines the domain schema for PathInformatica: curriculum
// modules and lessons, glossary terms, LOINC and SNOMED CT code samples,
// case scenarios, assessment questions, and per-user progress.
//
// Content records are authored once and never mutated at runtime; only
// UserProgress changes over the lifetime of an installation. Verify checks
// the cross-record invariants the datasets must satisfy:
//
//   - primary keys are unique within each collection
//   - every lesson's ModuleID resolves to an existing module
//   - module prerequisites resolve and form an acyclic graph
//
// Cycle analysis uses Tarjan's strongly-connected-components algorithm so a
// single pass reports every cycle rather than failing on the first edge.
package content

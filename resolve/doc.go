// Package resolve provides pipeline orchestration for ingredient term
// resolution and enrichment.
//
// The Resolver type manages one resolution pass per request, including:
//   - Normalizing a raw comma-separated term string into lookup keys
//   - Partitioning terms into known (persisted) and unknown sets
//   - Hydrating full records for known terms
//   - Enriching the unknown batch through the knowledge model in one call
//   - Persisting enrichment results with insert-if-absent semantics
//
// Known records are always returned, even when enrichment or persistence
// fails; those failures degrade the Result rather than aborting the request.
// Per-item persistence outcomes are reported on the Result so callers can
// inspect exactly which items were stored.
package resolve

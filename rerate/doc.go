// Package rerate provides functionality for backfilling health ratings onto
// ingredient records that were stored without one.
//
// This package supports batch processing of unrated records on a worker
// pool, progress tracking, and retry logic with exponential backoff for
// knowledge model calls.
package rerate

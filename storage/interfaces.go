package storage

import (
	"context"

	"github.com/labelens/labelens/core"
)

// IngredientRepository provides operations for managing ingredient records.
// Implementations must be thread-safe and support concurrent access.
type IngredientRepository interface {
	// FindByTerms returns every record whose name or any alias is a member
	// of terms, in a single pass over storage. Terms must be normalized.
	// Empty input yields an empty result, not an error. Each matching
	// record appears once regardless of how many terms matched it.
	FindByTerms(ctx context.Context, terms []string) ([]*core.Ingredient, error)

	// FindMemberships is the lightweight existence probe: it resolves the
	// same matches as FindByTerms but returns only the membership set of
	// every identifier (name ∪ aliases) attached to any matching record,
	// avoiding full-record transfer during partitioning.
	FindMemberships(ctx context.Context, terms []string) (map[string]struct{}, error)

	// FindByIdentifier retrieves the single record whose name or alias
	// equals term. Returns ErrNotFound if no record matches.
	FindByIdentifier(ctx context.Context, term string) (*core.Ingredient, error)

	// Create validates and inserts a new record. Fails with
	// core.ErrInvalidIngredient on schema violation and ErrDuplicateKey if
	// a record with the same name already exists. The stored record is
	// returned with ID and timestamps populated.
	Create(ctx context.Context, ingredient *core.Ingredient) (*core.Ingredient, error)

	// UpsertIfAbsent inserts the record only if no record with the same
	// name exists; an existing record makes the call a silent no-op. The
	// insert is atomic at the storage layer: concurrent writers racing on
	// the same name resolve to exactly one stored record. Returns true if
	// a record was created.
	UpsertIfAbsent(ctx context.Context, ingredient *core.Ingredient) (bool, error)

	// GetAllIngredients retrieves all ingredient records, ordered by name.
	GetAllIngredients(ctx context.Context) ([]*core.Ingredient, error)

	// UpdateRating writes a health rating onto an existing record.
	// Returns ErrNotFound if the record doesn't exist.
	UpdateRating(ctx context.Context, name string, rating int, rationale string) error

	// Close closes the repository and releases resources.
	Close() error
}

package rerate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labelens/labelens/ai"
	"github.com/labelens/labelens/core"
	"github.com/labelens/labelens/storage"
)

// BatchProcessor re-queries the knowledge model for a batch of unrated
// records and writes the returned ratings back to storage.
type BatchProcessor struct {
	repo           storage.IngredientRepository
	analyzer       ai.IngredientAnalyzer
	category       ai.Category
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for knowledge model calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.IngredientRepository, analyzer ai.IngredientAnalyzer, category ai.Category, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		analyzer:       analyzer,
		category:       category,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		logger:         slog.Default().With("component", "rerate"),
	}
}

// Process asks the knowledge model about one batch of records and updates
// the rating of every record the response covers. Records the model skips
// or returns an out-of-range rating for are logged and left unrated.
func (bp *BatchProcessor) Process(ctx context.Context, records []*core.Ingredient) error {
	if len(records) == 0 {
		return nil
	}

	terms := make([]string, len(records))
	for i, record := range records {
		terms[i] = record.Name
	}

	// Query the knowledge model with retry
	var analysis *ai.Analysis
	err := RetryWithBackoff(ctx, func() error {
		var err error
		analysis, err = bp.analyzer.AnalyzeIngredients(ctx, terms, bp.category)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to analyze batch after %d attempts: %w", bp.maxRetries, err)
	}

	// Index the response by every identifier each entry offers, so a
	// record can be matched even when the model answers under an alias.
	byIdentifier := make(map[string]*ai.AnalyzedIngredient)
	for i := range analysis.Ingredients {
		entry := &analysis.Ingredients[i]
		if name := core.NormalizeTerm(entry.IngredientName); name != "" {
			byIdentifier[name] = entry
		}
		for _, alias := range entry.Aliases {
			if normalized := core.NormalizeTerm(alias); normalized != "" {
				byIdentifier[normalized] = entry
			}
		}
	}

	for _, record := range records {
		entry := matchEntry(byIdentifier, record)
		if entry == nil {
			bp.logger.Warn("Knowledge model skipped ingredient", "name", record.Name)
			continue
		}
		if entry.HealthRating < core.MinHealthRating || entry.HealthRating > core.MaxHealthRating {
			bp.logger.Warn("Knowledge model returned out-of-range rating",
				"name", record.Name,
				"rating", entry.HealthRating)
			continue
		}

		if err := bp.repo.UpdateRating(ctx, record.Name, entry.HealthRating, entry.RatingRationale); err != nil {
			return fmt.Errorf("failed to update rating for %q: %w", record.Name, err)
		}
	}

	return nil
}

// matchEntry finds the response entry for a record by its name first and
// its aliases second.
func matchEntry(byIdentifier map[string]*ai.AnalyzedIngredient, record *core.Ingredient) *ai.AnalyzedIngredient {
	if entry, ok := byIdentifier[record.Name]; ok {
		return entry
	}
	for _, alias := range record.Aliases {
		if entry, ok := byIdentifier[alias]; ok {
			return entry
		}
	}
	return nil
}

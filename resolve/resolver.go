// Copyright 2025 Labelens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/labelens/labelens/ai"
	"github.com/labelens/labelens/core"
	"github.com/labelens/labelens/storage"
)

// Resolver runs the term resolution and enrichment pipeline: normalize the
// raw term list, partition terms into known and unknown against storage,
// hydrate the known records, enrich the unknown batch through the knowledge
// model, and persist newly enriched records best-effort.
type Resolver struct {
	repository storage.IngredientRepository
	analyzer   ai.IngredientAnalyzer
	logger     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResolver creates a new Resolver.
func NewResolver(repository storage.IngredientRepository, analyzer ai.IngredientAnalyzer, opts ...Option) (*Resolver, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}

	r := &Resolver{
		repository: repository,
		analyzer:   analyzer,
		logger:     slog.Default().With("component", "resolver"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// PersistOutcome records the result of persisting one enrichment item.
// A nil Err with Created false means an identically named record already
// existed and the write was a no-op.
type PersistOutcome struct {
	Name    string
	Created bool
	Err     error
}

// Result is the merged response of one resolution pass.
//
// Known always carries the hydrated records for terms that matched storage,
// even when enrichment failed. Enrichment and EnrichmentErr are mutually
// exclusive; both are nil/empty when every term was known. QueryTerms is the
// literal comma-joined string of terms sent for enrichment, empty if none.
type Result struct {
	Known         []*core.Ingredient
	Enrichment    *ai.Analysis
	EnrichmentErr error
	QueryTerms    string
	Persisted     []PersistOutcome
}

// Resolve executes one pass of the pipeline for a raw comma-separated term
// string and a product category.
//
// Validation and read-path failures abort the call: a returned error wrapping
// ErrInvalidInput is a client error, anything else is a storage fault. Past
// the read path the call always succeeds; knowledge model and persistence
// failures degrade the Result instead of aborting it.
func (r *Resolver) Resolve(ctx context.Context, rawTerms string, category ai.Category) (*Result, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, fmt.Errorf("%w: %q", ai.ErrInvalidCategory, string(category)))
	}

	terms, err := core.NormalizeTerms(rawTerms)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	terms = core.DedupeTerms(terms)

	memberships, err := r.repository.FindMemberships(ctx, terms)
	if err != nil {
		return nil, fmt.Errorf("existence probe failed: %w", err)
	}

	// Partition on membership. Every term lands in exactly one bucket.
	var known, unknown []string
	for _, term := range terms {
		if _, ok := memberships[term]; ok {
			known = append(known, term)
		} else {
			unknown = append(unknown, term)
		}
	}

	result := &Result{}

	if len(known) > 0 {
		result.Known, err = r.repository.FindByTerms(ctx, known)
		if err != nil {
			return nil, fmt.Errorf("hydrating known records failed: %w", err)
		}
	}

	if len(unknown) == 0 {
		return result, nil
	}

	result.QueryTerms = strings.Join(unknown, ",")

	analysis, err := r.analyzer.AnalyzeIngredients(ctx, unknown, category)
	if err != nil {
		r.logger.Error("Enrichment failed",
			"terms", result.QueryTerms,
			"error", err)
		result.EnrichmentErr = err
		return result, nil
	}
	result.Enrichment = analysis

	result.Persisted = r.persistAnalysis(ctx, analysis)

	return result, nil
}

// persistAnalysis maps each enrichment item to a record and stores it with
// insert-if-absent semantics. A failure on one item never stops the rest.
func (r *Resolver) persistAnalysis(ctx context.Context, analysis *ai.Analysis) []PersistOutcome {
	outcomes := make([]PersistOutcome, 0, len(analysis.Ingredients))
	for _, item := range analysis.Ingredients {
		record := recordFromAnalyzed(item)

		created, err := r.repository.UpsertIfAbsent(ctx, record)
		if err != nil {
			r.logger.Error("Failed to persist enriched ingredient",
				"name", record.Name,
				"error", err)
		}
		outcomes = append(outcomes, PersistOutcome{
			Name:    record.Name,
			Created: created,
			Err:     err,
		})
	}
	return outcomes
}

// recordFromAnalyzed converts one knowledge model entry into a storable
// record, enforcing normalization and schema defaults on the way in rather
// than trusting the model's output shape.
func recordFromAnalyzed(item ai.AnalyzedIngredient) *core.Ingredient {
	name := core.NormalizeTerm(item.IngredientName)

	displayName := strings.TrimSpace(item.IngredientName)
	if displayName == "" {
		displayName = name
	}

	var aliases []string
	for _, alias := range item.Aliases {
		normalized := core.NormalizeTerm(alias)
		if normalized == "" || normalized == name {
			continue
		}
		aliases = append(aliases, normalized)
	}
	aliases = core.DedupeTerms(aliases)

	source, err := core.ParseSource(item.Source)
	if err != nil {
		source = core.SourceLLM
	}

	return &core.Ingredient{
		Name:                 name,
		DisplayName:          displayName,
		Aliases:              aliases,
		Functions:            item.Functions,
		HealthRating:         item.HealthRating,
		RatingRationale:      item.RatingRationale,
		PotentialSideEffects: item.PotentialSideEffects,
		Source:               source,
		SourceDetails:        item.SourceDetails,
	}
}

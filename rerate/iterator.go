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


package rerate

import (
	"context"

	"github.com/labelens/labelens/core"
	"github.com/labelens/labelens/storage"
)

const (
	// DefaultBatchSize is the default number of records to process in each batch
	DefaultBatchSize = 20
)

// UnratedIterator iterates over all unrated ingredient records in batches.
type UnratedIterator struct {
	repo      storage.IngredientRepository
	batchSize int
}

// NewUnratedIterator creates a new iterator over unrated records.
// batchSize: number of records to process in each batch (must be > 0)
func NewUnratedIterator(repo storage.IngredientRepository, batchSize int) *UnratedIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &UnratedIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// Unrated returns every stored record without a health rating.
func (it *UnratedIterator) Unrated(ctx context.Context) ([]*core.Ingredient, error) {
	all, err := it.repo.GetAllIngredients(ctx)
	if err != nil {
		return nil, err
	}

	var unrated []*core.Ingredient
	for _, ingredient := range all {
		if !ingredient.Rated() {
			unrated = append(unrated, ingredient)
		}
	}
	return unrated, nil
}

// ForEach iterates over all unrated records, calling fn for each batch.
// Iteration stops on first error from fn or when all records are processed.
// Context cancellation is checked between batches.
func (it *UnratedIterator) ForEach(ctx context.Context, fn func([]*core.Ingredient) error) error {
	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	records, err := it.Unrated(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		// No records to process
		return nil
	}

	// Process records in batches of batchSize
	for i := 0; i < len(records); i += it.batchSize {
		end := i + it.batchSize
		if end > len(records) {
			end = len(records)
		}

		batch := records[i:end]

		// Call user function with batch
		if err := fn(batch); err != nil {
			return err
		}

		// Check context after each batch
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}

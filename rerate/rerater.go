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
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/labelens/labelens/ai"
	"github.com/labelens/labelens/storage"
)

// Config holds configuration for the rating backfill operation.
type Config struct {
	// Category is the product domain the knowledge model reasons in
	Category ai.Category

	// BatchSize is the number of records to send per knowledge model call
	BatchSize int

	// PoolSize is the number of batches processed concurrently
	PoolSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed calls
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Category:       ai.CategoryCosmetic,
		BatchSize:      DefaultBatchSize,
		PoolSize:       2,
		ReportInterval: 20,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Rerater orchestrates the rating backfill for all unrated records in a
// database.
type Rerater struct {
	repo      storage.IngredientRepository
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *UnratedIterator
}

// NewRerater creates a new rerater.
// progress: where to write progress output (typically os.Stderr)
func NewRerater(repo storage.IngredientRepository, analyzer ai.IngredientAnalyzer, config *Config, progress io.Writer) *Rerater {
	if config == nil {
		config = DefaultConfig()
	}

	processor := NewBatchProcessor(repo, analyzer, config.Category, config.MaxRetries, config.RetryDelay)
	iterator := NewUnratedIterator(repo, config.BatchSize)

	return &Rerater{
		repo:      repo,
		config:    config,
		progress:  progress,
		processor: processor,
		iterator:  iterator,
	}
}

// Run executes the rating backfill.
// Every unrated ingredient in the database is sent to the knowledge model,
// batches running concurrently on a worker pool. Progress is reported to
// the configured writer. Batch failures are collected; one failing batch
// does not stop the others.
func (r *Rerater) Run(ctx context.Context) error {
	unrated, err := r.iterator.Unrated(ctx)
	if err != nil {
		return fmt.Errorf("failed to query records: %w", err)
	}

	total := len(unrated)
	if total == 0 {
		fmt.Fprintf(r.progress, "No unrated ingredients found (0 records)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting rating backfill of %d ingredients (batch size: %d, workers: %d)\n",
		total, r.config.BatchSize, r.config.PoolSize)

	pool, err := ants.NewPool(r.config.PoolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for i := 0; i < total; i += r.config.BatchSize {
		end := i + r.config.BatchSize
		if end > total {
			end = total
		}
		batch := unrated[i:end]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			if err := r.processor.Process(ctx, batch); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			tracker.Increment(len(batch))
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}

	wg.Wait()
	tracker.Finish()

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Rating backfill complete. Processed %d ingredients in %v (%.1f ingredients/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}

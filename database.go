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


package labelens

import (
	"context"
	"io"
	"log/slog"

	"github.com/labelens/labelens/ai"
	"github.com/labelens/labelens/ai/openai"
	"github.com/labelens/labelens/ai/vision"
	"github.com/labelens/labelens/rerate"
	"github.com/labelens/labelens/resolve"
	"github.com/labelens/labelens/server"
	"github.com/labelens/labelens/storage"
	"github.com/labelens/labelens/storage/badger"
)

// Database bundles the storage backend, the ingredient repository and the
// AI provider behind one lifecycle.
type Database struct {
	backend  *badger.Backend
	repo     storage.IngredientRepository
	provider ai.Provider
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig  *ai.Config
	enableOCR bool
	inMemory  bool
}

// WithAIConfig overrides the knowledge model configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithOCR enables the OCR service, allowing image analysis. Requires Google
// Cloud credentials in the environment.
func WithOCR() DatabaseOption {
	return func(o *databaseOptions) {
		o.enableOCR = true
	}
}

// WithInMemory opens the storage backend in memory, mainly for tests.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens the storage backend at filePath and constructs the
// repository and AI provider.
func NewDatabase(ctx context.Context, filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create ingredient repository
	repo, err := badger.NewIngredientRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create knowledge model client with configured settings
	analyzer, err := openai.NewAnalyzer(options.aiConfig)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	var extractor ai.TextExtractor
	if options.enableOCR {
		extractor, err = vision.NewTextExtractor(ctx)
		if err != nil {
			repo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:  backend,
		repo:     repo,
		provider: ai.NewProvider(analyzer, extractor),
		logger:   slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	// Close repository
	if err := db.repo.Close(); err != nil {
		db.logger.Error("error closing ingredient repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) IngredientRepository() storage.IngredientRepository {
	return db.repo
}

func (db *Database) Provider() ai.Provider {
	return db.provider
}

func (db *Database) NewResolver(opts ...resolve.Option) (*resolve.Resolver, error) {
	return resolve.NewResolver(db.repo, db.provider.Analyzer(), opts...)
}

func (db *Database) NewServer(opts ...server.Option) (*server.Server, error) {
	resolver, err := db.NewResolver()
	if err != nil {
		return nil, err
	}

	if extractor := db.provider.TextExtractor(); extractor != nil {
		opts = append(opts, server.WithTextExtractor(extractor))
	}
	return server.NewServer(db.repo, resolver, opts...)
}

func (db *Database) NewRerater(config *rerate.Config, progress io.Writer) *rerate.Rerater {
	return rerate.NewRerater(db.repo, db.provider.Analyzer(), config, progress)
}

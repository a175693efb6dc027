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


package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/labelens/labelens"
	"github.com/labelens/labelens/ai"
	"github.com/labelens/labelens/core"
	"github.com/labelens/labelens/rerate"
	"github.com/labelens/labelens/storage"
)

func main() {
	app := &cli.App{
		Name:  "labelens",
		Usage: "Ingredient label analysis backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Address to listen on",
						Value: ":8080",
					},
					&cli.StringFlag{
						Name:  "knowledge-host",
						Usage: "Knowledge model service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "knowledge-model",
						Usage: "Knowledge model name",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "API token for the knowledge model service",
						EnvVars: []string{"LABELENS_MODEL_TOKEN"},
					},
					&cli.BoolFlag{
						Name:  "ocr",
						Usage: "Enable image analysis via Google Cloud Vision (requires credentials)",
					},
				},
			},
			{
				Name:   "rerate",
				Usage:  "Backfill health ratings for unrated ingredients",
				Action: rerateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "knowledge-host",
						Usage: "Knowledge model service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "knowledge-model",
						Usage: "Knowledge model name",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "API token for the knowledge model service",
						EnvVars: []string{"LABELENS_MODEL_TOKEN"},
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Product category (cosmetic or food)",
						Value: "cosmetic",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of ingredients to send per model call",
						Value: 20,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of batches processed concurrently",
						Value: 2,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N ingredients",
						Value: 20,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed model calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:      "import",
				Usage:     "Import curated ingredient records from a JSON file",
				ArgsUsage: "<file.json>",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Provenance recorded on imported records",
						Value: core.SourceDatabaseImport.String(),
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	config := ai.NewConfig(
		ai.WithKnowledgeHost(c.String("knowledge-host")),
		ai.WithKnowledgeModel(c.String("knowledge-model")),
		ai.WithToken(c.String("token")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	opts := []labelens.DatabaseOption{labelens.WithAIConfig(aiConfig)}
	if c.Bool("ocr") {
		opts = append(opts, labelens.WithOCR())
	}

	db, err := labelens.NewDatabase(ctx, c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	srv, err := db.NewServer()
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(c.String("addr"))
}

func rerateCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	category, err := ai.ParseCategory(c.String("category"))
	if err != nil {
		return err
	}

	rerateConfig := &rerate.Config{
		Category:       category,
		BatchSize:      c.Int("batch-size"),
		PoolSize:       c.Int("workers"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	// Validate config
	if rerateConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if rerateConfig.PoolSize <= 0 {
		return fmt.Errorf("workers must be greater than 0")
	}
	if rerateConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if rerateConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	db, err := labelens.NewDatabase(ctx, c.String("db"), labelens.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Knowledge host: %s\n", c.String("knowledge-host"))
	fmt.Fprintf(os.Stderr, "Knowledge model: %s\n", c.String("knowledge-model"))
	fmt.Fprintln(os.Stderr)

	rerater := db.NewRerater(rerateConfig, os.Stderr)
	if err := rerater.Run(ctx); err != nil {
		return fmt.Errorf("rating backfill failed: %w", err)
	}

	return nil
}

// importRecord mirrors the ingredient schema for curated data files.
type importRecord struct {
	Name                 string   `json:"name"`
	DisplayName          string   `json:"display_name"`
	Aliases              []string `json:"aliases"`
	Functions            []string `json:"functions"`
	HealthRating         int      `json:"health_rating"`
	RatingRationale      string   `json:"rating_rationale"`
	PotentialSideEffects []string `json:"potential_side_effects"`
	SourceDetails        string   `json:"source_details"`
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one JSON file argument")
	}
	filePath := c.Args().First()

	source, err := core.ParseSource(c.String("source"))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	var records []importRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filePath, err)
	}

	db, err := labelens.NewDatabase(ctx, c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := db.IngredientRepository()

	imported, skipped, failed := 0, 0, 0
	for _, rec := range records {
		name := core.NormalizeTerm(rec.Name)
		displayName := strings.TrimSpace(rec.DisplayName)
		if displayName == "" {
			displayName = strings.TrimSpace(rec.Name)
		}
		if displayName == "" {
			displayName = name
		}

		var aliases []string
		for _, alias := range rec.Aliases {
			if normalized := core.NormalizeTerm(alias); normalized != "" && normalized != name {
				aliases = append(aliases, normalized)
			}
		}

		_, err := repo.Create(ctx, &core.Ingredient{
			Name:                 name,
			DisplayName:          displayName,
			Aliases:              core.DedupeTerms(aliases),
			Functions:            rec.Functions,
			HealthRating:         rec.HealthRating,
			RatingRationale:      rec.RatingRationale,
			PotentialSideEffects: rec.PotentialSideEffects,
			Source:               source,
			SourceDetails:        rec.SourceDetails,
		})
		switch {
		case err == nil:
			imported++
		case errors.Is(err, storage.ErrDuplicateKey):
			skipped++
		default:
			failed++
			slog.Error("Failed to import record", "name", name, "error", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Imported %d records (%d duplicates skipped, %d failed)\n",
		imported, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d records failed to import", failed)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

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


// Package ai provides abstractions for the AI services used in Labelens.
//
// This package defines interfaces for the two external knowledge sources the
// resolution pipeline depends on: the knowledge model that classifies
// ingredient health implications, and the OCR service that extracts label
// text from product images. It follows the dependency inversion principle,
// allowing the core domain and business logic to depend on abstractions
// rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - IngredientAnalyzer: classifies batches of unresolved ingredient terms
//   - TextExtractor: extracts text from a product label image
//   - Provider: aggregates AI services for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: knowledge model client for OpenAI-compatible chat APIs
//   - ai/vision: OCR via Google Cloud Vision
//   - ai/mock: test doubles for unit testing without external dependencies
//
// # Failure Classification
//
// AnalyzeIngredients distinguishes the two ways an enrichment attempt can
// fail: *ModelCallError (the call itself failed) and *ParseError (a response
// arrived but did not parse as the expected JSON). Both are ordinary error
// returns that callers inspect with errors.As. Neither is fatal to a
// resolution request: the known-record portion of a response is served
// regardless.
//
// # Usage Example
//
//	cfg := ai.NewConfig(
//	    ai.WithKnowledgeHost("http://localhost:11434"),
//	    ai.WithKnowledgeModel("qwen2.5:3b"),
//	)
//	analyzer, err := openai.NewAnalyzer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	analysis, err := analyzer.AnalyzeIngredients(ctx, []string{"parfum"}, ai.CategoryCosmetic)
package ai

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


package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/labelens/labelens/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Analyzer implements ai.IngredientAnalyzer using OpenAI-compatible chat APIs.
type Analyzer struct {
	client llms.Model
	logger *slog.Logger
}

// newAnalyzer is an internal constructor that returns the concrete type.
func newAnalyzer(config *ai.Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.KnowledgeHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.KnowledgeModel),
	)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		client: client,
		logger: slog.Default().With("component", "openai-analyzer"),
	}, nil
}

// NewAnalyzer creates an ingredient analyzer using the provided configuration.
//
// Returns ai.IngredientAnalyzer interface to enforce abstraction.
func NewAnalyzer(config *ai.Config) (ai.IngredientAnalyzer, error) {
	return newAnalyzer(config)
}

// AnalyzeIngredients queries the knowledge model once with the full batch of
// terms. There is no retry here: a failed call or an unparseable response is
// surfaced once per request as a classified error.
func (a *Analyzer) AnalyzeIngredients(ctx context.Context, terms []string, category ai.Category) (*ai.Analysis, error) {
	if len(terms) == 0 {
		return nil, ai.ErrNoTerms
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ai.ErrInvalidCategory, category)
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt(category)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildUserPrompt(terms)),
			},
		},
	}

	response, err := a.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		a.logger.Error("knowledge model call failed", "terms", len(terms), "err", err)
		return nil, &ai.ModelCallError{Cause: err}
	}

	if len(response.Choices) < 1 {
		a.logger.Warn("no choices returned from model")
		return nil, &ai.ModelCallError{Cause: errors.New("model returned no choices")}
	}

	raw := response.Choices[0].Content
	attempted := repairJSON(extractJSON(raw))

	var analysis ai.Analysis
	if err := json.Unmarshal([]byte(attempted), &analysis); err != nil {
		a.logger.Warn("error parsing knowledge model response", "response", attempted, "err", err)
		return nil, &ai.ParseError{RawResponse: raw, Attempted: attempted, Cause: err}
	}
	if analysis.Ingredients == nil {
		err := errors.New(`missing "ingredients" key`)
		a.logger.Warn("knowledge model response has wrong shape", "response", attempted)
		return nil, &ai.ParseError{RawResponse: raw, Attempted: attempted, Cause: err}
	}

	a.logger.Debug("analyzed ingredients", "requested", len(terms), "returned", len(analysis.Ingredients))
	return &analysis, nil
}

// extractJSON locates the JSON payload in a model response: the contents of
// the first fenced code block if one is present, otherwise the entire
// trimmed response.
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	start := strings.Index(text, "```")
	if start < 0 {
		return text
	}
	inner := text[start+3:]
	inner = strings.TrimPrefix(inner, "json")
	if end := strings.Index(inner, "```"); end >= 0 {
		inner = inner[:end]
	}
	return strings.TrimSpace(inner)
}

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


package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/labelens/labelens/ai"
	"github.com/labelens/labelens/core"
	"github.com/labelens/labelens/resolve"
	"github.com/labelens/labelens/storage"
)

// llmErrorMessage is the stable client-facing message for a degraded
// enrichment section; the underlying cause goes in the details field.
const llmErrorMessage = "Failed to get analysis from LLM."

type analyzeRequest struct {
	Terms    string `json:"terms"`
	Category string `json:"category"`
}

type llmErrorPayload struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

type analyzeResponse struct {
	DBData        []*core.Ingredient `json:"dbData"`
	LLMData       *ai.Analysis       `json:"llmData,omitempty"`
	LLMError      *llmErrorPayload   `json:"llmError,omitempty"`
	LLMQueryTerms string             `json:"llmQueryTerms"`
}

// analyze runs the resolution pipeline over a raw comma-separated term
// string. Known records are always returned; a knowledge model failure is
// reported inline, never as a failed request.
func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.", err.Error())
		return
	}

	category, err := ai.ParseCategory(req.Category)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category.", err.Error())
		return
	}

	s.runPipeline(c, req.Terms, category)
}

// analyzeImage accepts a multipart image upload, extracts the printed text
// through the OCR service, and feeds it to the resolution pipeline.
func (s *Server) analyzeImage(c *gin.Context) {
	if s.extractor == nil {
		respondError(c, http.StatusServiceUnavailable, "Image analysis is not available.")
		return
	}

	category, err := ai.ParseCategory(c.PostForm("category"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid category.", err.Error())
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Missing image upload.", err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not read image upload.", err.Error())
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Could not read image upload.", err.Error())
		return
	}

	text, err := s.extractor.ExtractText(c.Request.Context(), image, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		s.logger.Error("OCR extraction failed", "error", err)
		respondError(c, http.StatusBadGateway, "Failed to extract text from image.")
		return
	}

	// OCR output is line-oriented; the pipeline expects comma separation.
	rawTerms := strings.ReplaceAll(text, "\n", ",")

	s.runPipeline(c, rawTerms, category)
}

func (s *Server) runPipeline(c *gin.Context, rawTerms string, category ai.Category) {
	result, err := s.resolver.Resolve(c.Request.Context(), rawTerms, category)
	if err != nil {
		if errors.Is(err, resolve.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "Invalid ingredient terms.", err.Error())
			return
		}
		s.logger.Error("Resolution failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to resolve ingredients.")
		return
	}

	payload := analyzeResponse{
		DBData:        result.Known,
		LLMData:       result.Enrichment,
		LLMQueryTerms: result.QueryTerms,
	}
	if payload.DBData == nil {
		payload.DBData = []*core.Ingredient{}
	}
	if result.EnrichmentErr != nil {
		payload.LLMError = &llmErrorPayload{
			Error:   llmErrorMessage,
			Details: result.EnrichmentErr.Error(),
		}
	}

	respondOK(c, http.StatusOK, payload)
}

type createIngredientRequest struct {
	Name                 string   `json:"name"`
	DisplayName          string   `json:"display_name"`
	Aliases              []string `json:"aliases"`
	Functions            []string `json:"functions"`
	HealthRating         int      `json:"health_rating"`
	RatingRationale      string   `json:"rating_rationale"`
	PotentialSideEffects []string `json:"potential_side_effects"`
	Source               string   `json:"source"`
	SourceDetails        string   `json:"source_details"`
}

// createIngredient validates and stores a record supplied directly by a
// client. Unlike the pipeline's upsert path, failures here are surfaced.
func (s *Server) createIngredient(c *gin.Context) {
	var req createIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.", err.Error())
		return
	}

	source := core.SourceUserContribution
	if req.Source != "" {
		parsed, err := core.ParseSource(req.Source)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid source.", err.Error())
			return
		}
		source = parsed
	}

	name := core.NormalizeTerm(req.Name)
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = strings.TrimSpace(req.Name)
	}
	if displayName == "" {
		displayName = name
	}

	var aliases []string
	for _, alias := range req.Aliases {
		if normalized := core.NormalizeTerm(alias); normalized != "" && normalized != name {
			aliases = append(aliases, normalized)
		}
	}

	record := &core.Ingredient{
		Name:                 name,
		DisplayName:          displayName,
		Aliases:              core.DedupeTerms(aliases),
		Functions:            req.Functions,
		HealthRating:         req.HealthRating,
		RatingRationale:      req.RatingRationale,
		PotentialSideEffects: req.PotentialSideEffects,
		Source:               source,
		SourceDetails:        req.SourceDetails,
	}

	created, err := s.repo.Create(c.Request.Context(), record)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidIngredient):
			respondError(c, http.StatusBadRequest, "Ingredient failed validation.", core.Violations(err)...)
		case errors.Is(err, storage.ErrDuplicateKey):
			respondError(c, http.StatusConflict, "An ingredient with this name already exists.")
		default:
			s.logger.Error("Failed to create ingredient", "name", name, "error", err)
			respondError(c, http.StatusInternalServerError, "Failed to store ingredient.")
		}
		return
	}

	respondOK(c, http.StatusCreated, created)
}

// getIngredient fetches one record by name or alias.
func (s *Server) getIngredient(c *gin.Context) {
	term := core.NormalizeTerm(c.Param("name"))

	ingredient, err := s.repo.FindByIdentifier(c.Request.Context(), term)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidQuery) {
			respondError(c, http.StatusNotFound, "Ingredient not found.")
			return
		}
		s.logger.Error("Lookup failed", "term", term, "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to look up ingredient.")
		return
	}

	respondOK(c, http.StatusOK, ingredient)
}

// searchIngredients returns every stored record matching the comma-separated
// terms query parameter by name or alias.
func (s *Server) searchIngredients(c *gin.Context) {
	terms, err := core.NormalizeTerms(c.Query("terms"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ingredient terms.", err.Error())
		return
	}

	results, err := s.repo.FindByTerms(c.Request.Context(), core.DedupeTerms(terms))
	if err != nil {
		s.logger.Error("Search failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to search ingredients.")
		return
	}
	if results == nil {
		results = []*core.Ingredient{}
	}

	respondOK(c, http.StatusOK, results)
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelens/labelens/ai"
	"github.com/labelens/labelens/ai/mock"
	"github.com/labelens/labelens/core"
	"github.com/labelens/labelens/resolve"
	"github.com/labelens/labelens/storage"
	"github.com/labelens/labelens/storage/badger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, opts ...Option) (*Server, storage.IngredientRepository, *mock.MockAnalyzer) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	analyzer := mock.NewMockAnalyzer()
	resolver, err := resolve.NewResolver(repo, analyzer)
	require.NoError(t, err)

	srv, err := NewServer(repo, resolver, opts...)
	require.NoError(t, err)

	return srv, repo, analyzer
}

func seedIngredient(t *testing.T, repo storage.IngredientRepository, name string, aliases ...string) {
	t.Helper()
	_, err := repo.Create(context.Background(), &core.Ingredient{
		Name:        name,
		DisplayName: name,
		Aliases:     aliases,
		Source:      core.SourceCurated,
	})
	require.NoError(t, err)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

type analyzeBody struct {
	Success bool `json:"success"`
	Data    struct {
		DBData  []core.Ingredient `json:"dbData"`
		LLMData *ai.Analysis      `json:"llmData"`
		LLMErr  *struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		} `json:"llmError"`
		LLMQueryTerms string `json:"llmQueryTerms"`
	} `json:"data"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func decodeAnalyze(t *testing.T, rec *httptest.ResponseRecorder) analyzeBody {
	t.Helper()
	var body analyzeBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAnalyzeEndToEnd(t *testing.T) {
	srv, repo, analyzer := newTestServer(t)

	seedIngredient(t, repo, "water", "aqua")
	seedIngredient(t, repo, "glycerin")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/analyze", gin.H{
		"terms":    "Water,Glycerin,UnknownXYZ",
		"category": "cosmetic",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeAnalyze(t, rec)
	assert.True(t, body.Success)
	assert.Len(t, body.Data.DBData, 2)
	assert.Equal(t, "unknownxyz", body.Data.LLMQueryTerms)
	require.NotNil(t, body.Data.LLMData)
	require.Len(t, body.Data.LLMData.Ingredients, 1)
	assert.Nil(t, body.Data.LLMErr)
	assert.Equal(t, 1, analyzer.CallCount())
}

func TestAnalyzeAllKnownSkipsModel(t *testing.T) {
	srv, repo, analyzer := newTestServer(t)
	seedIngredient(t, repo, "water")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/analyze", gin.H{
		"terms":    "Water",
		"category": "food",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeAnalyze(t, rec)
	assert.Len(t, body.Data.DBData, 1)
	assert.Empty(t, body.Data.LLMQueryTerms)
	assert.Equal(t, 0, analyzer.CallCount())
}

func TestAnalyzeInvalidInput(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/analyze", gin.H{
		"terms":    "water",
		"category": "beverage",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/analyze", gin.H{
		"terms":    " ,() ",
		"category": "cosmetic",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeAnalyze(t, rec)
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Message)
}

func TestAnalyzeModelFailureDegrades(t *testing.T) {
	srv, repo, analyzer := newTestServer(t)
	seedIngredient(t, repo, "water")

	analyzer.AnalyzeIngredientsFunc = func(ctx context.Context, terms []string, category ai.Category) (*ai.Analysis, error) {
		return nil, &ai.ModelCallError{Cause: errors.New("connection refused")}
	}

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/analyze", gin.H{
		"terms":    "water,mystery",
		"category": "cosmetic",
	})

	// The request itself succeeds; only the enrichment section degrades.
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeAnalyze(t, rec)
	assert.True(t, body.Success)
	assert.Len(t, body.Data.DBData, 1)
	require.NotNil(t, body.Data.LLMErr)
	assert.Equal(t, "Failed to get analysis from LLM.", body.Data.LLMErr.Error)
	assert.Contains(t, body.Data.LLMErr.Details, "connection refused")
	assert.Equal(t, "mystery", body.Data.LLMQueryTerms)
}

func TestAnalyzeImage(t *testing.T) {
	extractor := mock.NewMockTextExtractor("Water\nGlycerin")
	srv, repo, _ := newTestServer(t, WithTextExtractor(extractor))
	seedIngredient(t, repo, "water")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("category", "cosmetic"))
	part, err := writer.CreateFormFile("image", "label.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/image", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeAnalyze(t, rec)
	assert.Len(t, body.Data.DBData, 1)
	assert.Equal(t, "glycerin", body.Data.LLMQueryTerms)
	assert.Equal(t, 1, extractor.CallCount())
}

func TestAnalyzeImageWithoutOCR(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/image", strings.NewReader(""))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateIngredient(t *testing.T) {
	srv, repo, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/ingredients", gin.H{
		"name":         "Sodium Laureth Sulfate",
		"display_name": "Sodium Laureth Sulfate",
		"aliases":      []string{"SLES"},
		"source":       "Curated",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	stored, err := repo.FindByIdentifier(context.Background(), "sles")
	require.NoError(t, err)
	assert.Equal(t, "sodium laureth sulfate", stored.Name)
	assert.Equal(t, core.SourceCurated, stored.Source)

	// Duplicate name
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/ingredients", gin.H{
		"name": "sodium laureth sulfate",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateIngredientValidationErrors(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/ingredients", gin.H{
		"name":          "",
		"health_rating": 7,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Success bool     `json:"success"`
		Errors  []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	// Field-level messages for every violation
	assert.NotEmpty(t, body.Errors)
}

func TestGetIngredient(t *testing.T) {
	srv, repo, _ := newTestServer(t)
	seedIngredient(t, repo, "parfum", "fragrance")

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/ingredients/parfum", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Alias lookup and raw-form normalization
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/ingredients/Fragrance", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/ingredients/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchIngredients(t *testing.T) {
	srv, repo, _ := newTestServer(t)
	seedIngredient(t, repo, "water", "aqua")
	seedIngredient(t, repo, "glycerin")

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/ingredients?terms=Aqua,Glycerin,missing", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool              `json:"success"`
		Data    []core.Ingredient `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 2)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/ingredients?terms=", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

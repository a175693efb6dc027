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
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/labelens/labelens/ai"
	"github.com/labelens/labelens/resolve"
	"github.com/labelens/labelens/storage"
)

var (
	// ErrRepositoryRequired is returned when NewServer is called without
	// a repository.
	ErrRepositoryRequired = errors.New("ingredient repository is required")

	// ErrResolverRequired is returned when NewServer is called without a
	// resolver.
	ErrResolverRequired = errors.New("resolver is required")
)

// Server is the HTTP surface over the repository and resolution pipeline.
type Server struct {
	router    *gin.Engine
	repo      storage.IngredientRepository
	resolver  *resolve.Resolver
	extractor ai.TextExtractor
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithTextExtractor enables the image analysis endpoint with the given OCR
// service. Without it the endpoint reports OCR as unavailable.
func WithTextExtractor(extractor ai.TextExtractor) Option {
	return func(s *Server) error {
		s.extractor = extractor
		return nil
	}
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(repo storage.IngredientRepository, resolver *resolve.Resolver, opts ...Option) (*Server, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if resolver == nil {
		return nil, ErrResolverRequired
	}

	s := &Server{
		repo:     repo,
		resolver: resolver,
		logger:   slog.Default().With("component", "server"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(s.logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", s.healthCheck)

	api := router.Group("/api/v1")
	{
		api.POST("/analyze", s.analyze)
		api.POST("/analyze/image", s.analyzeImage)
		api.POST("/ingredients", s.createIngredient)
		api.GET("/ingredients", s.searchIngredients)
		api.GET("/ingredients/:name", s.getIngredient)
	}

	s.router = router
	return s, nil
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server on the given address and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Info("Starting HTTP server", "addr", addr)
	return s.router.Run(addr)
}

func (s *Server) healthCheck(c *gin.Context) {
	respondOK(c, 200, gin.H{"status": "ok"})
}

package ai

import (
	"context"
	"io"
)

// IngredientAnalyzer asks the knowledge model to classify a batch of
// unresolved ingredient terms. Implementations must be thread-safe for
// concurrent use.
type IngredientAnalyzer interface {
	// AnalyzeIngredients sends the full batch of terms in a single model
	// call and returns the parsed analysis. The terms must be normalized
	// and non-empty; category selects the product domain for the prompt.
	//
	// Failures are classified: a *ModelCallError means the call itself
	// failed (network, quota), a *ParseError means a response arrived but
	// did not contain valid JSON. Callers are expected to degrade rather
	// than abort on either.
	AnalyzeIngredients(ctx context.Context, terms []string, category Category) (*Analysis, error)
}

// TextExtractor turns an image into the plain text printed on it.
// Implementations must be thread-safe for concurrent use.
type TextExtractor interface {
	// ExtractText runs OCR over the image bytes and returns the extracted
	// text. An empty string with a nil error means no text was found.
	ExtractText(ctx context.Context, image []byte, mimeType string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management.
type Provider interface {
	// Analyzer returns the ingredient analysis service.
	Analyzer() IngredientAnalyzer

	// TextExtractor returns the OCR service, or nil if OCR is not
	// configured for this deployment.
	TextExtractor() TextExtractor

	// Close releases resources held by the provider and its services.
	Close() error
}

// NewProvider bundles an analyzer and an optional text extractor into a
// Provider. extractor may be nil when OCR is disabled.
func NewProvider(analyzer IngredientAnalyzer, extractor TextExtractor) Provider {
	return &provider{analyzer: analyzer, extractor: extractor}
}

type provider struct {
	analyzer  IngredientAnalyzer
	extractor TextExtractor
}

func (p *provider) Analyzer() IngredientAnalyzer { return p.analyzer }

func (p *provider) TextExtractor() TextExtractor { return p.extractor }

func (p *provider) Close() error {
	var err error
	if closer, ok := p.analyzer.(io.Closer); ok {
		err = closer.Close()
	}
	if closer, ok := p.extractor.(io.Closer); ok {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

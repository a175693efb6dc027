package mock

import (
	"context"

	"github.com/labelens/labelens/ai"
)

var _ ai.TextExtractor = (*MockTextExtractor)(nil)

// MockTextExtractor is a test double for ai.TextExtractor.
type MockTextExtractor struct {
	// ExtractTextFunc is called by ExtractText if set.
	// If nil, Text is returned unconditionally.
	ExtractTextFunc func(ctx context.Context, image []byte, mimeType string) (string, error)

	// Text is the canned OCR output used by the default behavior.
	Text string

	callCount int
}

// NewMockTextExtractor creates a mock extractor returning the given text.
func NewMockTextExtractor(text string) *MockTextExtractor {
	return &MockTextExtractor{Text: text}
}

// ExtractText returns the canned text, ignoring the image bytes.
func (m *MockTextExtractor) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	m.callCount++
	if m.ExtractTextFunc != nil {
		return m.ExtractTextFunc(ctx, image, mimeType)
	}
	return m.Text, nil
}

// CallCount returns the number of times ExtractText was called.
func (m *MockTextExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockTextExtractor) Reset() {
	m.callCount = 0
	m.ExtractTextFunc = nil
}

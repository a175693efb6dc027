package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/labelens/labelens/ai"
)

func TestMockTextExtractorCannedText(t *testing.T) {
	var extractor ai.TextExtractor = NewMockTextExtractor("Water\nGlycerin")

	text, err := extractor.ExtractText(context.Background(), []byte{0x1}, "image/png")
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "Water\nGlycerin" {
		t.Errorf("got %q, want canned text", text)
	}
}

func TestMockTextExtractorCustomFunc(t *testing.T) {
	boom := errors.New("ocr unavailable")
	m := NewMockTextExtractor("ignored")
	m.ExtractTextFunc = func(ctx context.Context, image []byte, mimeType string) (string, error) {
		return "", boom
	}

	_, err := m.ExtractText(context.Background(), nil, "image/jpeg")
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want custom error", err)
	}
	if m.CallCount() != 1 {
		t.Errorf("call count = %d, want 1", m.CallCount())
	}

	m.Reset()
	if m.CallCount() != 0 {
		t.Errorf("call count after reset = %d, want 0", m.CallCount())
	}
}

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


// Package vision implements ai.TextExtractor using Google Cloud Vision's
// document text detection. Credentials come from the standard
// GOOGLE_APPLICATION_CREDENTIALS environment.
package vision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gcv "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/labelens/labelens/ai"
)

const annotateTimeout = 60 * time.Second

// TextExtractor implements ai.TextExtractor over the Cloud Vision API.
type TextExtractor struct {
	client *gcv.ImageAnnotatorClient
	logger *slog.Logger
}

// NewTextExtractor creates an OCR text extractor backed by Cloud Vision.
//
// Returns ai.TextExtractor interface to enforce abstraction.
func NewTextExtractor(ctx context.Context) (ai.TextExtractor, error) {
	client, err := gcv.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &TextExtractor{
		client: client,
		logger: slog.Default().With("component", "vision-extractor"),
	}, nil
}

// ExtractText runs document text detection over the image bytes and returns
// the full extracted text with whitespace collapsed to single spaces per line.
func (e *TextExtractor) ExtractText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, annotateTimeout)
	defer cancel()

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := e.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return "", nil
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return "", errors.New("vision annotate error: " + r0.Error.Message)
	}

	fta := r0.FullTextAnnotation
	if fta == nil {
		return "", nil
	}

	text := collapseWhitespace(fta.Text)
	e.logger.Debug("extracted label text", "mime", mimeType, "chars", len(text))
	return text, nil
}

// Close releases the underlying API client.
func (e *TextExtractor) Close() error {
	return e.client.Close()
}

// collapseWhitespace squeezes runs of spaces and tabs while preserving line
// breaks, which downstream term splitting relies on.
func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

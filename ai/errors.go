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


package ai

import "errors"

var (
	// ErrInvalidCategory indicates an unsupported product category selector.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrNoTerms indicates AnalyzeIngredients was called with an empty batch.
	ErrNoTerms = errors.New("no terms to analyze")
)

// ModelCallError reports that the call to the knowledge model itself failed
// (network fault, quota, service error). The response section of a request
// degrades on this error; it never aborts the surrounding pipeline.
type ModelCallError struct {
	Cause error
}

func (e *ModelCallError) Error() string {
	return "knowledge model call failed: " + e.Cause.Error()
}

func (e *ModelCallError) Unwrap() error {
	return e.Cause
}

// ParseError reports that the knowledge model responded but the response did
// not contain valid JSON of the expected shape. RawResponse carries the
// model's full text and Attempted the substring that was fed to the JSON
// parser, for diagnostic surfacing.
type ParseError struct {
	RawResponse string
	Attempted   string
	Cause       error
}

func (e *ParseError) Error() string {
	return "knowledge model response unparseable: " + e.Cause.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

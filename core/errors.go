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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidIngredient indicates an Ingredient failed validation.
	ErrInvalidIngredient = errors.New("invalid ingredient")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNameNotNormalized indicates the Name field is not in canonical form.
	ErrNameNotNormalized = errors.New("name must be normalized lowercase")

	// ErrEmptyDisplayName indicates the DisplayName field is empty.
	ErrEmptyDisplayName = errors.New("display name cannot be empty")

	// ErrRatingOutOfRange indicates a health rating outside [1,5].
	ErrRatingOutOfRange = errors.New("health rating must be between 1 and 5")

	// ErrInvalidSource indicates an invalid Source value.
	ErrInvalidSource = errors.New("invalid source")

	// ErrEmptyTerms indicates a raw term string that normalizes to nothing.
	ErrEmptyTerms = errors.New("no usable terms after normalization")
)

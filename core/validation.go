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

import (
	"errors"
	"fmt"
)

// ValidateIngredient validates an Ingredient according to domain rules.
//
// Validation rules:
//   - Name must be non-empty and already normalized (NormalizeTerm is a fixpoint)
//   - DisplayName must be non-empty
//   - HealthRating must be 0 (unrated) or within [1,5]
//   - Source must be a known value
//
// NOT validated (system-assigned):
//   - ID (0 means not yet assigned)
//   - InsertedAt / UpdatedAt (set by storage)
//
// All field violations are reported, joined under ErrInvalidIngredient.
func ValidateIngredient(ingredient *Ingredient) error {
	if ingredient == nil {
		return fmt.Errorf("%w: ingredient is nil", ErrInvalidIngredient)
	}

	var violations []error

	if ingredient.Name == "" {
		violations = append(violations, ErrEmptyName)
	} else if NormalizeTerm(ingredient.Name) != ingredient.Name {
		violations = append(violations, fmt.Errorf("%w: %q", ErrNameNotNormalized, ingredient.Name))
	}

	if ingredient.DisplayName == "" {
		violations = append(violations, ErrEmptyDisplayName)
	}

	if ingredient.HealthRating != 0 && (ingredient.HealthRating < MinHealthRating || ingredient.HealthRating > MaxHealthRating) {
		violations = append(violations, fmt.Errorf("%w: got %d", ErrRatingOutOfRange, ingredient.HealthRating))
	}

	if err := ValidateSource(ingredient.Source); err != nil {
		violations = append(violations, err)
	}

	if len(violations) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidIngredient, errors.Join(violations...))
	}
	return nil
}

// ValidateSource validates that a Source has a known value.
func ValidateSource(source Source) error {
	if _, ok := sourceNames[source]; !ok {
		return fmt.Errorf("%w: value %d", ErrInvalidSource, source)
	}
	return nil
}

// Violations flattens a validation error into per-field messages.
// The ErrInvalidIngredient sentinel itself is omitted; only the joined
// field violations are reported. Returns nil for a nil error.
func Violations(err error) []string {
	var out []string
	var walk func(error)
	walk = func(e error) {
		if e == nil || e == ErrInvalidIngredient {
			return
		}
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, child := range joined.Unwrap() {
				walk(child)
			}
			return
		}
		out = append(out, e.Error())
	}
	walk(err)
	return out
}

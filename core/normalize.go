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

import "strings"

// NormalizeTerm converts a single raw token into its canonical lookup form:
// lowercase, bracket characters removed, surrounding whitespace trimmed.
// The result may be empty if the token carried no usable content.
func NormalizeTerm(raw string) string {
	s := strings.ToLower(raw)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune("()[]{}", r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// NormalizeTerms splits a raw comma-separated ingredient string into the
// ordered sequence of normalized, non-empty terms. Duplicates are preserved;
// callers that need set semantics deduplicate afterwards.
//
// Returns ErrEmptyTerms if the input is empty or every token normalizes away.
func NormalizeTerms(raw string) ([]string, error) {
	tokens := strings.Split(raw, ",")
	terms := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if term := NormalizeTerm(token); term != "" {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return nil, ErrEmptyTerms
	}
	return terms, nil
}

// DedupeTerms removes duplicates from a normalized term sequence,
// keeping first-occurrence order.
func DedupeTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

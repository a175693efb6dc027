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


// Package mock provides test doubles for the ai package interfaces.
//
// Constructors return CONCRETE types so tests can inject behavior through
// the exported function fields and assert on call counts:
//
//	analyzer := mock.NewMockAnalyzer()
//	analyzer.AnalyzeIngredientsFunc = func(ctx context.Context, terms []string, c ai.Category) (*ai.Analysis, error) {
//	    return nil, &ai.ModelCallError{Cause: errors.New("quota exceeded")}
//	}
//	// ... exercise code under test ...
//	if analyzer.CallCount() != 1 { ... }
package mock

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


package resolve

import "errors"

var (
	// ErrInvalidInput indicates malformed request parameters. It is a
	// client error, distinguishable at the transport layer from server
	// faults in the read path.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRepositoryRequired is returned when NewResolver is called
	// without a repository.
	ErrRepositoryRequired = errors.New("ingredient repository is required")

	// ErrAnalyzerRequired is returned when NewResolver is called without
	// an analyzer.
	ErrAnalyzerRequired = errors.New("ingredient analyzer is required")
)

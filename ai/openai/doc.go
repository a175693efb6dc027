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


// Package openai implements the ai.IngredientAnalyzer interface against any
// OpenAI-compatible chat completion API (OpenAI, Ollama, LocalAI, vLLM).
//
// The analyzer sends one chat completion per batch of unresolved terms, with
// a system prompt embedding the expected JSON schema. Model output is not
// trusted: the response is scanned for a fenced code block first, repaired
// for common key-quoting mistakes, and only then parsed. Failures come back
// as *ai.ModelCallError or *ai.ParseError so callers can degrade instead of
// aborting.
package openai

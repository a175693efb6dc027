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


// Package storage provides the storage abstraction layer for labelens.
//
// This package defines the repository interface that decouples the document
// store from business logic, so different backends (BadgerDB, in-memory,
// etc.) can be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors return interface types to enforce abstraction:
//
//	repo, err := badger.NewIngredientRepository(backend)  // returns storage.IngredientRepository
//
// # Contract Highlights
//
//   - Name is the unique primary key; a term matches a record when it equals
//     the name or appears in the record's alias set.
//   - FindByTerms / FindMemberships resolve a whole term set in one pass, not
//     one lookup per term.
//   - UpsertIfAbsent is an atomic conditional insert: of any number of
//     concurrent writers racing on the same name, exactly one wins and the
//     rest silently no-op. This is the only concurrency guarantee the
//     resolution pipeline relies on.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support.
package storage

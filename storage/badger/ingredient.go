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


package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/labelens/labelens/core"
	"github.com/labelens/labelens/storage"
)

// IngredientRepository implements storage.IngredientRepository for BadgerDB.
type IngredientRepository struct {
	backend *Backend
}

var _ storage.IngredientRepository = (*IngredientRepository)(nil)

// NewIngredientRepository creates a new IngredientRepository.
func NewIngredientRepository(backend *Backend) (*IngredientRepository, error) {
	return &IngredientRepository{
		backend: backend,
	}, nil
}

// Close releases resources. IngredientRepository has no resources to release.
func (r *IngredientRepository) Close() error {
	return nil
}

// FindByTerms returns every record whose name or any alias matches one of
// terms. The whole term set is resolved in a single read transaction, and
// each record appears once even when several terms match it.
func (r *IngredientRepository) FindByTerms(ctx context.Context, terms []string) ([]*core.Ingredient, error) {
	var results []*core.Ingredient
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		seen := make(map[string]struct{})
		for _, term := range terms {
			name, found, err := resolveName(tx, term)
			if err != nil {
				return err
			}
			if !found {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}

			ingredient, err := readIngredient(tx, makeIngredientKey(name))
			if err != nil {
				return err
			}
			if ingredient != nil {
				results = append(results, ingredient)
			}
		}
		return nil
	}, false)
	return results, err
}

// FindMemberships resolves the same matches as FindByTerms but returns only
// the identifier set (name and aliases) of every matching record.
func (r *IngredientRepository) FindMemberships(ctx context.Context, terms []string) (map[string]struct{}, error) {
	memberships := make(map[string]struct{})
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		seen := make(map[string]struct{})
		for _, term := range terms {
			name, found, err := resolveName(tx, term)
			if err != nil {
				return err
			}
			if !found {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}

			ingredient, err := readIngredient(tx, makeIngredientKey(name))
			if err != nil {
				return err
			}
			if ingredient == nil {
				continue
			}
			for _, identifier := range ingredient.Identifiers() {
				memberships[identifier] = struct{}{}
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// FindByIdentifier retrieves the single record whose name or alias equals term.
func (r *IngredientRepository) FindByIdentifier(ctx context.Context, term string) (*core.Ingredient, error) {
	if term == "" {
		return nil, storage.ErrInvalidQuery
	}

	var result *core.Ingredient
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		name, found, err := resolveName(tx, term)
		if err != nil {
			return err
		}
		if !found {
			return storage.ErrNotFound
		}
		result, err = readIngredient(tx, makeIngredientKey(name))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// Create validates and inserts a new record, failing with ErrDuplicateKey
// when a record with the same name already exists.
func (r *IngredientRepository) Create(ctx context.Context, ingredient *core.Ingredient) (*core.Ingredient, error) {
	if err := core.ValidateIngredient(ingredient); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		existing, err := readIngredient(tx, makeIngredientKey(ingredient.Name))
		if err != nil {
			return err
		}
		if existing != nil {
			return storage.ErrDuplicateKey
		}
		if err := writeIngredient(tx, ingredient); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if errors.Is(err, badger.ErrConflict) {
		// A concurrent writer committed first. Report it as a duplicate
		// if a record with this name now exists.
		if exists, checkErr := r.exists(ingredient.Name); checkErr == nil && exists {
			return nil, storage.ErrDuplicateKey
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return ingredient, nil
}

// UpsertIfAbsent inserts the record only if no record with the same name
// exists. The insert is atomic: of any number of concurrent writers racing
// on the same name, exactly one creates the record and the rest silently
// no-op. Returns true if a record was created.
func (r *IngredientRepository) UpsertIfAbsent(ctx context.Context, ingredient *core.Ingredient) (bool, error) {
	if err := core.ValidateIngredient(ingredient); err != nil {
		return false, err
	}

	created := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		existing, err := readIngredient(tx, makeIngredientKey(ingredient.Name))
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		if err := writeIngredient(tx, ingredient); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		created = true
		return nil
	}, true)

	if errors.Is(err, badger.ErrConflict) {
		// Lost the race. If the record is now present the winning writer
		// stored it and this call is a no-op.
		if exists, checkErr := r.exists(ingredient.Name); checkErr == nil && exists {
			return false, nil
		}
		return false, err
	}
	if err != nil {
		return false, err
	}
	return created, nil
}

// GetAllIngredients retrieves all ingredient records, ordered by name.
func (r *IngredientRepository) GetAllIngredients(ctx context.Context) ([]*core.Ingredient, error) {
	var results []*core.Ingredient
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Primary keys embed the name, so iteration order is name order.
		prefix := []byte(ingredientRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			if !hasPrefix(key, prefix) {
				break
			}

			var ingredient *core.Ingredient
			err := item.Value(func(val []byte) error {
				var err error
				ingredient, err = storage.UnmarshalIngredient(val)
				return err
			})
			if err != nil {
				return err
			}

			if ingredient != nil {
				results = append(results, ingredient)
			}
		}
		return nil
	}, false)

	return results, err
}

// UpdateRating writes a health rating onto an existing record.
func (r *IngredientRepository) UpdateRating(ctx context.Context, name string, rating int, rationale string) error {
	if rating < core.MinHealthRating || rating > core.MaxHealthRating {
		return core.ErrRatingOutOfRange
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeIngredientKey(name)
		ingredient, err := readIngredient(tx, key)
		if err != nil {
			return err
		}
		if ingredient == nil {
			return storage.ErrNotFound
		}

		ingredient.HealthRating = rating
		ingredient.RatingRationale = rationale
		ingredient.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalIngredient(ingredient)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Helper methods

// exists reports whether a record with the given name is stored, using a
// fresh read transaction.
func (r *IngredientRepository) exists(name string) (bool, error) {
	found := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeIngredientKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		found = true
		return nil
	}, false)
	return found, err
}

// resolveName maps a term to the owning record's name, checking the primary
// key first and the alias index second.
func resolveName(tx *badger.Txn, term string) (string, bool, error) {
	_, err := tx.Get(makeIngredientKey(term))
	if err == nil {
		return term, true, nil
	}
	if err != badger.ErrKeyNotFound {
		return "", false, err
	}

	item, err := tx.Get(makeAliasKey(term))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return "", false, nil
		}
		return "", false, err
	}

	var name string
	err = item.Value(func(val []byte) error {
		name = string(val)
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// writeIngredient stores the primary record and its alias index entries,
// populating the ID and timestamps.
func writeIngredient(tx *badger.Txn, ingredient *core.Ingredient) error {
	if ingredient.Id == 0 {
		ingredient.Id = core.IDFromContent(ingredient.Name)
	}

	ingredient.InsertedAt = time.Now().UTC()
	ingredient.UpdatedAt = ingredient.InsertedAt

	if err := tx.Set(makeIngredientKey(ingredient.Name), storage.MarshalIngredient(ingredient)); err != nil {
		return err
	}

	for _, alias := range ingredient.Aliases {
		if err := tx.Set(makeAliasKey(alias), []byte(ingredient.Name)); err != nil {
			return err
		}
	}
	return nil
}

// hasPrefix checks if a byte slice has a given prefix
func hasPrefix(s, prefix []byte) bool {
	return len(s) >= len(prefix) && string(s[:len(prefix)]) == string(prefix)
}

// readIngredient reads an ingredient from the transaction.
func readIngredient(tx *badger.Txn, key []byte) (*core.Ingredient, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var ingredient *core.Ingredient
	err = item.Value(func(val []byte) error {
		var err error
		ingredient, err = storage.UnmarshalIngredient(val)
		return err
	})
	return ingredient, err
}

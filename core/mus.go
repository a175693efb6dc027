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
	"time"

	com "github.com/mus-format/common-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the stored domain types. The type set is small and
// stable, so these are written by hand instead of generated.

// IDMUS serializes IDs.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// IngredientMUS serializes Ingredient records. Timestamps are stored as
// Unix microseconds.
var IngredientMUS = ingredientMUS{}

type ingredientMUS struct{}

func (ingredientMUS) Marshal(v Ingredient, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.DisplayName, bs[n:])
	n += marshalStrings(v.Aliases, bs[n:])
	n += marshalStrings(v.Functions, bs[n:])
	n += varint.Int.Marshal(v.HealthRating, bs[n:])
	n += ord.String.Marshal(v.RatingRationale, bs[n:])
	n += marshalStrings(v.PotentialSideEffects, bs[n:])
	n += varint.Int.Marshal(int(v.Source), bs[n:])
	n += ord.String.Marshal(v.SourceDetails, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return
}

func (ingredientMUS) Unmarshal(bs []byte) (v Ingredient, n int, err error) {
	var m int
	if v.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if v.Name, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if v.DisplayName, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if v.Aliases, m, err = unmarshalStrings(bs[n:]); err != nil {
		return
	}
	n += m
	if v.Functions, m, err = unmarshalStrings(bs[n:]); err != nil {
		return
	}
	n += m
	if v.HealthRating, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if v.RatingRationale, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if v.PotentialSideEffects, m, err = unmarshalStrings(bs[n:]); err != nil {
		return
	}
	n += m
	var src int
	if src, m, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	v.Source = Source(src)
	if v.SourceDetails, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += m
	if v.InsertedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += m
	if v.UpdatedAt, m, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += m
	return
}

func (ingredientMUS) Size(v Ingredient) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.DisplayName)
	size += sizeStrings(v.Aliases)
	size += sizeStrings(v.Functions)
	size += varint.Int.Size(v.HealthRating)
	size += ord.String.Size(v.RatingRationale)
	size += sizeStrings(v.PotentialSideEffects)
	size += varint.Int.Size(int(v.Source))
	size += ord.String.Size(v.SourceDetails)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return
}

func marshalStrings(v []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return
}

func unmarshalStrings(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length < 0 {
		return nil, n, com.ErrNegativeLength
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]string, length)
	var m int
	for i := 0; i < length; i++ {
		if v[i], m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return nil, n, err
		}
		n += m
	}
	return
}

func sizeStrings(v []string) (size int) {
	size = varint.Int.Size(len(v))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return
}

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

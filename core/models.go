package core

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing of the canonical ingredient name.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Bounds for the health rating scale. A rating of 0 means unrated.
const (
	MinHealthRating = 1
	MaxHealthRating = 5
)

// Source identifies where an ingredient record's data came from.
type Source int

const (
	// SourceLLM marks records produced by the knowledge model.
	SourceLLM Source = iota + 1
	// SourceCurated marks records reviewed and entered by maintainers.
	SourceCurated
	// SourceUserContribution marks records submitted by users.
	SourceUserContribution
	// SourceDatabaseImport marks records loaded from an external dataset.
	SourceDatabaseImport
	// SourceScientificLiterature marks records backed by published research.
	SourceScientificLiterature
)

var sourceNames = map[Source]string{
	SourceLLM:                  "LLM",
	SourceCurated:              "Curated",
	SourceUserContribution:     "User Contribution",
	SourceDatabaseImport:       "Database Import",
	SourceScientificLiterature: "Scientific Literature",
}

// String returns the canonical display form of the source.
func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// ParseSource converts a display form back into a Source.
func ParseSource(name string) (Source, error) {
	for s, n := range sourceNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSource, name)
}

// MarshalJSON encodes the source as its display form.
func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the source from its display form.
// An empty string decodes to SourceLLM, the schema default.
func (s *Source) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if name == "" {
		*s = SourceLLM
		return nil
	}
	parsed, err := ParseSource(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Ingredient represents a persisted ingredient record.
// Name is the authoritative lookup key; a term matches a record when it
// equals Name or appears in Aliases.
type Ingredient struct {
	Id                   ID        `json:"id"`
	Name                 string    `json:"name"`                    // canonical lowercase identifier, unique
	DisplayName          string    `json:"display_name"`            // human-readable original-case name
	Aliases              []string  `json:"aliases"`                 // normalized alternate identifiers
	Functions            []string  `json:"functions"`               // free-form role tags
	HealthRating         int       `json:"health_rating,omitempty"` // 1-5, 0 until rated
	RatingRationale      string    `json:"rating_rationale,omitempty"`
	PotentialSideEffects []string  `json:"potential_side_effects"`
	Source               Source    `json:"source"`
	SourceDetails        string    `json:"source_details,omitempty"`
	InsertedAt           time.Time `json:"inserted_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Rated reports whether the record carries a health rating.
func (i *Ingredient) Rated() bool {
	return i.HealthRating != 0
}

// Identifiers returns every term the record can be looked up by:
// the canonical name plus all aliases.
func (i *Ingredient) Identifiers() []string {
	out := make([]string, 0, len(i.Aliases)+1)
	out = append(out, i.Name)
	out = append(out, i.Aliases...)
	return out
}

package core

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeTerms(t *testing.T) {
	terms, err := NormalizeTerms("Water, (Glycerin)")
	if err != nil {
		t.Fatalf("Failed to normalize: %v", err)
	}
	if len(terms) != 2 || terms[0] != "water" || terms[1] != "glycerin" {
		t.Fatalf("Expected [water glycerin], got %v", terms)
	}
}

func TestNormalizeTermsProperties(t *testing.T) {
	inputs := []string{
		"Water,Glycerin,UnknownXYZ",
		"  AQUA  , [Parfum] ,,{SLES}",
		"(FRAGRANCE), Sodium Chloride",
		"a,(),[ ],b",
	}
	for _, input := range inputs {
		terms, err := NormalizeTerms(input)
		if err != nil {
			t.Fatalf("Unexpected error for %q: %v", input, err)
		}
		for _, term := range terms {
			if term == "" {
				t.Fatalf("Empty term in output for %q", input)
			}
			if term != strings.ToLower(term) {
				t.Fatalf("Uppercase survived in %q from %q", term, input)
			}
			if strings.ContainsAny(term, "()[]{}") {
				t.Fatalf("Bracket survived in %q from %q", term, input)
			}
		}
	}
}

func TestNormalizeTermsEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", ",,,", "()[]{},( )"} {
		_, err := NormalizeTerms(input)
		if !errors.Is(err, ErrEmptyTerms) {
			t.Fatalf("Expected ErrEmptyTerms for %q, got %v", input, err)
		}
	}
}

func TestDedupeTerms(t *testing.T) {
	deduped := DedupeTerms([]string{"water", "glycerin", "water", "aqua", "glycerin"})
	if len(deduped) != 3 {
		t.Fatalf("Expected 3 terms, got %v", deduped)
	}
	if deduped[0] != "water" || deduped[1] != "glycerin" || deduped[2] != "aqua" {
		t.Fatalf("Order not preserved: %v", deduped)
	}
}

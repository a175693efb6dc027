package core

import (
	"errors"
	"testing"
)

func validIngredient() *Ingredient {
	return &Ingredient{
		Name:        "glycerin",
		DisplayName: "Glycerin",
		Aliases:     []string{"glycerol"},
		Source:      SourceLLM,
	}
}

func TestValidateIngredient(t *testing.T) {
	if err := ValidateIngredient(validIngredient()); err != nil {
		t.Fatalf("Expected valid ingredient, got %v", err)
	}
}

func TestValidateIngredientNil(t *testing.T) {
	err := ValidateIngredient(nil)
	if !errors.Is(err, ErrInvalidIngredient) {
		t.Fatalf("Expected ErrInvalidIngredient, got %v", err)
	}
}

func TestValidateIngredientViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Ingredient)
		want   error
	}{
		{"empty name", func(i *Ingredient) { i.Name = "" }, ErrEmptyName},
		{"unnormalized name", func(i *Ingredient) { i.Name = "Glycerin" }, ErrNameNotNormalized},
		{"bracket in name", func(i *Ingredient) { i.Name = "(glycerin)" }, ErrNameNotNormalized},
		{"empty display name", func(i *Ingredient) { i.DisplayName = "" }, ErrEmptyDisplayName},
		{"rating too low", func(i *Ingredient) { i.HealthRating = -1 }, ErrRatingOutOfRange},
		{"rating too high", func(i *Ingredient) { i.HealthRating = 6 }, ErrRatingOutOfRange},
		{"unknown source", func(i *Ingredient) { i.Source = Source(42) }, ErrInvalidSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := validIngredient()
			tt.mutate(ing)
			err := ValidateIngredient(ing)
			if !errors.Is(err, ErrInvalidIngredient) {
				t.Fatalf("Expected ErrInvalidIngredient, got %v", err)
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v in chain, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateIngredientRatingBounds(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		ing := validIngredient()
		ing.HealthRating = rating
		if err := ValidateIngredient(ing); err != nil {
			t.Fatalf("Rating %d should be valid: %v", rating, err)
		}
	}
	// 0 means unrated and is always allowed
	ing := validIngredient()
	ing.HealthRating = 0
	if err := ValidateIngredient(ing); err != nil {
		t.Fatalf("Unrated ingredient should be valid: %v", err)
	}
}

func TestViolations(t *testing.T) {
	ing := validIngredient()
	ing.Name = ""
	ing.DisplayName = ""
	err := ValidateIngredient(ing)

	msgs := Violations(err)
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 violations, got %v", msgs)
	}

	if Violations(nil) != nil {
		t.Fatal("Expected nil for nil error")
	}
}

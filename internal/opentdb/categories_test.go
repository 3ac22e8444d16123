package opentdb

import (
	"errors"
	"testing"
)

func TestCategoriesCatalog(t *testing.T) {
	items := Categories()
	if len(items) != 24 {
		t.Fatalf("expected 24 categories, got %d", len(items))
	}
	for idx := 1; idx < len(items); idx++ {
		if items[idx-1].ID >= items[idx].ID {
			t.Fatalf("catalog not ordered by id at %d: %+v", idx, items)
		}
	}

	items[0].Name = "mutated"
	if got := CategoryName(9); got != "General Knowledge" {
		t.Fatalf("catalog mutated through copy: %q", got)
	}
}

func TestCategoryName(t *testing.T) {
	if got := CategoryName(AnyCategory); got != "Any" {
		t.Fatalf("CategoryName(0) = %q, want Any", got)
	}
	if got := CategoryName(18); got != "Science: Computers" {
		t.Fatalf("CategoryName(18) = %q", got)
	}
	if got := CategoryName(99); got != "category 99" {
		t.Fatalf("CategoryName(99) = %q", got)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Difficulty
		wantErr bool
	}{
		{name: "empty", input: "", want: DifficultyAny},
		{name: "any", input: "Any", want: DifficultyAny},
		{name: "easy", input: "easy", want: DifficultyEasy},
		{name: "medium mixed case", input: " Medium ", want: DifficultyMedium},
		{name: "hard", input: "HARD", want: DifficultyHard},
		{name: "invalid", input: "extreme", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDifficulty(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidDifficulty) {
					t.Fatalf("ParseDifficulty(%q) error = %v, want ErrInvalidDifficulty", tc.input, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("ParseDifficulty(%q) = (%q, %v), want (%q, nil)", tc.input, got, err, tc.want)
			}
		})
	}
}

package opentdb

import (
	"errors"
	"fmt"
	"strings"
)

const AnyCategory = 0

var (
	ErrUnknownCategory   = errors.New("unknown category")
	ErrInvalidDifficulty = errors.New("difficulty must be one of easy, medium, hard")
)

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// catalog is the fixed set of categories the API accepts, in id order.
var catalog = []Category{
	{ID: 9, Name: "General Knowledge"},
	{ID: 10, Name: "Entertainment: Books"},
	{ID: 11, Name: "Entertainment: Film"},
	{ID: 12, Name: "Entertainment: Music"},
	{ID: 13, Name: "Entertainment: Musicals & Theatres"},
	{ID: 14, Name: "Entertainment: Television"},
	{ID: 15, Name: "Entertainment: Video Games"},
	{ID: 16, Name: "Entertainment: Board Games"},
	{ID: 17, Name: "Science & Nature"},
	{ID: 18, Name: "Science: Computers"},
	{ID: 19, Name: "Science: Mathematics"},
	{ID: 20, Name: "Mythology"},
	{ID: 21, Name: "Sports"},
	{ID: 22, Name: "Geography"},
	{ID: 23, Name: "History"},
	{ID: 24, Name: "Politics"},
	{ID: 25, Name: "Art"},
	{ID: 26, Name: "Celebrities"},
	{ID: 27, Name: "Animals"},
	{ID: 28, Name: "Vehicles"},
	{ID: 29, Name: "Entertainment: Comics"},
	{ID: 30, Name: "Science: Gadgets"},
	{ID: 31, Name: "Entertainment: Japanese Anime & Manga"},
	{ID: 32, Name: "Entertainment: Cartoon & Animations"},
}

// Categories returns a copy of the catalog.
func Categories() []Category {
	out := make([]Category, len(catalog))
	copy(out, catalog)
	return out
}

func LookupCategory(id int) (Category, bool) {
	for _, item := range catalog {
		if item.ID == id {
			return item, true
		}
	}
	return Category{}, false
}

// CategoryName returns the display name for id, "Any" for AnyCategory.
func CategoryName(id int) string {
	if id == AnyCategory {
		return "Any"
	}
	if item, ok := LookupCategory(id); ok {
		return item.Name
	}
	return fmt.Sprintf("category %d", id)
}

type Difficulty string

const (
	DifficultyAny    Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(value string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "any":
		return DifficultyAny, nil
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyAny, fmt.Errorf("%w: got %q", ErrInvalidDifficulty, value)
	}
}

func (d Difficulty) String() string {
	if d == DifficultyAny {
		return "any"
	}
	return string(d)
}

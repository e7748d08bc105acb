package models

import (
	"time"
)

type (
	// Book is a cookbook in the user's library.
	Book struct {
		ID         string    `json:"id"`
		Title      string    `json:"title" validate:"required"`
		Author     string    `json:"author" validate:"required"`
		Pseudonym  string    `json:"pseudonym,omitempty"`
		Editor     string    `json:"editor,omitempty"`
		Category   string    `json:"category,omitempty"`
		CoverImage string    `json:"cover_image,omitempty"`
		Year       *int      `json:"year,omitempty"`
		CreatedAt  time.Time `json:"created_at"`
	}

	// Recipe is a single recipe, optionally tied to a Book via BookID.
	// An empty BookID means a personal recipe. A BookID pointing at a
	// deleted book is treated the same as an empty one everywhere.
	Recipe struct {
		ID          string    `json:"id"`
		Name        string    `json:"name" validate:"required"`
		BookID      string    `json:"book_id,omitempty"`
		Tags        []string  `json:"tags"`
		Notes       string    `json:"notes,omitempty"`
		IsFavorite  bool      `json:"is_favorite"`
		RecipeImage string    `json:"recipe_image,omitempty"`
		CreatedAt   time.Time `json:"created_at"`
	}

	// Collection is a saved smart folder: a recipe belongs to it when the
	// recipe carries at least one of the collection's tags. Membership is
	// never stored, only computed.
	Collection struct {
		ID        string    `json:"id"`
		Name      string    `json:"name" validate:"required"`
		Tags      []string  `json:"tags" validate:"required,min=1"`
		CreatedAt time.Time `json:"created_at"`
	}

	// CategorySuggestion is one entry of the ordered list returned by the
	// book category suggester.
	CategorySuggestion struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
	}
)

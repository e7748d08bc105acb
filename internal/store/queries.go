package store

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/cookshelf/cookshelf-back/internal/models"
)

// SearchBooks returns the books whose title, author, pseudonym or
// category contains the query, case-insensitively. An empty query
// matches every book.
func (s *Store) SearchBooks(query string) []models.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	out := make([]models.Book, 0, len(s.books))
	for _, b := range s.books {
		if q == "" ||
			containsFold(b.Title, q) ||
			containsFold(b.Author, q) ||
			containsFold(b.Pseudonym, q) ||
			containsFold(b.Category, q) {
			out = append(out, b)
		}
	}
	return out
}

// SearchRecipes returns the recipes whose name or any tag contains the
// query, case-insensitively. The favorites filter ANDs with the query.
func (s *Store) SearchRecipes(query string, favoritesOnly bool) []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	out := make([]models.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		if favoritesOnly && !r.IsFavorite {
			continue
		}
		if q != "" && !recipeMatches(r, q) {
			continue
		}
		out = append(out, cloneRecipe(r))
	}
	return out
}

// CollectionRecipes computes the collection's membership fresh from the
// current recipe snapshot: every recipe sharing at least one tag with
// the collection belongs to it.
func (s *Store) CollectionRecipes(collectionID string) ([]models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.collectionIndex(collectionID)
	if i < 0 {
		return nil, errors.Wrapf(ErrNotFound, "collection %s", collectionID)
	}

	wanted := make(map[string]struct{}, len(s.collections[i].Tags))
	for _, t := range s.collections[i].Tags {
		wanted[t] = struct{}{}
	}

	out := make([]models.Recipe, 0)
	for _, r := range s.recipes {
		for _, t := range r.Tags {
			if _, ok := wanted[t]; ok {
				out = append(out, cloneRecipe(r))
				break
			}
		}
	}
	return out, nil
}

// BookFor resolves a recipe's source book. Personal recipes and dangling
// book references both come back as (zero Book, false).
func (s *Store) BookFor(recipe models.Recipe) (models.Book, bool) {
	if recipe.BookID == "" {
		return models.Book{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.bookIndex(recipe.BookID)
	if i < 0 {
		return models.Book{}, false
	}
	return s.books[i], true
}

func recipeMatches(r models.Recipe, q string) bool {
	if containsFold(r.Name, q) {
		return true
	}
	for _, t := range r.Tags {
		if containsFold(t, q) {
			return true
		}
	}
	return false
}

// containsFold expects q already lowercased.
func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}

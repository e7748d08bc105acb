package store

import (
	"sort"
	"strings"

	"github.com/cookshelf/cookshelf-back/internal/models"
)

// Keyword groups checked against the lowercased title, first match wins.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Pâtisserie", []string{"pâtisserie", "dessert", "gâteau"}},
	{"Végétarien", []string{"végé", "vegan"}},
	{"Cuisine rapide", []string{"rapide", "simple"}},
}

// SuggestBookCategory proposes categories for a book, ordered by
// confidence. The baseline list is fixed; when the title matches a
// keyword group the top slot is replaced by that group's category at
// 0.90. At most one group applies. Author and pseudonym are accepted
// for future use but do not take part in the matching.
func SuggestBookCategory(title, author, pseudonym string) []models.CategorySuggestion {
	suggestions := []models.CategorySuggestion{
		{Category: "Cuisine générale", Confidence: 0.70},
		{Category: "Pâtisserie", Confidence: 0.50},
		{Category: "Gastronomie", Confidence: 0.40},
	}

	lower := strings.ToLower(title)
	for _, group := range categoryKeywords {
		if containsAny(lower, group.keywords) {
			suggestions[0] = models.CategorySuggestion{Category: group.category, Confidence: 0.90}
			break
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	return suggestions
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

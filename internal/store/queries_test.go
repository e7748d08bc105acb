package store

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookshelf/cookshelf-back/internal/models"
)

func TestSearchBooks(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddBook(models.Book{Title: "Simplissime", Author: "Jean-François Mallet", Category: "Cuisine rapide"})
	require.NoError(t, err)
	_, err = s.AddBook(models.Book{Title: "Le Grand Livre", Author: "Pierre Hermé", Category: "Pâtisserie"})
	require.NoError(t, err)
	_, err = s.AddBook(models.Book{Title: "Sous un autre nom", Author: "Inconnu", Pseudonym: "La Toque"})
	require.NoError(t, err)

	assert.Len(t, s.SearchBooks(""), 3, "empty query matches all")

	got := s.SearchBooks("PÂTISSERIE")
	require.Len(t, got, 1, "case-insensitive category match")
	assert.Equal(t, "Le Grand Livre", got[0].Title)

	got = s.SearchBooks("mallet")
	require.Len(t, got, 1)
	assert.Equal(t, "Simplissime", got[0].Title)

	got = s.SearchBooks("toque")
	require.Len(t, got, 1, "pseudonym is searchable")
	assert.Equal(t, "Sous un autre nom", got[0].Title)

	assert.Empty(t, s.SearchBooks("introuvable"))
}

func TestSearchRecipes(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddRecipe(models.Recipe{Name: "Poulet rôti", Tags: []string{"plat"}})
	require.NoError(t, err)
	quiche, err := s.AddRecipe(models.Recipe{Name: "Quiche lorraine", Tags: []string{"plat", "fromage"}})
	require.NoError(t, err)
	_, err = s.AddRecipe(models.Recipe{Name: "Tarte aux pommes", Tags: []string{"dessert"}})
	require.NoError(t, err)

	assert.Len(t, s.SearchRecipes("", false), 3)
	assert.Len(t, s.SearchRecipes("plat", false), 2, "tags are searchable")
	assert.Len(t, s.SearchRecipes("QUICHE", false), 1)

	_, err = s.ToggleFavorite(quiche.ID)
	require.NoError(t, err)

	favorites := s.SearchRecipes("", true)
	require.Len(t, favorites, 1)
	assert.Equal(t, quiche.ID, favorites[0].ID)

	assert.Empty(t, s.SearchRecipes("poulet", true), "favorites filter ANDs with the query")
	assert.Len(t, s.SearchRecipes("quiche", true), 1)
}

func TestCollectionMembershipIsUnionOfTags(t *testing.T) {
	s := newTestStore(t)

	r1, err := s.AddRecipe(models.Recipe{Name: "r1", Tags: []string{"a"}})
	require.NoError(t, err)
	r2, err := s.AddRecipe(models.Recipe{Name: "r2", Tags: []string{"b"}})
	require.NoError(t, err)
	r3, err := s.AddRecipe(models.Recipe{Name: "r3", Tags: []string{"a", "b"}})
	require.NoError(t, err)
	_, err = s.AddRecipe(models.Recipe{Name: "r4", Tags: []string{"c"}})
	require.NoError(t, err)

	collection, err := s.AddCollection(models.Collection{Name: "C", Tags: []string{"a", "b"}})
	require.NoError(t, err)

	members, err := s.CollectionRecipes(collection.ID)
	assert.Nil(t, err)

	ids := make([]string, len(members))
	for i := range members {
		ids[i] = members[i].ID
	}
	assert.ElementsMatch(t, []string{r1.ID, r2.ID, r3.ID}, ids, "one shared tag is enough")
}

func TestCollectionMembershipIsRecomputed(t *testing.T) {
	s := newTestStore(t)

	collection, err := s.AddCollection(models.Collection{Name: "C", Tags: []string{"a"}})
	require.NoError(t, err)

	members, err := s.CollectionRecipes(collection.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	recipe, err := s.AddRecipe(models.Recipe{Name: "r", Tags: []string{"a"}})
	require.NoError(t, err)

	members, err = s.CollectionRecipes(collection.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, recipe.ID, members[0].ID)

	require.NoError(t, s.DeleteRecipe(recipe.ID))

	members, err = s.CollectionRecipes(collection.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestCollectionRecipesNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CollectionRecipes("missing")
	assert.Equal(t, ErrNotFound, errors.Cause(err))
}

func TestBookForToleratesDanglingReference(t *testing.T) {
	s := newTestStore(t)

	book, err := s.AddBook(models.Book{Title: "T", Author: "A"})
	require.NoError(t, err)

	attached, err := s.AddRecipe(models.Recipe{Name: "attached", BookID: book.ID})
	require.NoError(t, err)
	personal, err := s.AddRecipe(models.Recipe{Name: "personal"})
	require.NoError(t, err)
	dangling, err := s.AddRecipe(models.Recipe{Name: "dangling", BookID: "gone"})
	require.NoError(t, err)

	got, ok := s.BookFor(attached)
	assert.True(t, ok)
	assert.Equal(t, book.ID, got.ID)

	_, ok = s.BookFor(personal)
	assert.False(t, ok)

	_, ok = s.BookFor(dangling)
	assert.False(t, ok, "a dangling reference behaves like no book")
}

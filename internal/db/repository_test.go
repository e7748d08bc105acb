package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookshelf/cookshelf-back/internal/config"
	"github.com/cookshelf/cookshelf-back/internal/models"
)

func newTestRepository(t *testing.T) *Repository {
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "test.db")}
	client, err := NewGormClient(cfg)
	require.NoError(t, err)
	return NewRepository(client)
}

func TestBookRoundTrip(t *testing.T) {
	r := newTestRepository(t)

	year := 2015
	book := models.Book{
		ID:        "b1",
		Title:     "Simplissime",
		Author:    "Jean-François Mallet",
		Category:  "Cuisine rapide",
		Year:      &year,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, r.SaveBook(book))

	got, err := r.LoadBooks()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, book.ID, got[0].ID)
	assert.Equal(t, book.Title, got[0].Title)
	require.NotNil(t, got[0].Year)
	assert.Equal(t, year, *got[0].Year)

	book.Title = "Simplissime Light"
	require.NoError(t, r.UpdateBook(book))

	got, err = r.LoadBooks()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Simplissime Light", got[0].Title)

	require.NoError(t, r.DeleteBook(book.ID))
	got, err = r.LoadBooks()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecipeTagsKeepOrder(t *testing.T) {
	r := newTestRepository(t)

	recipe := models.Recipe{
		ID:        "r1",
		Name:      "Poulet rôti",
		Tags:      []string{"plat", "poulet", "four"},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, r.SaveRecipe(recipe))

	got, err := r.LoadRecipes()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"plat", "poulet", "four"}, got[0].Tags)

	recipe.Tags = []string{"four", "volaille"}
	require.NoError(t, r.UpdateRecipe(recipe))

	got, err = r.LoadRecipes()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"four", "volaille"}, got[0].Tags, "update replaces the tag rows")

	require.NoError(t, r.DeleteRecipe(recipe.ID))
	got, err = r.LoadRecipes()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveTagIdempotent(t *testing.T) {
	r := newTestRepository(t)

	require.NoError(t, r.SaveTag("plat"))
	require.NoError(t, r.SaveTag("plat"))
	require.NoError(t, r.SaveTag("dessert"))

	got, err := r.LoadTags()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"plat", "dessert"}, got)
}

func TestCollectionRoundTrip(t *testing.T) {
	r := newTestRepository(t)

	collection := models.Collection{
		ID:        "c1",
		Name:      "Plats d'hiver",
		Tags:      []string{"hiver", "plat"},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, r.SaveCollection(collection))

	got, err := r.LoadCollections()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"hiver", "plat"}, got[0].Tags)

	collection.Tags = []string{"été"}
	require.NoError(t, r.UpdateCollection(collection))

	got, err = r.LoadCollections()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"été"}, got[0].Tags)

	require.NoError(t, r.DeleteCollection(collection.ID))
	got, err = r.LoadCollections()
	require.NoError(t, err)
	assert.Empty(t, got)
}

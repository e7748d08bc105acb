package test_functional

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	Book struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Author string `json:"author"`
	}

	Recipe struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		BookID string `json:"book_id"`
		Book   *Book  `json:"book"`
	}

	BookDeleteResp struct {
		Detached int `json:"detached"`
	}
)

func TestBookDeletionDetachesRecipe(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	cl := resty.New().SetBaseURL(AppBaseURL.String())

	book := Book{}
	resp, err := cl.R().
		SetHeader("Content-Type", "application/json").
		SetContext(ctx).
		SetResult(&book).
		SetBody(`
			{"title": "Simplissime", "author": "Jean-François Mallet"}
		`).
		Post("/book")
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.NotEmpty(t, book.ID)

	recipe := Recipe{}
	resp, err = cl.R().
		SetHeader("Content-Type", "application/json").
		SetContext(ctx).
		SetResult(&recipe).
		SetBody(`
			{"name": "Poulet rôti", "book_id": "` + book.ID + `", "tags": ["plat"]}
		`).
		Post("/recipe")
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.NotNil(t, recipe.Book)

	deleted := BookDeleteResp{}
	resp, err = cl.R().
		SetContext(ctx).
		SetResult(&deleted).
		Delete("/book/" + book.ID)
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, 1, deleted.Detached)

	listed := make([]Recipe, 0)
	resp, err = cl.R().
		SetHeader("Content-Type", "application/json").
		SetContext(ctx).
		SetResult(&listed).
		SetBody(`{"query": "poulet"}`).
		Post("/recipe/list")
	require.Nil(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	found := false
	for _, r := range listed {
		if r.ID == recipe.ID {
			found = true
			assert.Empty(t, r.BookID)
			assert.Nil(t, r.Book)
		}
	}
	assert.True(t, found)

	// cleanup
	resp, err = cl.R().SetContext(ctx).Delete("/recipe/" + recipe.ID)
	require.Nil(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())
}

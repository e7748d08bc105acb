package models

type BookReq struct {
	Title      string `json:"title" validate:"required"`
	Author     string `json:"author" validate:"required"`
	Pseudonym  string `json:"pseudonym"`
	Editor     string `json:"editor"`
	Category   string `json:"category"`
	CoverImage string `json:"cover_image"`
	Year       *int   `json:"year"`
}

type BookListReq struct {
	Query string `json:"query"`
}

type BookDeleteResp struct {
	Detached int `json:"detached"`
}

type SuggestCategoryReq struct {
	Title     string `json:"title" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Pseudonym string `json:"pseudonym"`
}

type RecipeReq struct {
	Name        string   `json:"name" validate:"required"`
	BookID      string   `json:"book_id"`
	Tags        []string `json:"tags"`
	Notes       string   `json:"notes"`
	IsFavorite  bool     `json:"is_favorite"`
	RecipeImage string   `json:"recipe_image"`
}

type RecipeListReq struct {
	Query         string `json:"query"`
	FavoritesOnly bool   `json:"favorites_only"`
	CollectionID  string `json:"collection_id"`
}

// RecipeResp is a Recipe with its source book resolved. Book is omitted
// for personal recipes and for dangling book references alike.
type RecipeResp struct {
	Recipe
	Book *Book `json:"book,omitempty"`
}

type TagReq struct {
	Name string `json:"name" validate:"required"`
}

type CollectionReq struct {
	Name string   `json:"name" validate:"required"`
	Tags []string `json:"tags" validate:"required,min=1,dive,required"`
}

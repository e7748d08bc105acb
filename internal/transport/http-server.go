package transport

import (
	"context"
	"net/http"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/cookshelf/cookshelf-back/internal/config"
	"github.com/cookshelf/cookshelf-back/internal/models"
	"github.com/cookshelf/cookshelf-back/internal/store"
)

type (
	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		store  *store.Store
		logger *zap.SugaredLogger
	}
)

func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, st *store.Store, logger *zap.SugaredLogger) *HTTPServer {
	instance := HTTPServer{
		store:  st,
		logger: logger,
	}

	e := echo.New()
	instance.RegisterRoutes(e)

	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				listen := cfg.Host + ":" + cfg.Port
				if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
					e.Logger.Fatal("shutting down the server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return e.Shutdown(ctx)
		},
	})

	return &instance
}

// RegisterRoutes wires the handlers and the request validator onto e.
func (s *HTTPServer) RegisterRoutes(e *echo.Echo) {
	e.Validator = &CustomValidator{validator: validator.New()}
	echo.NotFoundHandler = func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	}

	bookG := e.Group("/book")
	bookG.POST("/list", s.BookList)
	bookG.POST("", s.BookCreate)
	bookG.PATCH("/:id", s.BookUpdate)
	bookG.DELETE("/:id", s.BookDelete)
	bookG.POST("/suggest-category", s.BookSuggestCategory)

	recipeG := e.Group("/recipe")
	recipeG.POST("/list", s.RecipeList)
	recipeG.POST("", s.RecipeCreate)
	recipeG.PATCH("/:id", s.RecipeUpdate)
	recipeG.DELETE("/:id", s.RecipeDelete)
	recipeG.POST("/:id/favorite", s.RecipeToggleFavorite)

	tagG := e.Group("/tag")
	tagG.GET("", s.TagList)
	tagG.POST("", s.TagCreate)

	collectionG := e.Group("/collection")
	collectionG.GET("", s.CollectionList)
	collectionG.POST("", s.CollectionCreate)
	collectionG.PATCH("/:id", s.CollectionUpdate)
	collectionG.DELETE("/:id", s.CollectionDelete)
	collectionG.GET("/:id/recipes", s.CollectionRecipes)

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
}

func (s *HTTPServer) BookList(c echo.Context) error {
	req := models.BookListReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.store.SearchBooks(req.Query))
}

func (s *HTTPServer) BookCreate(c echo.Context) error {
	req := models.BookReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	book, err := s.store.AddBook(bookOf(req))
	if err != nil {
		return MapStoreError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (s *HTTPServer) BookUpdate(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	req := models.BookReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	book := bookOf(req)
	book.ID = id
	book, err = s.store.UpdateBook(book)
	if err != nil {
		return MapStoreError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (s *HTTPServer) BookDelete(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	detached, err := s.store.DeleteBook(id)
	if err != nil {
		return MapStoreError(err)
	}
	return c.JSON(http.StatusOK, models.BookDeleteResp{Detached: detached})
}

func (s *HTTPServer) BookSuggestCategory(c echo.Context) error {
	req := models.SuggestCategoryReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, store.SuggestBookCategory(req.Title, req.Author, req.Pseudonym))
}

func (s *HTTPServer) RecipeList(c echo.Context) error {
	req := models.RecipeListReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	var recipes []models.Recipe
	if req.CollectionID != "" {
		var err error
		recipes, err = s.store.CollectionRecipes(req.CollectionID)
		if err != nil {
			return MapStoreError(err)
		}
	} else {
		recipes = s.store.SearchRecipes(req.Query, req.FavoritesOnly)
	}

	return c.JSON(http.StatusOK, s.recipeResponses(recipes))
}

func (s *HTTPServer) RecipeCreate(c echo.Context) error {
	req := models.RecipeReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	recipe, err := s.store.AddRecipe(recipeOf(req))
	if err != nil {
		return MapStoreError(err)
	}
	return c.JSON(http.StatusOK, s.recipeResponse(recipe))
}

func (s *HTTPServer) RecipeUpdate(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	req := models.RecipeReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	recipe := recipeOf(req)
	recipe.ID = id
	recipe, err = s.store.UpdateRecipe(recipe)
	if err != nil {
		return MapStoreError(err)
	}
	return c.JSON(http.StatusOK, s.recipeResponse(recipe))
}

func (s *HTTPServer) RecipeDelete(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.store.DeleteRecipe(id); err != nil {
		return MapStoreError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) RecipeToggleFavorite(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	recipe, err := s.store.ToggleFavorite(id)
	if err != nil {
		return MapStoreError(err)
	}
	return c.JSON(http.StatusOK, s.recipeResponse(recipe))
}

func (s *HTTPServer) TagList(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Tags())
}

func (s *HTTPServer) TagCreate(c echo.Context) error {
	req := models.TagReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	if err := s.store.AddTag(req.Name); err != nil {
		return MapStoreError(err)
	}
	return c.JSON(http.StatusOK, req)
}

func (s *HTTPServer) CollectionList(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Collections())
}

func (s *HTTPServer) CollectionCreate(c echo.Context) error {
	req := models.CollectionReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	collection, err := s.store.AddCollection(collectionOf(req))
	if err != nil {
		return MapStoreError(err)
	}
	return c.JSON(http.StatusOK, collection)
}

func (s *HTTPServer) CollectionUpdate(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	req := models.CollectionReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	collection := collectionOf(req)
	collection.ID = id
	collection, err = s.store.UpdateCollection(collection)
	if err != nil {
		return MapStoreError(err)
	}
	return c.JSON(http.StatusOK, collection)
}

func (s *HTTPServer) CollectionDelete(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.store.DeleteCollection(id); err != nil {
		return MapStoreError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) CollectionRecipes(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	recipes, err := s.store.CollectionRecipes(id)
	if err != nil {
		return MapStoreError(err)
	}
	return c.JSON(http.StatusOK, s.recipeResponses(recipes))
}

func (s *HTTPServer) recipeResponse(recipe models.Recipe) models.RecipeResp {
	resp := models.RecipeResp{Recipe: recipe}
	if book, ok := s.store.BookFor(recipe); ok {
		resp.Book = &book
	}
	return resp
}

func (s *HTTPServer) recipeResponses(recipes []models.Recipe) []models.RecipeResp {
	out := make([]models.RecipeResp, len(recipes))
	for i := range recipes {
		out[i] = s.recipeResponse(recipes[i])
	}
	return out
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func BindAndValidate(c echo.Context, v interface{}) error {
	var err error
	if err = c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err = c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// MapStoreError translates the store's sentinel errors into HTTP codes.
func MapStoreError(err error) error {
	switch errors.Cause(err) {
	case store.ErrNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case store.ErrInvalid:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}

func GetParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return value, nil
}

func bookOf(req models.BookReq) models.Book {
	return models.Book{
		Title:      req.Title,
		Author:     req.Author,
		Pseudonym:  req.Pseudonym,
		Editor:     req.Editor,
		Category:   req.Category,
		CoverImage: req.CoverImage,
		Year:       req.Year,
	}
}

func recipeOf(req models.RecipeReq) models.Recipe {
	return models.Recipe{
		Name:        req.Name,
		BookID:      req.BookID,
		Tags:        req.Tags,
		Notes:       req.Notes,
		IsFavorite:  req.IsFavorite,
		RecipeImage: req.RecipeImage,
	}
}

func collectionOf(req models.CollectionReq) models.Collection {
	return models.Collection{
		Name: req.Name,
		Tags: req.Tags,
	}
}

// Package store holds the authoritative in-memory state of the library:
// books, recipes, collections and the tag registry. Every mutation runs
// under the store's lock and is written through to the configured
// Repository. Missing ids on update/delete/toggle surface ErrNotFound
// rather than silently doing nothing.
package store

import (
	"sync"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cookshelf/cookshelf-back/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrInvalid  = errors.New("invalid record")
)

type Store struct {
	mu          sync.RWMutex
	books       []models.Book
	recipes     []models.Recipe
	collections []models.Collection
	tagSet      map[string]struct{}
	tagOrder    []string

	repo     Repository
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

// New builds a store seeded from the repository. The tag registry is the
// union of the persisted registry and every tag found on loaded recipes,
// so it is always a superset of the recipes' tags.
func New(repo Repository, logger *zap.SugaredLogger) (*Store, error) {
	s := &Store{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
		tagSet:   map[string]struct{}{},
	}

	books, err := repo.LoadBooks()
	if err != nil {
		return nil, errors.Wrap(err, "load books")
	}
	recipes, err := repo.LoadRecipes()
	if err != nil {
		return nil, errors.Wrap(err, "load recipes")
	}
	tags, err := repo.LoadTags()
	if err != nil {
		return nil, errors.Wrap(err, "load tags")
	}
	collections, err := repo.LoadCollections()
	if err != nil {
		return nil, errors.Wrap(err, "load collections")
	}

	s.books = books
	s.recipes = recipes
	s.collections = collections
	for _, t := range tags {
		s.registerTag(t)
	}
	for _, r := range recipes {
		for _, t := range r.Tags {
			s.registerTag(t)
		}
	}

	logger.Infow("store loaded",
		"books", len(s.books),
		"recipes", len(s.recipes),
		"tags", len(s.tagOrder),
		"collections", len(s.collections))

	return s, nil
}

func (s *Store) AddBook(book models.Book) (models.Book, error) {
	if err := s.validate.Struct(&book); err != nil {
		return models.Book{}, errors.Wrap(ErrInvalid, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book.ID = uuid.New().String()
	book.CreatedAt = time.Now().UTC()
	s.books = append(s.books, book)

	if err := s.repo.SaveBook(book); err != nil {
		return book, errors.Wrap(err, "save book")
	}
	s.logger.Debugw("book added", "id", book.ID, "title", book.Title)
	return book, nil
}

func (s *Store) UpdateBook(book models.Book) (models.Book, error) {
	if err := s.validate.Struct(&book); err != nil {
		return models.Book{}, errors.Wrap(ErrInvalid, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.bookIndex(book.ID)
	if i < 0 {
		return models.Book{}, errors.Wrapf(ErrNotFound, "book %s", book.ID)
	}
	book.CreatedAt = s.books[i].CreatedAt
	s.books[i] = book

	if err := s.repo.UpdateBook(book); err != nil {
		return book, errors.Wrap(err, "update book")
	}
	return book, nil
}

// DeleteBook removes the book and detaches every recipe referencing it,
// turning those recipes into personal recipes. It returns how many
// recipes were detached.
func (s *Store) DeleteBook(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.bookIndex(id)
	if i < 0 {
		return 0, errors.Wrapf(ErrNotFound, "book %s", id)
	}
	s.books = append(s.books[:i], s.books[i+1:]...)

	detached := 0
	for j := range s.recipes {
		if s.recipes[j].BookID != id {
			continue
		}
		s.recipes[j].BookID = ""
		detached++
		if err := s.repo.UpdateRecipe(s.recipes[j]); err != nil {
			return detached, errors.Wrap(err, "detach recipe")
		}
	}

	if err := s.repo.DeleteBook(id); err != nil {
		return detached, errors.Wrap(err, "delete book")
	}
	s.logger.Debugw("book deleted", "id", id, "detached", detached)
	return detached, nil
}

func (s *Store) AddRecipe(recipe models.Recipe) (models.Recipe, error) {
	if err := s.validate.Struct(&recipe); err != nil {
		return models.Recipe{}, errors.Wrap(ErrInvalid, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recipe.ID = uuid.New().String()
	recipe.CreatedAt = time.Now().UTC()
	recipe.IsFavorite = false
	recipe.Tags = dedupeTags(recipe.Tags)
	s.recipes = append(s.recipes, recipe)

	if err := s.growRegistry(recipe.Tags); err != nil {
		return recipe, err
	}
	if err := s.repo.SaveRecipe(recipe); err != nil {
		return recipe, errors.Wrap(err, "save recipe")
	}
	s.logger.Debugw("recipe added", "id", recipe.ID, "name", recipe.Name)
	return recipe, nil
}

func (s *Store) UpdateRecipe(recipe models.Recipe) (models.Recipe, error) {
	if err := s.validate.Struct(&recipe); err != nil {
		return models.Recipe{}, errors.Wrap(ErrInvalid, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.recipeIndex(recipe.ID)
	if i < 0 {
		return models.Recipe{}, errors.Wrapf(ErrNotFound, "recipe %s", recipe.ID)
	}
	recipe.CreatedAt = s.recipes[i].CreatedAt
	recipe.Tags = dedupeTags(recipe.Tags)
	s.recipes[i] = recipe

	if err := s.growRegistry(recipe.Tags); err != nil {
		return recipe, err
	}
	if err := s.repo.UpdateRecipe(recipe); err != nil {
		return recipe, errors.Wrap(err, "update recipe")
	}
	return recipe, nil
}

func (s *Store) DeleteRecipe(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.recipeIndex(id)
	if i < 0 {
		return errors.Wrapf(ErrNotFound, "recipe %s", id)
	}
	s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)

	if err := s.repo.DeleteRecipe(id); err != nil {
		return errors.Wrap(err, "delete recipe")
	}
	return nil
}

func (s *Store) ToggleFavorite(id string) (models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.recipeIndex(id)
	if i < 0 {
		return models.Recipe{}, errors.Wrapf(ErrNotFound, "recipe %s", id)
	}
	s.recipes[i].IsFavorite = !s.recipes[i].IsFavorite

	recipe := cloneRecipe(s.recipes[i])
	if err := s.repo.UpdateRecipe(recipe); err != nil {
		return recipe, errors.Wrap(err, "update recipe")
	}
	return recipe, nil
}

// AddTag puts a tag into the registry. Adding a known tag is a no-op;
// the registry only ever grows.
func (s *Store) AddTag(name string) error {
	if name == "" {
		return errors.Wrap(ErrInvalid, "tag name is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tagSet[name]; ok {
		return nil
	}
	s.registerTag(name)

	if err := s.repo.SaveTag(name); err != nil {
		return errors.Wrap(err, "save tag")
	}
	return nil
}

func (s *Store) AddCollection(collection models.Collection) (models.Collection, error) {
	if err := s.validate.Struct(&collection); err != nil {
		return models.Collection{}, errors.Wrap(ErrInvalid, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	collection.ID = uuid.New().String()
	collection.CreatedAt = time.Now().UTC()
	collection.Tags = dedupeTags(collection.Tags)
	s.collections = append(s.collections, collection)

	if err := s.repo.SaveCollection(collection); err != nil {
		return collection, errors.Wrap(err, "save collection")
	}
	s.logger.Debugw("collection added", "id", collection.ID, "name", collection.Name)
	return collection, nil
}

func (s *Store) UpdateCollection(collection models.Collection) (models.Collection, error) {
	if err := s.validate.Struct(&collection); err != nil {
		return models.Collection{}, errors.Wrap(ErrInvalid, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.collectionIndex(collection.ID)
	if i < 0 {
		return models.Collection{}, errors.Wrapf(ErrNotFound, "collection %s", collection.ID)
	}
	collection.CreatedAt = s.collections[i].CreatedAt
	collection.Tags = dedupeTags(collection.Tags)
	s.collections[i] = collection

	if err := s.repo.UpdateCollection(collection); err != nil {
		return collection, errors.Wrap(err, "update collection")
	}
	return collection, nil
}

func (s *Store) DeleteCollection(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.collectionIndex(id)
	if i < 0 {
		return errors.Wrapf(ErrNotFound, "collection %s", id)
	}
	s.collections = append(s.collections[:i], s.collections[i+1:]...)

	if err := s.repo.DeleteCollection(id); err != nil {
		return errors.Wrap(err, "delete collection")
	}
	return nil
}

// Books returns a copy of the current book snapshot.
func (s *Store) Books() []models.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Recipes returns a copy of the current recipe snapshot.
func (s *Store) Recipes() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecipes(s.recipes)
}

// Tags returns the tag registry in insertion order.
func (s *Store) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.tagOrder))
	copy(out, s.tagOrder)
	return out
}

// Collections returns a copy of the current collection snapshot.
func (s *Store) Collections() []models.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Collection, len(s.collections))
	for i, c := range s.collections {
		c.Tags = append([]string(nil), c.Tags...)
		out[i] = c
	}
	return out
}

// registerTag and growRegistry require s.mu held for writing.

func (s *Store) registerTag(name string) {
	if _, ok := s.tagSet[name]; ok {
		return
	}
	s.tagSet[name] = struct{}{}
	s.tagOrder = append(s.tagOrder, name)
}

func (s *Store) growRegistry(tags []string) error {
	for _, t := range tags {
		if _, ok := s.tagSet[t]; ok {
			continue
		}
		s.registerTag(t)
		if err := s.repo.SaveTag(t); err != nil {
			return errors.Wrap(err, "save tag")
		}
	}
	return nil
}

func (s *Store) bookIndex(id string) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) recipeIndex(id string) int {
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) collectionIndex(id string) int {
	for i := range s.collections {
		if s.collections[i].ID == id {
			return i
		}
	}
	return -1
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func cloneRecipe(r models.Recipe) models.Recipe {
	r.Tags = append([]string(nil), r.Tags...)
	return r
}

func cloneRecipes(recipes []models.Recipe) []models.Recipe {
	out := make([]models.Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = cloneRecipe(r)
	}
	return out
}

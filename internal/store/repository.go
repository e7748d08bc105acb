package store

import (
	"github.com/cookshelf/cookshelf-back/internal/models"
)

// Repository is the persistence facade behind the store. The store loads
// its initial snapshot from it and writes every mutation through to it.
// The in-memory snapshot stays authoritative: a repository error is
// reported to the caller but the in-memory mutation is not rolled back.
type Repository interface {
	LoadBooks() ([]models.Book, error)
	LoadRecipes() ([]models.Recipe, error)
	LoadTags() ([]string, error)
	LoadCollections() ([]models.Collection, error)

	SaveBook(book models.Book) error
	UpdateBook(book models.Book) error
	DeleteBook(id string) error

	SaveRecipe(recipe models.Recipe) error
	UpdateRecipe(recipe models.Recipe) error
	DeleteRecipe(id string) error

	SaveTag(name string) error

	SaveCollection(collection models.Collection) error
	UpdateCollection(collection models.Collection) error
	DeleteCollection(id string) error
}

// NullRepository persists nothing and loads nothing. With it the store is
// purely in-memory and all state is lost on process restart.
type NullRepository struct{}

func (NullRepository) LoadBooks() ([]models.Book, error)             { return nil, nil }
func (NullRepository) LoadRecipes() ([]models.Recipe, error)         { return nil, nil }
func (NullRepository) LoadTags() ([]string, error)                   { return nil, nil }
func (NullRepository) LoadCollections() ([]models.Collection, error) { return nil, nil }

func (NullRepository) SaveBook(models.Book) error   { return nil }
func (NullRepository) UpdateBook(models.Book) error { return nil }
func (NullRepository) DeleteBook(string) error      { return nil }

func (NullRepository) SaveRecipe(models.Recipe) error   { return nil }
func (NullRepository) UpdateRecipe(models.Recipe) error { return nil }
func (NullRepository) DeleteRecipe(string) error        { return nil }

func (NullRepository) SaveTag(string) error { return nil }

func (NullRepository) SaveCollection(models.Collection) error   { return nil }
func (NullRepository) UpdateCollection(models.Collection) error { return nil }
func (NullRepository) DeleteCollection(string) error            { return nil }

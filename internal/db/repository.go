package db

import (
	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cookshelf/cookshelf-back/internal/models"
)

// Repository is the sqlite-backed persistence facade. The store keeps
// the authoritative snapshot in memory; this repository only loads the
// initial state and mirrors every mutation.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) LoadBooks() ([]models.Book, error) {
	recs := make([]BookRecord, 0)
	res := r.db.Order("created_at").Find(&recs)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "load books")
	}

	out := make([]models.Book, len(recs))
	for i := range recs {
		out[i] = models.Book{
			ID:         recs[i].ID,
			Title:      recs[i].Title,
			Author:     recs[i].Author,
			Pseudonym:  recs[i].Pseudonym,
			Editor:     recs[i].Editor,
			Category:   recs[i].Category,
			CoverImage: recs[i].CoverImage,
			Year:       recs[i].Year,
			CreatedAt:  recs[i].CreatedAt,
		}
	}
	return out, nil
}

func (r *Repository) LoadRecipes() ([]models.Recipe, error) {
	recs := make([]RecipeRecord, 0)
	res := r.db.Order("created_at").Find(&recs)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "load recipes")
	}

	tagsByRecipe, err := r.loadJoinedTags("recipe_tags", "recipe_id", "recipes")
	if err != nil {
		return nil, err
	}

	out := make([]models.Recipe, len(recs))
	for i := range recs {
		out[i] = models.Recipe{
			ID:          recs[i].ID,
			Name:        recs[i].Name,
			BookID:      recs[i].BookID,
			Tags:        tagsByRecipe[recs[i].ID],
			Notes:       recs[i].Notes,
			IsFavorite:  recs[i].IsFavorite,
			RecipeImage: recs[i].RecipeImage,
			CreatedAt:   recs[i].CreatedAt,
		}
	}
	return out, nil
}

func (r *Repository) LoadTags() ([]string, error) {
	recs := make([]TagRecord, 0)
	res := r.db.Order("name").Find(&recs)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "load tags")
	}

	out := make([]string, len(recs))
	for i := range recs {
		out[i] = recs[i].Name
	}
	return out, nil
}

func (r *Repository) LoadCollections() ([]models.Collection, error) {
	recs := make([]CollectionRecord, 0)
	res := r.db.Order("created_at").Find(&recs)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "load collections")
	}

	tagsByCollection, err := r.loadJoinedTags("collection_tags", "collection_id", "collections")
	if err != nil {
		return nil, err
	}

	out := make([]models.Collection, len(recs))
	for i := range recs {
		out[i] = models.Collection{
			ID:        recs[i].ID,
			Name:      recs[i].Name,
			Tags:      tagsByCollection[recs[i].ID],
			CreatedAt: recs[i].CreatedAt,
		}
	}
	return out, nil
}

// loadJoinedTags reads a whole tag join table ordered by owner and
// position. The inner join drops rows whose owner is gone.
func (r *Repository) loadJoinedTags(joinTable, ownerColumn, ownerTable string) (map[string][]string, error) {
	sql, args, err := squirrel.
		Select("jt."+ownerColumn+" AS owner_id", "jt.tag AS tag").
		From(joinTable + " jt").
		Join(ownerTable + " o ON o.id = jt." + ownerColumn).
		OrderBy("jt."+ownerColumn, "jt.position").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	rows := make([]struct {
		OwnerID string
		Tag     string
	}, 0)
	res := r.db.Raw(sql, args...).Scan(&rows)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan tag rows")
	}

	out := make(map[string][]string, len(rows))
	for i := range rows {
		out[rows[i].OwnerID] = append(out[rows[i].OwnerID], rows[i].Tag)
	}
	return out, nil
}

func (r *Repository) SaveBook(book models.Book) error {
	res := r.db.Create(bookRecordOf(book))
	if res.Error != nil {
		return errors.Wrap(res.Error, "create book")
	}
	return nil
}

func (r *Repository) UpdateBook(book models.Book) error {
	res := r.db.Save(bookRecordOf(book))
	if res.Error != nil {
		return errors.Wrap(res.Error, "save book")
	}
	return nil
}

func (r *Repository) DeleteBook(id string) error {
	res := r.db.Delete(&BookRecord{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete book")
	}
	return nil
}

func (r *Repository) SaveRecipe(recipe models.Recipe) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if res := tx.Create(recipeRecordOf(recipe)); res.Error != nil {
			return errors.Wrap(res.Error, "create recipe")
		}
		return writeRecipeTags(tx, recipe)
	})
}

func (r *Repository) UpdateRecipe(recipe models.Recipe) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if res := tx.Save(recipeRecordOf(recipe)); res.Error != nil {
			return errors.Wrap(res.Error, "save recipe")
		}
		if res := tx.Delete(&RecipeTagRecord{}, "recipe_id = ?", recipe.ID); res.Error != nil {
			return errors.Wrap(res.Error, "clear recipe tags")
		}
		return writeRecipeTags(tx, recipe)
	})
}

func (r *Repository) DeleteRecipe(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if res := tx.Delete(&RecipeRecord{}, "id = ?", id); res.Error != nil {
			return errors.Wrap(res.Error, "delete recipe")
		}
		if res := tx.Delete(&RecipeTagRecord{}, "recipe_id = ?", id); res.Error != nil {
			return errors.Wrap(res.Error, "delete recipe tags")
		}
		return nil
	})
}

func (r *Repository) SaveTag(name string) error {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&TagRecord{Name: name})
	if res.Error != nil {
		return errors.Wrap(res.Error, "create tag")
	}
	return nil
}

func (r *Repository) SaveCollection(collection models.Collection) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if res := tx.Create(collectionRecordOf(collection)); res.Error != nil {
			return errors.Wrap(res.Error, "create collection")
		}
		return writeCollectionTags(tx, collection)
	})
}

func (r *Repository) UpdateCollection(collection models.Collection) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if res := tx.Save(collectionRecordOf(collection)); res.Error != nil {
			return errors.Wrap(res.Error, "save collection")
		}
		if res := tx.Delete(&CollectionTagRecord{}, "collection_id = ?", collection.ID); res.Error != nil {
			return errors.Wrap(res.Error, "clear collection tags")
		}
		return writeCollectionTags(tx, collection)
	})
}

func (r *Repository) DeleteCollection(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if res := tx.Delete(&CollectionRecord{}, "id = ?", id); res.Error != nil {
			return errors.Wrap(res.Error, "delete collection")
		}
		if res := tx.Delete(&CollectionTagRecord{}, "collection_id = ?", id); res.Error != nil {
			return errors.Wrap(res.Error, "delete collection tags")
		}
		return nil
	})
}

func writeRecipeTags(tx *gorm.DB, recipe models.Recipe) error {
	for i, tag := range recipe.Tags {
		rec := RecipeTagRecord{RecipeID: recipe.ID, Tag: tag, Position: i}
		if res := tx.Create(&rec); res.Error != nil {
			return errors.Wrap(res.Error, "create recipe tag")
		}
	}
	return nil
}

func writeCollectionTags(tx *gorm.DB, collection models.Collection) error {
	for i, tag := range collection.Tags {
		rec := CollectionTagRecord{CollectionID: collection.ID, Tag: tag, Position: i}
		if res := tx.Create(&rec); res.Error != nil {
			return errors.Wrap(res.Error, "create collection tag")
		}
	}
	return nil
}

func bookRecordOf(b models.Book) *BookRecord {
	return &BookRecord{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Pseudonym:  b.Pseudonym,
		Editor:     b.Editor,
		Category:   b.Category,
		CoverImage: b.CoverImage,
		Year:       b.Year,
		CreatedAt:  b.CreatedAt,
	}
}

func recipeRecordOf(r models.Recipe) *RecipeRecord {
	return &RecipeRecord{
		ID:          r.ID,
		Name:        r.Name,
		BookID:      r.BookID,
		Notes:       r.Notes,
		IsFavorite:  r.IsFavorite,
		RecipeImage: r.RecipeImage,
		CreatedAt:   r.CreatedAt,
	}
}

func collectionRecordOf(c models.Collection) *CollectionRecord {
	return &CollectionRecord{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

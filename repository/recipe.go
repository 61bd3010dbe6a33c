package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Kabelo-07/recipe-service/entity"
	"github.com/Kabelo-07/recipe-service/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeRepository persists recipe aggregates. Every mutation runs in one
// transaction: the parent row and the child replacement either all commit or
// none do.
type RecipeRepository struct {
	DB *gorm.DB
}

// NewRecipeRepository creates and returns a new RecipeRepository.
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{
		DB: db,
	}
}

// Create inserts a new recipe aggregate with its children. A uniqueness
// violation at storage time surfaces as a conflict.
func (r *RecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(recipe).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entity.Conflict("Recipe with name: %s, already exists", recipe.Name)
	}
	return err
}

// FindByID fetches a recipe aggregate with its child collections.
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.DB.WithContext(ctx).
		Preload("Ingredients").
		Preload("Instructions").
		First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.NotFound("Recipe with id: %s, not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FindByName fetches a recipe aggregate by its name, case-insensitively.
func (r *RecipeRepository) FindByName(ctx context.Context, name string) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.DB.WithContext(ctx).
		Preload("Ingredients").
		Preload("Instructions").
		Where("LOWER(name) = LOWER(?)", name).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.NotFound("Recipe with name: %s, not found", name)
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ExistsByName reports whether any recipe carries the name,
// case-insensitively.
func (r *RecipeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Recipe{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	return count > 0, err
}

// ExistsByNameExcluding reports whether a recipe other than the given one
// carries the name, case-insensitively. Used for rename validation.
func (r *RecipeRepository) ExistsByNameExcluding(ctx context.Context, name string, id uuid.UUID) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Recipe{}).
		Where("LOWER(name) = LOWER(?)", name).
		Where("id <> ?", id).
		Count(&count).Error
	return count > 0, err
}

// Save persists the full aggregate state of an existing recipe. The parent
// update is guarded by the version the caller read: a stale write affects
// zero rows and fails with a conflict instead of silently overwriting.
// Children absent from the aggregate are removed permanently.
func (r *RecipeRepository) Save(ctx context.Context, recipe *model.Recipe) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		readVersion := recipe.Version
		res := tx.Model(&model.Recipe{}).
			Where("id = ? AND version = ?", recipe.ID, readVersion).
			Updates(map[string]any{
				"name":               recipe.Name,
				"category":           recipe.Category,
				"number_of_servings": recipe.Servings,
				"preparation_time":   recipe.PreparationTime,
				"cooking_time":       recipe.CookingTime,
				"updated_date":       time.Now().UTC(),
				"version":            readVersion + 1,
			})
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return entity.Conflict("Recipe with name: %s, already exists", recipe.Name)
		}
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return entity.Conflict("Recipe with id: %s, was modified concurrently", recipe.ID)
		}
		recipe.Version = readVersion + 1

		if err := saveIngredients(tx, recipe); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return entity.Conflict("Recipe with id: %s, has duplicate ingredients", recipe.ID)
			}
			return err
		}
		if err := saveInstructions(tx, recipe); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return entity.Conflict("Recipe with id: %s, has duplicate instructions", recipe.ID)
			}
			return err
		}
		return nil
	})
}

// Delete removes the aggregate and all of its children.
func (r *RecipeRepository) Delete(ctx context.Context, recipe *model.Recipe) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.Instruction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, "id = ?", recipe.ID).Error
	})
}

// FindAll executes the composed predicate and returns one page of matching
// aggregates plus the total match count.
func (r *RecipeRepository) FindAll(ctx context.Context, predicate Clause, page entity.PageRequest) ([]model.Recipe, int64, error) {
	page = page.Normalized()
	if predicate == nil {
		predicate = func(db *gorm.DB) *gorm.DB { return db }
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&model.Recipe{}).
		Scopes(predicate).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []model.Recipe
	err := r.DB.WithContext(ctx).Model(&model.Recipe{}).
		Scopes(predicate).
		Preload("Ingredients").
		Preload("Instructions").
		Order("recipe.name").
		Limit(page.Size).
		Offset(page.Number * page.Size).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// Child rows are replaced wholesale: deleting every stored row before
// re-inserting the aggregate's collections keeps the per-recipe unique
// indexes out of the way when an update swaps steps or descriptions between
// existing rows. Ids are preserved because the rows are re-inserted with the
// ids the aggregate already carries.
func saveIngredients(tx *gorm.DB, recipe *model.Recipe) error {
	if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.Ingredient{}).Error; err != nil {
		return err
	}
	if len(recipe.Ingredients) == 0 {
		return nil
	}
	return tx.Create(&recipe.Ingredients).Error
}

func saveInstructions(tx *gorm.DB, recipe *model.Recipe) error {
	if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.Instruction{}).Error; err != nil {
		return err
	}
	if len(recipe.Instructions) == 0 {
		return nil
	}
	return tx.Create(&recipe.Instructions).Error
}

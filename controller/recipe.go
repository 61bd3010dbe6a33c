package controller

import (
	"context"

	"github.com/Kabelo-07/recipe-service/entity"
	"github.com/Kabelo-07/recipe-service/logger"
	"github.com/Kabelo-07/recipe-service/mapper"
	"github.com/Kabelo-07/recipe-service/repository"
	"github.com/Kabelo-07/recipe-service/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeController orchestrates the recipe lifecycle: aggregate
// create/update/find/delete plus the six child-collection operations.
type RecipeController interface {
	Create(ctx context.Context, dto entity.CreateRecipe) (*entity.Recipe, error)
	Update(ctx context.Context, id uuid.UUID, patch entity.RecipePatch) (*entity.Recipe, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error)
	FindAll(ctx context.Context, filter *repository.RecipeFilter, page entity.PageRequest) (*entity.RecipePage, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddIngredients(ctx context.Context, id uuid.UUID, payload []entity.IngredientPayload) (*entity.Recipe, error)
	UpdateIngredients(ctx context.Context, id uuid.UUID, patches []entity.IngredientPatch) (*entity.Recipe, error)
	DeleteIngredients(ctx context.Context, id uuid.UUID, ids []uuid.UUID) error

	AddInstructions(ctx context.Context, id uuid.UUID, payload []entity.InstructionPayload) (*entity.Recipe, error)
	UpdateInstructions(ctx context.Context, id uuid.UUID, patches []entity.InstructionPatch) (*entity.Recipe, error)
	DeleteInstructions(ctx context.Context, id uuid.UUID, ids []uuid.UUID) error
}

type recipeController struct {
	repository *repository.RecipeRepository
}

func NewRecipeController(recipeRepository *repository.RecipeRepository) RecipeController {
	return &recipeController{
		repository: recipeRepository,
	}
}

// Create rejects a name already used case-insensitively, then persists the
// aggregate. A uniqueness violation at storage time (a race the pre-check
// missed) surfaces as the same conflict.
func (c *recipeController) Create(ctx context.Context, dto entity.CreateRecipe) (*entity.Recipe, error) {
	category, err := entity.ParseCategory(string(dto.Category))
	if err != nil {
		return nil, entity.Validation("Invalid request sent", []string{"category: " + err.Error()})
	}
	dto.Category = category

	exists, err := c.repository.ExistsByName(ctx, dto.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, entity.Conflict("Recipe with name: %s, already exists", util.Capitalize(dto.Name))
	}

	recipe, err := mapper.NewRecipeModel(dto)
	if err != nil {
		return nil, err
	}
	if len(recipe.Ingredients) == 0 || len(recipe.Instructions) == 0 {
		return nil, entity.Validation("Invalid request sent",
			[]string{"ingredients: must not be empty", "instructions: must not be empty"})
	}

	if err := c.repository.Create(ctx, recipe); err != nil {
		return nil, err
	}
	logger.Info("recipe created", zap.String("id", recipe.ID.String()), zap.String("name", recipe.Name))
	return mapper.RecipeModelToEntity(recipe), nil
}

// Update applies the present fields of the patch to the stored recipe.
// Renaming to a name held by a different recipe is a conflict.
func (c *recipeController) Update(ctx context.Context, id uuid.UUID, patch entity.RecipePatch) (*entity.Recipe, error) {
	recipe, err := c.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && !util.IsBlank(*patch.Name) {
		taken, err := c.repository.ExistsByNameExcluding(ctx, *patch.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, entity.Conflict("Recipe with name: %s, already exists", util.Capitalize(*patch.Name))
		}
		recipe.Name = util.Capitalize(*patch.Name)
	}
	if patch.Category != nil {
		category, err := entity.ParseCategory(string(*patch.Category))
		if err != nil {
			return nil, entity.Validation("Invalid request sent", []string{"category: " + err.Error()})
		}
		recipe.Category = string(category)
	}
	if patch.Servings != nil {
		if *patch.Servings < 1 {
			return nil, entity.Validation("Invalid request sent", []string{"servings: must be at least 1"})
		}
		recipe.Servings = *patch.Servings
	}
	if patch.PreparationTime != nil {
		if *patch.PreparationTime < 1 {
			return nil, entity.Validation("Invalid request sent", []string{"preparation_time: must be at least 1"})
		}
		recipe.PreparationTime = *patch.PreparationTime
	}
	if patch.CookingTime != nil {
		if *patch.CookingTime < 1 {
			return nil, entity.Validation("Invalid request sent", []string{"cooking_time: must be at least 1"})
		}
		recipe.CookingTime = *patch.CookingTime
	}

	if err := c.repository.Save(ctx, recipe); err != nil {
		return nil, err
	}
	return mapper.RecipeModelToEntity(recipe), nil
}

func (c *recipeController) FindByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	recipe, err := c.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapper.RecipeModelToEntity(recipe), nil
}

// FindAll executes the composed filter predicate and projects one page.
func (c *recipeController) FindAll(ctx context.Context, filter *repository.RecipeFilter, page entity.PageRequest) (*entity.RecipePage, error) {
	if filter == nil {
		filter = repository.NewRecipeFilter()
	}
	page = page.Normalized()

	recipes, total, err := c.repository.FindAll(ctx, filter.Build(), page)
	if err != nil {
		return nil, err
	}
	return entity.NewRecipePage(mapper.RecipeModelsToEntities(recipes), page, total), nil
}

// Delete removes the aggregate and its children. A missing recipe is an
// invalid request here, not a not-found: there is nothing to act on.
func (c *recipeController) Delete(ctx context.Context, id uuid.UUID) error {
	recipe, err := c.repository.FindByID(ctx, id)
	if err != nil {
		if entity.IsKind(err, entity.KindNotFound) {
			return entity.InvalidRequest("Cannot remove recipe with id: %s", id)
		}
		return err
	}
	if err := c.repository.Delete(ctx, recipe); err != nil {
		return err
	}
	logger.Info("recipe deleted", zap.String("id", id.String()))
	return nil
}

func (c *recipeController) AddIngredients(ctx context.Context, id uuid.UUID, payload []entity.IngredientPayload) (*entity.Recipe, error) {
	recipe, err := c.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := addIngredients(recipe, payload); err != nil {
		return nil, err
	}
	if err := c.repository.Save(ctx, recipe); err != nil {
		return nil, err
	}
	return mapper.RecipeModelToEntity(recipe), nil
}

func (c *recipeController) UpdateIngredients(ctx context.Context, id uuid.UUID, patches []entity.IngredientPatch) (*entity.Recipe, error) {
	recipe, err := c.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := updateIngredients(recipe, patches); err != nil {
		return nil, err
	}
	if err := c.repository.Save(ctx, recipe); err != nil {
		return nil, err
	}
	return mapper.RecipeModelToEntity(recipe), nil
}

func (c *recipeController) DeleteIngredients(ctx context.Context, id uuid.UUID, ids []uuid.UUID) error {
	recipe, err := c.repository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	deleteIngredients(recipe, ids)
	return c.repository.Save(ctx, recipe)
}

func (c *recipeController) AddInstructions(ctx context.Context, id uuid.UUID, payload []entity.InstructionPayload) (*entity.Recipe, error) {
	recipe, err := c.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := addInstructions(recipe, payload); err != nil {
		return nil, err
	}
	if err := c.repository.Save(ctx, recipe); err != nil {
		return nil, err
	}
	return mapper.RecipeModelToEntity(recipe), nil
}

func (c *recipeController) UpdateInstructions(ctx context.Context, id uuid.UUID, patches []entity.InstructionPatch) (*entity.Recipe, error) {
	recipe, err := c.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := updateInstructions(recipe, patches); err != nil {
		return nil, err
	}
	if err := c.repository.Save(ctx, recipe); err != nil {
		return nil, err
	}
	return mapper.RecipeModelToEntity(recipe), nil
}

func (c *recipeController) DeleteInstructions(ctx context.Context, id uuid.UUID, ids []uuid.UUID) error {
	recipe, err := c.repository.FindByID(ctx, id)
	if err != nil {
		return err
	}
	deleteInstructions(recipe, ids)
	return c.repository.Save(ctx, recipe)
}

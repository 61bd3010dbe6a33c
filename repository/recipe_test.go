package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Kabelo-07/recipe-service/entity"
	"github.com/Kabelo-07/recipe-service/mapper"
	"github.com/Kabelo-07/recipe-service/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(&model.Recipe{}, &model.Ingredient{}, &model.Instruction{}))
	return database
}

func seedRecipe(t *testing.T, repo *RecipeRepository, name string, servings int, category entity.Category, ingredients ...string) *model.Recipe {
	t.Helper()
	payload := make([]entity.IngredientPayload, 0, len(ingredients))
	for _, ing := range ingredients {
		payload = append(payload, entity.IngredientPayload{Description: ing})
	}
	recipe, err := mapper.NewRecipeModel(entity.CreateRecipe{
		Name:            name,
		Category:        category,
		Servings:        servings,
		PreparationTime: 10,
		CookingTime:     20,
		Ingredients:     payload,
		Instructions: []entity.InstructionPayload{
			{Description: "Prepare " + name, Step: 1},
			{Description: "Cook " + name, Step: 2},
		},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), recipe))
	return recipe
}

func recipeNames(recipes []model.Recipe) []string {
	names := make([]string, 0, len(recipes))
	for _, r := range recipes {
		names = append(names, r.Name)
	}
	return names
}

func TestFindByIDLoadsChildren(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seeded := seedRecipe(t, repo, "pancakes", 4, entity.CategoryOther, "Flour", "Milk")

	found, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", found.Name)
	assert.Len(t, found.Ingredients, 2)
	assert.Len(t, found.Instructions, 2)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, entity.IsKind(err, entity.KindNotFound))
}

func TestFindByNameIsCaseInsensitive(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seedRecipe(t, repo, "pancakes", 4, entity.CategoryOther, "Flour")

	found, err := repo.FindByName(context.Background(), "PANCAKES")
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", found.Name)

	_, err = repo.FindByName(context.Background(), "waffles")
	require.Error(t, err)
	assert.True(t, entity.IsKind(err, entity.KindNotFound))
}

func TestExistsByNameIsCaseInsensitive(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seedRecipe(t, repo, "My Recipe", 2, entity.CategoryOther, "Salt")

	exists, err := repo.ExistsByName(context.Background(), "my RECIPE")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(context.Background(), "other")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExistsByNameExcludingIgnoresOwnID(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	mine := seedRecipe(t, repo, "Stew", 2, entity.CategoryBeef, "Beef")
	seedRecipe(t, repo, "Soup", 2, entity.CategoryOther, "Water")

	taken, err := repo.ExistsByNameExcluding(context.Background(), "stew", mine.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.ExistsByNameExcluding(context.Background(), "soup", mine.ID)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestSaveRejectsStaleVersion(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seeded := seedRecipe(t, repo, "Stew", 2, entity.CategoryBeef, "Beef")

	first, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)

	first.Servings = 3
	require.NoError(t, repo.Save(context.Background(), first))

	second.Servings = 5
	err = repo.Save(context.Background(), second)
	require.Error(t, err)
	assert.True(t, entity.IsKind(err, entity.KindConflict))

	current, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, current.Servings)
}

func TestSaveAllowsSwappingInstructionSteps(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seeded := seedRecipe(t, repo, "Stew", 2, entity.CategoryBeef, "Beef")

	loaded, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Instructions, 2)
	loaded.Instructions[0].Step, loaded.Instructions[1].Step =
		loaded.Instructions[1].Step, loaded.Instructions[0].Step
	require.NoError(t, repo.Save(context.Background(), loaded))

	current, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	byID := map[uuid.UUID]int{}
	for _, ins := range current.Instructions {
		byID[ins.ID] = ins.Step
	}
	assert.Equal(t, loaded.Instructions[0].Step, byID[loaded.Instructions[0].ID])
	assert.Equal(t, loaded.Instructions[1].Step, byID[loaded.Instructions[1].ID])
}

func TestSaveAllowsSwappingIngredientDescriptions(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seeded := seedRecipe(t, repo, "Stew", 2, entity.CategoryBeef, "Beef", "Onion")

	loaded, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Ingredients, 2)
	loaded.Ingredients[0].Description, loaded.Ingredients[1].Description =
		loaded.Ingredients[1].Description, loaded.Ingredients[0].Description
	require.NoError(t, repo.Save(context.Background(), loaded))

	current, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	byID := map[uuid.UUID]string{}
	for _, ing := range current.Ingredients {
		byID[ing.ID] = ing.Description
	}
	assert.Equal(t, loaded.Ingredients[0].Description, byID[loaded.Ingredients[0].ID])
	assert.Equal(t, loaded.Ingredients[1].Description, byID[loaded.Ingredients[1].ID])
}

func TestSaveRemovesOrphanedChildren(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seeded := seedRecipe(t, repo, "Stew", 2, entity.CategoryBeef, "Beef", "Onion", "Salt")

	loaded, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	loaded.Ingredients = loaded.Ingredients[:1]
	require.NoError(t, repo.Save(context.Background(), loaded))

	var rows int64
	require.NoError(t, repo.DB.Model(&model.Ingredient{}).Where("recipe_id = ?", seeded.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestDeleteCascadesToChildren(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seeded := seedRecipe(t, repo, "Stew", 2, entity.CategoryBeef, "Beef")

	require.NoError(t, repo.Delete(context.Background(), seeded))

	_, err := repo.FindByID(context.Background(), seeded.ID)
	assert.True(t, entity.IsKind(err, entity.KindNotFound))

	var rows int64
	require.NoError(t, repo.DB.Model(&model.Ingredient{}).Where("recipe_id = ?", seeded.ID).Count(&rows).Error)
	assert.Zero(t, rows)
	require.NoError(t, repo.DB.Model(&model.Instruction{}).Where("recipe_id = ?", seeded.ID).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestCreateDuplicateNameIsConflict(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seedRecipe(t, repo, "Stew", 2, entity.CategoryBeef, "Beef")

	duplicate, err := mapper.NewRecipeModel(entity.CreateRecipe{
		Name:            "STEW",
		Category:        entity.CategoryBeef,
		Servings:        2,
		PreparationTime: 5,
		CookingTime:     5,
		Ingredients:     []entity.IngredientPayload{{Description: "Beef"}},
		Instructions:    []entity.InstructionPayload{{Description: "Cook", Step: 1}},
	})
	require.NoError(t, err)

	err = repo.Create(context.Background(), duplicate)
	require.Error(t, err)
	assert.True(t, entity.IsKind(err, entity.KindConflict))
}

func TestFindAllUnfilteredMatchesEverything(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seedRecipe(t, repo, "Pancakes", 4, entity.CategoryOther, "Flour")
	seedRecipe(t, repo, "Stew", 2, entity.CategoryBeef, "Beef")

	recipes, total, err := repo.FindAll(context.Background(), NewRecipeFilter().Build(), entity.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, recipes, 2)
}

func TestFindAllByIngredientAndServings(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seedRecipe(t, repo, "Pancakes", 4, entity.CategoryOther, "Salt", "Flour")
	seedRecipe(t, repo, "Soup", 4, entity.CategoryOther, "Pepper")
	seedRecipe(t, repo, "Stew", 2, entity.CategoryBeef, "Salt", "Beef")

	predicate := NewRecipeFilter().
		WithIncludedIngredients([]string{"Salt"}).
		WithServings(4).
		Build()
	recipes, total, err := repo.FindAll(context.Background(), predicate, entity.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Pancakes", recipes[0].Name)

	descriptions := make([]string, 0, len(recipes[0].Ingredients))
	for _, ing := range recipes[0].Ingredients {
		descriptions = append(descriptions, ing.Description)
	}
	assert.Contains(t, descriptions, "Salt")
}

func TestFindAllRequiresEverySubstringSomewhere(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seedRecipe(t, repo, "Pasta", 2, entity.CategoryOther, "Tomato sauce", "Red onion")
	seedRecipe(t, repo, "Salad", 2, entity.CategoryVegetarian, "Tomato")

	predicate := NewRecipeFilter().
		WithIncludedIngredients([]string{"tomato", "onion"}).
		Build()
	recipes, _, err := repo.FindAll(context.Background(), predicate, entity.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pasta"}, recipeNames(recipes))
}

func TestFindAllExcludesIngredientAcrossAllRows(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seedRecipe(t, repo, "Pancakes", 4, entity.CategoryOther, "Salt", "Flour")
	seedRecipe(t, repo, "Fruit Salad", 2, entity.CategoryVegetarian, "Apple", "Banana")

	predicate := NewRecipeFilter().
		WithExcludedIngredients([]string{"SALT"}).
		Build()
	recipes, _, err := repo.FindAll(context.Background(), predicate, entity.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Fruit salad"}, recipeNames(recipes))
}

func TestFindAllByInstructionText(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seedRecipe(t, repo, "Pancakes", 4, entity.CategoryOther, "Flour")
	seedRecipe(t, repo, "Stew", 2, entity.CategoryBeef, "Beef")

	predicate := NewRecipeFilter().
		WithInstructions([]string{"cook stew"}).
		Build()
	recipes, _, err := repo.FindAll(context.Background(), predicate, entity.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Stew"}, recipeNames(recipes))
}

func TestFindAllByCategoryAndID(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	stew := seedRecipe(t, repo, "Stew", 2, entity.CategoryBeef, "Beef")
	seedRecipe(t, repo, "Roast", 4, entity.CategoryBeef, "Beef")

	predicate := NewRecipeFilter().
		WithCategory(entity.CategoryBeef).
		WithRecipeID(stew.ID).
		Build()
	recipes, _, err := repo.FindAll(context.Background(), predicate, entity.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Stew"}, recipeNames(recipes))
}

func TestFindAllIgnoresUnusableFilterInputs(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	seedRecipe(t, repo, "Stew", 2, entity.CategoryBeef, "Beef")

	predicate := NewRecipeFilter().
		WithRecipeID(uuid.Nil).
		WithServings(-1).
		WithIncludedIngredients([]string{" "}).
		WithCategory(entity.Category("SNACKS")).
		Build()
	recipes, total, err := repo.FindAll(context.Background(), predicate, entity.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, recipes, 1)
}

func TestFindAllPaginates(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))
	for i := 0; i < 7; i++ {
		seedRecipe(t, repo, fmt.Sprintf("Recipe %d", i), 2, entity.CategoryOther, fmt.Sprintf("Ingredient %d", i))
	}

	first, total, err := repo.FindAll(context.Background(), NewRecipeFilter().Build(), entity.PageRequest{Number: 0, Size: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, first, 5)

	second, total, err := repo.FindAll(context.Background(), NewRecipeFilter().Build(), entity.PageRequest{Number: 1, Size: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, second, 2)
}

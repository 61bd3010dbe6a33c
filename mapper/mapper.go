package mapper

import (
	"sort"

	"github.com/Kabelo-07/recipe-service/entity"
	"github.com/Kabelo-07/recipe-service/model"
	"github.com/Kabelo-07/recipe-service/util"

	"github.com/google/uuid"
)

// NewRecipeModel builds a persistable recipe aggregate from a creation
// payload. Names and descriptions are normalized, child ids are assigned
// server-side, and duplicate natural-order keys in the payload collapse to
// the first occurrence. Two instructions with the same description but
// different steps cannot both be stored, so that case is a conflict.
func NewRecipeModel(dto entity.CreateRecipe) (*model.Recipe, error) {
	recipe := &model.Recipe{
		ID:              uuid.New(),
		Name:            util.Capitalize(dto.Name),
		Category:        string(dto.Category),
		Servings:        dto.Servings,
		PreparationTime: dto.PreparationTime,
		CookingTime:     dto.CookingTime,
	}

	seenDescriptions := map[string]bool{}
	for _, ing := range dto.Ingredients {
		description := util.Capitalize(ing.Description)
		if util.IsBlank(description) || seenDescriptions[description] {
			continue
		}
		seenDescriptions[description] = true
		recipe.Ingredients = append(recipe.Ingredients, NewIngredient(recipe.ID, description))
	}

	seenSteps := map[int]bool{}
	seenDescriptions = map[string]bool{}
	for _, ins := range dto.Instructions {
		description := util.Capitalize(ins.Description)
		if util.IsBlank(description) || seenSteps[ins.Step] {
			continue
		}
		if seenDescriptions[description] {
			return nil, entity.Conflict("Duplicate instruction description: %s", description)
		}
		seenSteps[ins.Step] = true
		seenDescriptions[description] = true
		recipe.Instructions = append(recipe.Instructions, NewInstruction(recipe.ID, description, ins.DetailedDescription, ins.Step))
	}

	SortIngredients(recipe.Ingredients)
	SortInstructions(recipe.Instructions)
	return recipe, nil
}

// NewIngredient builds a child ingredient row with server-assigned identity.
func NewIngredient(recipeID uuid.UUID, description string) model.Ingredient {
	return model.Ingredient{
		ID:          uuid.New(),
		RecipeID:    recipeID,
		Description: description,
	}
}

// NewInstruction builds a child instruction row with server-assigned identity.
func NewInstruction(recipeID uuid.UUID, description, detailedDescription string, step int) model.Instruction {
	return model.Instruction{
		ID:                  uuid.New(),
		RecipeID:            recipeID,
		Description:         description,
		DetailedDescription: detailedDescription,
		Step:                step,
	}
}

// RecipeModelToEntity maps a stored aggregate to its API projection with
// ingredients ordered by description and instructions ordered by step.
func RecipeModelToEntity(m *model.Recipe) *entity.Recipe {
	SortIngredients(m.Ingredients)
	SortInstructions(m.Instructions)

	ingredients := make([]entity.Ingredient, 0, len(m.Ingredients))
	for _, ing := range m.Ingredients {
		ingredients = append(ingredients, entity.Ingredient{
			ID:          ing.ID,
			Description: ing.Description,
		})
	}

	instructions := make([]entity.Instruction, 0, len(m.Instructions))
	for _, ins := range m.Instructions {
		instructions = append(instructions, entity.Instruction{
			ID:                  ins.ID,
			Description:         ins.Description,
			DetailedDescription: ins.DetailedDescription,
			Step:                ins.Step,
		})
	}

	return &entity.Recipe{
		ID:              m.ID,
		Name:            m.Name,
		Category:        entity.Category(m.Category),
		Servings:        m.Servings,
		PreparationTime: m.PreparationTime,
		CookingTime:     m.CookingTime,
		Ingredients:     ingredients,
		Instructions:    instructions,
	}
}

// RecipeModelsToEntities maps a fetched page of aggregates.
func RecipeModelsToEntities(models []model.Recipe) []entity.Recipe {
	out := make([]entity.Recipe, 0, len(models))
	for i := range models {
		out = append(out, *RecipeModelToEntity(&models[i]))
	}
	return out
}

// SortIngredients orders ingredients by their natural order key, ascending
// lexicographic description.
func SortIngredients(ingredients []model.Ingredient) {
	sort.Slice(ingredients, func(i, j int) bool {
		return ingredients[i].Description < ingredients[j].Description
	})
}

// SortInstructions orders instructions by their natural order key, ascending
// step.
func SortInstructions(instructions []model.Instruction) {
	sort.Slice(instructions, func(i, j int) bool {
		return instructions[i].Step < instructions[j].Step
	})
}

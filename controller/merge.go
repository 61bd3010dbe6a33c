package controller

import (
	"github.com/Kabelo-07/recipe-service/entity"
	"github.com/Kabelo-07/recipe-service/mapper"
	"github.com/Kabelo-07/recipe-service/model"
	"github.com/Kabelo-07/recipe-service/util"

	"github.com/google/uuid"
)

// The merge functions reconcile a client-submitted partial payload against a
// recipe's loaded child collection. They mutate the aggregate in memory; the
// caller persists the result. Post-condition for every operation: the
// collection is sorted by its natural order key and free of duplicate unique
// keys.
//
// Duplicate policy on add: an item whose normalized description matches an
// existing child is dropped silently, making adds idempotent. An added
// instruction whose step is already taken by a different description is a
// conflict, since dropping it would discard a genuinely new entry.

func addIngredients(recipe *model.Recipe, payload []entity.IngredientPayload) error {
	for _, dto := range payload {
		if dto.ID != nil {
			return entity.InvalidCreation("Cannot pass Ids when adding ingredients")
		}
	}

	existing := make(map[string]bool, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		existing[ing.Description] = true
	}

	for _, dto := range payload {
		description := util.Capitalize(dto.Description)
		if util.IsBlank(description) || existing[description] {
			continue
		}
		existing[description] = true
		recipe.Ingredients = append(recipe.Ingredients, mapper.NewIngredient(recipe.ID, description))
	}

	mapper.SortIngredients(recipe.Ingredients)
	return nil
}

func updateIngredients(recipe *model.Recipe, patches []entity.IngredientPatch) error {
	byID := make(map[uuid.UUID]entity.IngredientPatch, len(patches))
	for _, patch := range patches {
		byID[patch.ID] = patch
	}

	matched := 0
	for i := range recipe.Ingredients {
		patch, ok := byID[recipe.Ingredients[i].ID]
		if !ok {
			continue
		}
		recipe.Ingredients[i].Description = util.Capitalize(patch.Description)
		matched++
	}
	if matched == 0 {
		return entity.InvalidRequest("No ingredients found matching the given ids")
	}

	if err := checkIngredientUniqueness(recipe.Ingredients); err != nil {
		return err
	}
	mapper.SortIngredients(recipe.Ingredients)
	return nil
}

func deleteIngredients(recipe *model.Recipe, ids []uuid.UUID) {
	drop := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := recipe.Ingredients[:0]
	for _, ing := range recipe.Ingredients {
		if !drop[ing.ID] {
			kept = append(kept, ing)
		}
	}
	recipe.Ingredients = kept
}

func addInstructions(recipe *model.Recipe, payload []entity.InstructionPayload) error {
	for _, dto := range payload {
		if dto.ID != nil {
			return entity.InvalidCreation("Cannot pass Ids when adding instructions")
		}
	}

	descriptions := make(map[string]bool, len(recipe.Instructions))
	steps := make(map[int]bool, len(recipe.Instructions))
	for _, ins := range recipe.Instructions {
		descriptions[ins.Description] = true
		steps[ins.Step] = true
	}

	for _, dto := range payload {
		description := util.Capitalize(dto.Description)
		if util.IsBlank(description) || descriptions[description] {
			continue
		}
		if steps[dto.Step] {
			return entity.Conflict("Instruction with step: %d, already exists", dto.Step)
		}
		descriptions[description] = true
		steps[dto.Step] = true
		recipe.Instructions = append(recipe.Instructions, mapper.NewInstruction(recipe.ID, description, dto.DetailedDescription, dto.Step))
	}

	mapper.SortInstructions(recipe.Instructions)
	return nil
}

func updateInstructions(recipe *model.Recipe, patches []entity.InstructionPatch) error {
	byID := make(map[uuid.UUID]entity.InstructionPatch, len(patches))
	for _, patch := range patches {
		byID[patch.ID] = patch
	}

	matched := 0
	for i := range recipe.Instructions {
		patch, ok := byID[recipe.Instructions[i].ID]
		if !ok {
			continue
		}
		applyInstructionPatch(&recipe.Instructions[i], patch)
		matched++
	}
	if matched == 0 {
		return entity.InvalidRequest("No instructions found matching the given ids")
	}

	if err := checkInstructionUniqueness(recipe.Instructions); err != nil {
		return err
	}
	mapper.SortInstructions(recipe.Instructions)
	return nil
}

// applyInstructionPatch overwrites only the fields present in the patch.
func applyInstructionPatch(instruction *model.Instruction, patch entity.InstructionPatch) {
	if patch.Description != nil && !util.IsBlank(*patch.Description) {
		instruction.Description = util.Capitalize(*patch.Description)
	}
	if patch.DetailedDescription != nil {
		instruction.DetailedDescription = *patch.DetailedDescription
	}
	if patch.Step != nil && *patch.Step >= 1 {
		instruction.Step = *patch.Step
	}
}

func deleteInstructions(recipe *model.Recipe, ids []uuid.UUID) {
	drop := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := recipe.Instructions[:0]
	for _, ins := range recipe.Instructions {
		if !drop[ins.ID] {
			kept = append(kept, ins)
		}
	}
	recipe.Instructions = kept
}

func checkIngredientUniqueness(ingredients []model.Ingredient) error {
	seen := make(map[string]bool, len(ingredients))
	for _, ing := range ingredients {
		if seen[ing.Description] {
			return entity.Conflict("Ingredient with description: %s, already exists", ing.Description)
		}
		seen[ing.Description] = true
	}
	return nil
}

func checkInstructionUniqueness(instructions []model.Instruction) error {
	descriptions := make(map[string]bool, len(instructions))
	steps := make(map[int]bool, len(instructions))
	for _, ins := range instructions {
		if descriptions[ins.Description] {
			return entity.Conflict("Instruction with description: %s, already exists", ins.Description)
		}
		if steps[ins.Step] {
			return entity.Conflict("Instruction with step: %d, already exists", ins.Step)
		}
		descriptions[ins.Description] = true
		steps[ins.Step] = true
	}
	return nil
}

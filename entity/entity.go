package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Category is the fixed meal category enumeration of a recipe.
type Category string

const (
	CategoryVegetarian Category = "VEGETARIAN"
	CategoryComfort    Category = "COMFORT"
	CategoryBeef       Category = "BEEF"
	CategoryChicken    Category = "CHICKEN"
	CategoryOther      Category = "OTHER"
)

// ParseCategory resolves a category value case-insensitively.
func ParseCategory(value string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(value)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category: %s", value)
	}
	return c, nil
}

// Valid reports whether the category is one of the enumerated values.
func (c Category) Valid() bool {
	switch c {
	case CategoryVegetarian, CategoryComfort, CategoryBeef, CategoryChicken, CategoryOther:
		return true
	}
	return false
}

// Recipe is the API projection of a recipe aggregate. Ingredients are ordered
// ascending by description, instructions ascending by step.
type Recipe struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Category        Category      `json:"category"`
	Servings        int           `json:"servings"`
	PreparationTime int           `json:"preparation_time"`
	CookingTime     int           `json:"cooking_time"`
	Ingredients     []Ingredient  `json:"ingredients"`
	Instructions    []Instruction `json:"instructions"`
}

// Ingredient is the API projection of one recipe ingredient.
type Ingredient struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
}

// Instruction is the API projection of one recipe instruction.
type Instruction struct {
	ID                  uuid.UUID `json:"id"`
	Description         string    `json:"description"`
	DetailedDescription string    `json:"detailed_description,omitempty"`
	Step                int       `json:"step"`
}

// CreateRecipe is the payload for creating a recipe aggregate.
type CreateRecipe struct {
	Name            string               `json:"name" binding:"required"`
	Category        Category             `json:"category" binding:"required"`
	Servings        int                  `json:"servings" binding:"required,min=1"`
	PreparationTime int                  `json:"preparation_time" binding:"required,min=1"`
	CookingTime     int                  `json:"cooking_time" binding:"required,min=1"`
	Ingredients     []IngredientPayload  `json:"ingredients" binding:"required,min=1,dive"`
	Instructions    []InstructionPayload `json:"instructions" binding:"required,min=1,dive"`
}

// RecipePatch carries the optional top-level recipe fields of a partial
// update. Nil fields leave the stored value untouched.
type RecipePatch struct {
	Name            *string   `json:"name"`
	Category        *Category `json:"category"`
	Servings        *int      `json:"servings" binding:"omitempty,min=1"`
	PreparationTime *int      `json:"preparation_time" binding:"omitempty,min=1"`
	CookingTime     *int      `json:"cooking_time" binding:"omitempty,min=1"`
}

// IngredientPayload is the payload for adding ingredients to a recipe. The id
// must be absent; the server assigns identity.
type IngredientPayload struct {
	ID          *uuid.UUID `json:"id"`
	Description string     `json:"description" binding:"required"`
}

// IngredientPatch replaces the description of the identified ingredient.
type IngredientPatch struct {
	ID          uuid.UUID `json:"id" binding:"required"`
	Description string    `json:"description" binding:"required"`
}

// InstructionPayload is the payload for adding instructions to a recipe.
type InstructionPayload struct {
	ID                  *uuid.UUID `json:"id"`
	Description         string     `json:"description" binding:"required"`
	DetailedDescription string     `json:"detailed_description"`
	Step                int        `json:"step" binding:"required,min=1"`
}

// InstructionPatch is a sparse patch of the identified instruction. Nil
// fields leave the stored value untouched.
type InstructionPatch struct {
	ID                  uuid.UUID `json:"id" binding:"required"`
	Description         *string   `json:"description"`
	DetailedDescription *string   `json:"detailed_description"`
	Step                *int      `json:"step" binding:"omitempty,min=1"`
}

// PageRequest selects one page of a filtered recipe listing.
type PageRequest struct {
	Number int
	Size   int
}

// Page request defaults, matching the listing endpoint contract.
const (
	DefaultPageNumber = 0
	DefaultPageSize   = 100
)

// Normalized returns the request with out-of-range values replaced by the
// defaults.
func (p PageRequest) Normalized() PageRequest {
	if p.Number < 0 {
		p.Number = DefaultPageNumber
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	return p
}

// RecipePage is one page of a filtered recipe listing.
type RecipePage struct {
	Content       []Recipe `json:"content"`
	Empty         bool     `json:"empty"`
	First         bool     `json:"first"`
	Last          bool     `json:"last"`
	Number        int      `json:"number"`
	Size          int      `json:"size"`
	TotalElements int64    `json:"totalElements"`
	TotalPages    int      `json:"totalPages"`
}

// NewRecipePage assembles the page envelope from the fetched content and the
// total number of matching recipes.
func NewRecipePage(content []Recipe, page PageRequest, total int64) *RecipePage {
	if content == nil {
		content = []Recipe{}
	}
	totalPages := 0
	if page.Size > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}
	return &RecipePage{
		Content:       content,
		Empty:         len(content) == 0,
		First:         page.Number == 0,
		Last:          page.Number >= totalPages-1,
		Number:        page.Number,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

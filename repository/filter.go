package repository

import (
	"strings"

	"github.com/Kabelo-07/recipe-service/entity"
	"github.com/Kabelo-07/recipe-service/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Clause is one optional filter condition over the recipe collection.
// Clauses compose by AND; an empty clause set matches every recipe.
type Clause func(*gorm.DB) *gorm.DB

// RecipeFilter accumulates the optional listing filters into clauses. Each
// With* method contributes a clause only when its input is usable; absent or
// out-of-range inputs are ignored rather than rejected.
type RecipeFilter struct {
	clauses []Clause
}

func NewRecipeFilter() *RecipeFilter {
	return &RecipeFilter{}
}

// WithRecipeID adds an exact-match clause on the recipe id.
func (f *RecipeFilter) WithRecipeID(id uuid.UUID) *RecipeFilter {
	if id != uuid.Nil {
		f.clauses = append(f.clauses, func(db *gorm.DB) *gorm.DB {
			return db.Where("recipe.id = ?", id)
		})
	}
	return f
}

// WithServings adds an exact-match clause on the number of servings.
// Non-positive values contribute no clause.
func (f *RecipeFilter) WithServings(servings int) *RecipeFilter {
	if servings > 0 {
		f.clauses = append(f.clauses, func(db *gorm.DB) *gorm.DB {
			return db.Where("recipe.number_of_servings = ?", servings)
		})
	}
	return f
}

// WithIncludedIngredients adds, per substring, a clause requiring some
// ingredient whose description contains it case-insensitively. The matching
// ingredient may differ per substring.
func (f *RecipeFilter) WithIncludedIngredients(substrings []string) *RecipeFilter {
	for _, s := range substrings {
		if !util.IsBlank(s) {
			f.clauses = append(f.clauses, ingredientContains(s, false))
		}
	}
	return f
}

// WithExcludedIngredients adds, per substring, a clause requiring that no
// ingredient's description contains it case-insensitively.
func (f *RecipeFilter) WithExcludedIngredients(substrings []string) *RecipeFilter {
	for _, s := range substrings {
		if !util.IsBlank(s) {
			f.clauses = append(f.clauses, ingredientContains(s, true))
		}
	}
	return f
}

// WithInstructions adds, per substring, a clause requiring some instruction
// whose description contains it case-insensitively.
func (f *RecipeFilter) WithInstructions(substrings []string) *RecipeFilter {
	for _, s := range substrings {
		if util.IsBlank(s) {
			continue
		}
		pattern := containsPattern(s)
		f.clauses = append(f.clauses, func(db *gorm.DB) *gorm.DB {
			return db.Where("EXISTS (SELECT 1 FROM recipe_instructions ri"+
				" WHERE ri.recipe_id = recipe.id AND LOWER(ri.description) LIKE ?)", pattern)
		})
	}
	return f
}

// WithCategory adds an exact-match clause on the meal category.
func (f *RecipeFilter) WithCategory(category entity.Category) *RecipeFilter {
	if category.Valid() {
		f.clauses = append(f.clauses, func(db *gorm.DB) *gorm.DB {
			return db.Where("recipe.category = ?", string(category))
		})
	}
	return f
}

// Build folds the collected clauses into one conjunctive predicate.
func (f *RecipeFilter) Build() Clause {
	clauses := f.clauses
	return func(db *gorm.DB) *gorm.DB {
		for _, clause := range clauses {
			db = clause(db)
		}
		return db
	}
}

// ingredientContains matches via a correlated subquery per substring so that
// each clause is satisfied independently of the rows matching the others.
func ingredientContains(substring string, exclude bool) Clause {
	operator := "EXISTS"
	if exclude {
		operator = "NOT EXISTS"
	}
	pattern := containsPattern(substring)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(operator+" (SELECT 1 FROM recipe_ingredients ri"+
			" WHERE ri.recipe_id = recipe.id AND LOWER(ri.description) LIKE ?)", pattern)
	}
}

func containsPattern(substring string) string {
	return "%" + strings.ToLower(strings.TrimSpace(substring)) + "%"
}

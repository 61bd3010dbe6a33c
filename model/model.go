package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit holds the shared audit columns. Recipe embeds it instead of the
// entities sharing a base type; version backs the optimistic-concurrency
// guard in the repository.
type Audit struct {
	CreatedDate time.Time `gorm:"column:created_date;autoCreateTime" json:"created_date"`
	UpdatedDate time.Time `gorm:"column:updated_date;autoUpdateTime" json:"updated_date"`
	Version     int64     `gorm:"column:version" json:"-"`
}

// Recipe is the persisted recipe aggregate root. Child rows are exclusively
// owned: removing one from the slice and saving deletes it, deleting the
// recipe deletes all of them.
type Recipe struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Category        string    `gorm:"size:32;not null;column:category" json:"category"`
	Servings        int       `gorm:"not null;column:number_of_servings" json:"servings"`
	PreparationTime int       `gorm:"not null;column:preparation_time" json:"preparation_time"`
	CookingTime     int       `gorm:"not null;column:cooking_time" json:"cooking_time"`
	Audit

	Ingredients  []Ingredient  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Instructions []Instruction `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"instructions"`
}

func (Recipe) TableName() string { return "recipe" }

// Ingredient is one persisted recipe ingredient. Description is stored in
// canonical form and must be unique per recipe.
type Ingredient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_ingredient_recipe_id_description" json:"recipe_id"`
	Description string    `gorm:"size:255;not null;uniqueIndex:uq_ingredient_recipe_id_description" json:"description"`
}

func (Ingredient) TableName() string { return "recipe_ingredients" }

// Instruction is one persisted recipe instruction. Both the step and the
// description must be unique per recipe.
type Instruction struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_instruction_recipe_id_step;uniqueIndex:uq_instruction_recipe_id_description" json:"recipe_id"`
	Description         string    `gorm:"size:255;not null;uniqueIndex:uq_instruction_recipe_id_description" json:"description"`
	DetailedDescription string    `gorm:"column:detail_description" json:"detailed_description"`
	Step                int       `gorm:"not null;uniqueIndex:uq_instruction_recipe_id_step" json:"step"`
}

func (Instruction) TableName() string { return "recipe_instructions" }

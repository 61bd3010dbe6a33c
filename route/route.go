package route

import (
	"github.com/Kabelo-07/recipe-service/controller"
	"github.com/Kabelo-07/recipe-service/handler"
	"github.com/Kabelo-07/recipe-service/middleware"
	"github.com/Kabelo-07/recipe-service/model"
	"github.com/Kabelo-07/recipe-service/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes migrates the schema and wires the recipe endpoints.
func SetupRoutes(r *gin.Engine, gormDbInstance *gorm.DB) error {
	if err := gormDbInstance.AutoMigrate(
		&model.Recipe{},
		&model.Ingredient{},
		&model.Instruction{},
	); err != nil {
		return err
	}

	recipeRepository := repository.NewRecipeRepository(gormDbInstance)
	recipeController := controller.NewRecipeController(recipeRepository)
	recipeHandler := handler.NewRecipeHandler(recipeController)

	r.Use(middleware.RequestLogger())

	recipes := r.Group("/recipes")
	recipes.POST("", recipeHandler.Create)
	recipes.GET("", recipeHandler.FindAll)
	recipes.GET("/:recipeId", recipeHandler.Find)
	recipes.PUT("/:recipeId", recipeHandler.Update)
	recipes.DELETE("/:recipeId", recipeHandler.Delete)

	recipes.POST("/:recipeId/ingredients", recipeHandler.AddIngredients)
	recipes.PUT("/:recipeId/ingredients", recipeHandler.UpdateIngredients)
	recipes.DELETE("/:recipeId/ingredients", recipeHandler.DeleteIngredients)

	recipes.POST("/:recipeId/instructions", recipeHandler.AddInstructions)
	recipes.PUT("/:recipeId/instructions", recipeHandler.UpdateInstructions)
	recipes.DELETE("/:recipeId/instructions", recipeHandler.DeleteInstructions)

	return nil
}

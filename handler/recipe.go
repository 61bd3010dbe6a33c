package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Kabelo-07/recipe-service/controller"
	"github.com/Kabelo-07/recipe-service/entity"
	"github.com/Kabelo-07/recipe-service/logger"
	"github.com/Kabelo-07/recipe-service/repository"
	"github.com/Kabelo-07/recipe-service/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecipeHandler interface {
	Create(c *gin.Context)
	Update(c *gin.Context)
	Find(c *gin.Context)
	FindAll(c *gin.Context)
	Delete(c *gin.Context)

	AddIngredients(c *gin.Context)
	UpdateIngredients(c *gin.Context)
	DeleteIngredients(c *gin.Context)

	AddInstructions(c *gin.Context)
	UpdateInstructions(c *gin.Context)
	DeleteInstructions(c *gin.Context)
}

type recipeHandler struct {
	recipeController controller.RecipeController
}

func NewRecipeHandler(recipeController controller.RecipeController) RecipeHandler {
	return &recipeHandler{
		recipeController: recipeController,
	}
}

// errorResponse is the caller-facing error envelope.
type errorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Create handles POST /recipes
func (h *recipeHandler) Create(c *gin.Context) {
	var dto entity.CreateRecipe
	if err := c.ShouldBindJSON(&dto); err != nil {
		writeBindError(c, err)
		return
	}
	recipe, err := h.recipeController.Create(c.Request.Context(), dto)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// Update handles PUT /recipes/:recipeId
func (h *recipeHandler) Update(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var patch entity.RecipePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeBindError(c, err)
		return
	}
	recipe, err := h.recipeController.Update(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Find handles GET /recipes/:recipeId
func (h *recipeHandler) Find(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	recipe, err := h.recipeController.FindByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// FindAll handles GET /recipes with the optional filter parameters.
func (h *recipeHandler) FindAll(c *gin.Context) {
	filter := repository.NewRecipeFilter().
		WithIncludedIngredients(util.SplitCSV(c.QueryArray("withIngredients"))).
		WithExcludedIngredients(util.SplitCSV(c.QueryArray("excludeIngredients"))).
		WithInstructions(util.SplitCSV(c.QueryArray("instructions")))

	if raw := c.Query("recipeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Message: "recipeId must be a valid uuid"})
			return
		}
		filter.WithRecipeID(id)
	}
	if raw := c.Query("servings"); raw != "" {
		servings, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Message: "servings must be an integer"})
			return
		}
		filter.WithServings(servings)
	}
	if raw := c.Query("category"); raw != "" {
		category, err := entity.ParseCategory(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
			return
		}
		filter.WithCategory(category)
	}

	page, ok := pageRequest(c)
	if !ok {
		return
	}

	recipes, err := h.recipeController.FindAll(c.Request.Context(), filter, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Delete handles DELETE /recipes/:recipeId
func (h *recipeHandler) Delete(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	if err := h.recipeController.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddIngredients handles POST /recipes/:recipeId/ingredients
func (h *recipeHandler) AddIngredients(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var payload []entity.IngredientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBindError(c, err)
		return
	}
	recipe, err := h.recipeController.AddIngredients(c.Request.Context(), id, payload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// UpdateIngredients handles PUT /recipes/:recipeId/ingredients
func (h *recipeHandler) UpdateIngredients(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var patches []entity.IngredientPatch
	if err := c.ShouldBindJSON(&patches); err != nil {
		writeBindError(c, err)
		return
	}
	recipe, err := h.recipeController.UpdateIngredients(c.Request.Context(), id, patches)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteIngredients handles DELETE /recipes/:recipeId/ingredients
func (h *recipeHandler) DeleteIngredients(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	ids, ok := childIDs(c)
	if !ok {
		return
	}
	if err := h.recipeController.DeleteIngredients(c.Request.Context(), id, ids); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddInstructions handles POST /recipes/:recipeId/instructions
func (h *recipeHandler) AddInstructions(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var payload []entity.InstructionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeBindError(c, err)
		return
	}
	recipe, err := h.recipeController.AddInstructions(c.Request.Context(), id, payload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// UpdateInstructions handles PUT /recipes/:recipeId/instructions
func (h *recipeHandler) UpdateInstructions(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	var patches []entity.InstructionPatch
	if err := c.ShouldBindJSON(&patches); err != nil {
		writeBindError(c, err)
		return
	}
	recipe, err := h.recipeController.UpdateInstructions(c.Request.Context(), id, patches)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteInstructions handles DELETE /recipes/:recipeId/instructions
func (h *recipeHandler) DeleteInstructions(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	ids, ok := childIDs(c)
	if !ok {
		return
	}
	if err := h.recipeController.DeleteInstructions(c.Request.Context(), id, ids); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("recipeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "recipeId must be a valid uuid"})
		return uuid.Nil, false
	}
	return id, true
}

func childIDs(c *gin.Context) ([]uuid.UUID, bool) {
	var ids []uuid.UUID
	if err := c.ShouldBindJSON(&ids); err != nil {
		writeBindError(c, err)
		return nil, false
	}
	return ids, true
}

// writeBindError aggregates structural validation failures into field-level
// messages.
func writeBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages, fieldError.Field()+": "+fieldError.Tag())
		}
		c.JSON(http.StatusBadRequest, errorResponse{Message: "Invalid request sent", Errors: messages})
		return
	}
	c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
}

// writeError maps each business failure kind to exactly one status code.
func writeError(c *gin.Context, err error) {
	var appErr *entity.Error
	if !errors.As(err, &appErr) {
		logger.Error("unclassified failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Message: err.Error()})
		return
	}

	switch appErr.Kind {
	case entity.KindNotFound:
		c.JSON(http.StatusNotFound, errorResponse{Message: appErr.Message})
	case entity.KindConflict:
		c.JSON(http.StatusConflict, errorResponse{Message: appErr.Message})
	case entity.KindInvalidRequest:
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Message: appErr.Message})
	case entity.KindInvalidCreation:
		c.JSON(http.StatusBadRequest, errorResponse{Message: appErr.Message})
	case entity.KindValidation:
		c.JSON(http.StatusBadRequest, errorResponse{Message: appErr.Message, Errors: appErr.Fields})
	default:
		logger.Error("unclassified failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Message: appErr.Message})
	}
}

func pageRequest(c *gin.Context) (entity.PageRequest, bool) {
	number, err := strconv.Atoi(c.DefaultQuery("pageNumber", strconv.Itoa(entity.DefaultPageNumber)))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "pageNumber must be an integer"})
		return entity.PageRequest{}, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(entity.DefaultPageSize)))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: "pageSize must be an integer"})
		return entity.PageRequest{}, false
	}
	return entity.PageRequest{Number: number, Size: size}.Normalized(), true
}

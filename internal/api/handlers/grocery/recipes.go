package grocery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	recipecore "grocery-manager/internal/core/recipe"
	"grocery-manager/internal/pkg/common"
)

type generateRecipeRequest struct {
	Ingredients []string                   `json:"ingredients"`
	Options     recipecore.GenerateOptions `json:"options"`
}

// GenerateRecipe runs the recipe-generation pipeline and returns the draft.
func (h *Handler) GenerateRecipe(c *gin.Context) {
	var req generateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("Invalid request body."))
		return
	}

	draft, err := h.recipes.Generate(c.Request.Context(), req.Ingredients, req.Options)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SaveRecipe saves the currently held draft as a new recipe.
func (h *Handler) SaveRecipe(c *gin.Context) {
	rec, err := h.recipes.Save(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ListRecipes returns the saved recipes, newest first.
func (h *Handler) ListRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"recipes": h.recipes.List()})
}

// DeleteRecipe removes a saved recipe by id, a no-op when absent.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	h.recipes.Delete(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// AddMissingIngredients scans a saved recipe against both lists and appends
// the uncovered ingredients to the shopping list.
func (h *Handler) AddMissingIngredients(c *gin.Context) {
	rec, ok := h.recipes.Get(c.Param("id"))
	if !ok {
		respondError(c, common.NewError(common.ErrCodeNotFound, "Recipe not found.", http.StatusNotFound, nil))
		return
	}

	missing := recipecore.FindMissing(*rec, h.reconciler.InHouse(), h.reconciler.Shopping())
	items := recipecore.MissingToItems(missing)
	h.reconciler.AppendShopping(c.Request.Context(), items)

	c.JSON(http.StatusOK, gin.H{"added": items})
}

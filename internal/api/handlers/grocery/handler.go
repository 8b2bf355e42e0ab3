package grocery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	grocerycore "grocery-manager/internal/core/grocery"
	"grocery-manager/internal/core/importer"
	recipecore "grocery-manager/internal/core/recipe"
	"grocery-manager/internal/infrastructure/store"
	"grocery-manager/internal/pkg/common"
)

// Handler serves the grocery API: the two lists, saved recipes, the import
// sessions and the generation pipeline.
type Handler struct {
	reconciler *grocerycore.Reconciler
	recipes    *recipecore.Service
	imports    *importer.Manager
	repo       store.Repository
}

// NewHandler creates the API handler.
func NewHandler(reconciler *grocerycore.Reconciler, recipes *recipecore.Service, imports *importer.Manager, repo store.Repository) *Handler {
	return &Handler{
		reconciler: reconciler,
		recipes:    recipes,
		imports:    imports,
		repo:       repo,
	}
}

// RegisterRoutes mounts all grocery API routes on the given group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/catalog", h.GetCatalog)
	api.GET("/lists", h.GetLists)
	api.POST("/lists/:list/items", h.AddItem)
	api.DELETE("/lists/:list/items/:id", h.DeleteItem)
	api.POST("/lists/:list/reorder", h.Reorder)

	api.POST("/items/:id/move-to-shopping", h.MoveToShopping)
	api.POST("/items/:id/move-to-in-house", h.MoveToInHouse)
	api.PUT("/items/:id/quantity", h.UpdateQuantity)

	api.POST("/imports", h.CreateImport)
	api.POST("/imports/:id/toggle", h.ToggleImport)
	api.POST("/imports/:id/confirm", h.ConfirmImport)
	api.DELETE("/imports/:id", h.CancelImport)

	api.POST("/recipes/generate", h.GenerateRecipe)
	api.POST("/recipes", h.SaveRecipe)
	api.GET("/recipes", h.ListRecipes)
	api.DELETE("/recipes/:id", h.DeleteRecipe)
	api.POST("/recipes/:id/missing", h.AddMissingIngredients)

	api.POST("/profile", h.SwitchProfile)
}

// GetCatalog returns the fixed seed catalog.
func (h *Handler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": grocerycore.StandardItems()})
}

// listsResponse is the GET /lists body.
type listsResponse struct {
	InHouse  []grocerycore.GroceryItem `json:"inHouse"`
	Shopping []grocerycore.GroceryItem `json:"shopping"`
}

// GetLists returns both reconciled lists.
func (h *Handler) GetLists(c *gin.Context) {
	c.JSON(http.StatusOK, listsResponse{
		InHouse:  h.reconciler.InHouse(),
		Shopping: h.reconciler.Shopping(),
	})
}

type addItemRequest struct {
	Name     string               `json:"name"`
	Category string               `json:"category"`
	Quantity *grocerycore.Quantity `json:"quantity,omitempty"`
}

// AddItem prepends a one-time item to the named list.
func (h *Handler) AddItem(c *gin.Context) {
	list, ok := grocerycore.ParseList(c.Param("list"))
	if !ok {
		respondError(c, common.NewValidationError("Unknown list: "+c.Param("list")))
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("Invalid request body."))
		return
	}
	if req.Name == "" {
		respondError(c, common.NewValidationError("Item name is required."))
		return
	}
	category, ok := grocerycore.ParseCategory(req.Category)
	if !ok {
		respondError(c, common.NewValidationError("Unknown category: "+req.Category))
		return
	}
	if req.Quantity != nil && !req.Quantity.Unit.Valid() {
		respondError(c, common.NewValidationError("Unknown unit: "+string(req.Quantity.Unit)))
		return
	}

	item := h.reconciler.AddItem(c.Request.Context(), list, req.Name, category, req.Quantity)
	c.JSON(http.StatusCreated, item)
}

// DeleteItem removes an item by id, a no-op when absent.
func (h *Handler) DeleteItem(c *gin.Context) {
	list, ok := grocerycore.ParseList(c.Param("list"))
	if !ok {
		respondError(c, common.NewValidationError("Unknown list: "+c.Param("list")))
		return
	}

	h.reconciler.DeleteItem(c.Request.Context(), list, c.Param("id"))
	c.Status(http.StatusNoContent)
}

type reorderRequest struct {
	DraggedID string `json:"draggedId"`
	TargetID  string `json:"targetId"`
}

// Reorder moves the dragged item into the target's slot.
func (h *Handler) Reorder(c *gin.Context) {
	list, ok := grocerycore.ParseList(c.Param("list"))
	if !ok {
		respondError(c, common.NewValidationError("Unknown list: "+c.Param("list")))
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("Invalid request body."))
		return
	}

	h.reconciler.Reorder(c.Request.Context(), list, req.DraggedID, req.TargetID)
	c.Status(http.StatusNoContent)
}

// MoveToShopping moves an in-house item onto the shopping list, clearing its
// quantity.
func (h *Handler) MoveToShopping(c *gin.Context) {
	h.reconciler.MoveToShoppingList(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// MoveToInHouse removes a shopping item; catalog staples return to in-house
// with a default quantity, one-time items are dropped.
func (h *Handler) MoveToInHouse(c *gin.Context) {
	h.reconciler.MoveToInHouse(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// UpdateQuantity replaces an in-house item's quantity.
func (h *Handler) UpdateQuantity(c *gin.Context) {
	var req grocerycore.Quantity
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("Invalid request body."))
		return
	}

	h.reconciler.UpdateQuantity(c.Request.Context(), c.Param("id"), req)
	c.Status(http.StatusNoContent)
}

// respondError maps the error taxonomy to HTTP: validation errors surface
// inline as 400, coded errors keep their status, anything else is treated as
// a text-generation service failure.
func respondError(c *gin.Context, err error) {
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	if custom, ok := err.(*common.CustomError); ok {
		c.JSON(custom.Status, common.ErrorResponse{
			Code:    custom.Code,
			Message: custom.Message,
		})
		return
	}

	c.JSON(common.ErrAIServiceError.Status, common.ErrorResponse{
		Code:    common.ErrAIServiceError.Code,
		Message: err.Error(),
	})
}

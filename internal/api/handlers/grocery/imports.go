package grocery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grocery-manager/internal/pkg/common"
)

type createImportRequest struct {
	RecipeText string `json:"recipeText"`
	Servings   int    `json:"servings"`
}

// CreateImport opens an import session and runs its generation step. The
// response carries the session in Ready or Failed state; a service failure is
// part of the session, not an HTTP error.
func (h *Handler) CreateImport(c *gin.Context) {
	var req createImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("Invalid request body."))
		return
	}

	created := h.imports.Create()
	s, err := h.imports.Submit(c.Request.Context(), created.ID, req.RecipeText, req.Servings)
	if err != nil {
		h.imports.Close(created.ID)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

type toggleImportRequest struct {
	Name string `json:"name"`
}

// ToggleImport flips the checked state of one checklist row.
func (h *Handler) ToggleImport(c *gin.Context) {
	var req toggleImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("Invalid request body."))
		return
	}

	s, err := h.imports.Toggle(c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// ConfirmImport adds the checked rows to the shopping list and discards the
// session.
func (h *Handler) ConfirmImport(c *gin.Context) {
	added, err := h.imports.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// CancelImport discards the session without touching any list.
func (h *Handler) CancelImport(c *gin.Context) {
	h.imports.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}

package grocery

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"grocery-manager/internal/pkg/common"
)

type switchProfileRequest struct {
	Profile string `json:"profile"`
}

// SwitchProfile repoints the repository at another profile and reloads the
// lists and saved recipes from it. In-flight import sessions are unaffected;
// their confirm step lands on the active profile.
func (h *Handler) SwitchProfile(c *gin.Context) {
	var req switchProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.NewValidationError("Invalid request body."))
		return
	}

	profile := strings.TrimSpace(req.Profile)
	if profile == "" {
		respondError(c, common.NewValidationError("Profile name is required."))
		return
	}

	ctx := c.Request.Context()
	h.repo.SwitchProfile(profile)
	h.reconciler.Reset(h.repo.LoadInHouse(ctx), h.repo.LoadShopping(ctx))
	h.recipes.Reset(h.repo.LoadRecipes(ctx))

	common.LogInfo("switched profile", zap.String("profile", profile))
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

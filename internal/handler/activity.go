package handler

import (
	"net/http"
	"strconv"
	"time"

	"stallpos/internal/dto"
	"stallpos/internal/repository"

	"github.com/gin-gonic/gin"
)

// ActivityHandler reads the audit trail and the kitchen ledger. Pure reads
// over repositories; there is nothing to orchestrate.
type ActivityHandler struct {
	activity repository.ActivityLogRepository
	ledger   repository.LedgerRepository
}

func NewActivityHandler(activity repository.ActivityLogRepository, ledger repository.LedgerRepository) *ActivityHandler {
	return &ActivityHandler{activity: activity, ledger: ledger}
}

// ListActivity returns recent activity log rows, optionally filtered by category.
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := h.activity.List(c.Request.Context(), c.Query("category"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": logs})
}

// ListCookingLogs returns recent batch cooking ledger rows with their
// ingredient usages.
func (h *ActivityHandler) ListCookingLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := h.ledger.ListCookingLogs(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	type cookingLogItem struct {
		ID               string                   `json:"id"`
		BatchID          string                   `json:"batch_id"`
		RecipeID         string                   `json:"recipe_id"`
		OutputName       string                   `json:"output_name"`
		QuantityProduced string                   `json:"quantity_produced"`
		Unit             string                   `json:"unit"`
		Multiplier       string                   `json:"multiplier"`
		ExpiresAt        string                   `json:"expires_at"`
		Actor            string                   `json:"actor"`
		CreatedAt        string                   `json:"created_at"`
		IngredientsUsed  []dto.IngredientUsageDTO `json:"ingredients_used"`
	}

	items := make([]cookingLogItem, 0, len(logs))
	for _, l := range logs {
		usages := make([]dto.IngredientUsageDTO, 0, len(l.IngredientsUsed))
		for _, u := range l.IngredientsUsed {
			usages = append(usages, dto.IngredientUsageDTO{
				IngredientType: u.IngredientType,
				IngredientID:   u.IngredientID.String(),
				IngredientName: u.IngredientName,
				Quantity:       u.Quantity,
				Unit:           u.Unit,
			})
		}
		items = append(items, cookingLogItem{
			ID:               l.ID.String(),
			BatchID:          l.BatchID,
			RecipeID:         l.RecipeID.String(),
			OutputName:       l.OutputName,
			QuantityProduced: l.QuantityProduced.String(),
			Unit:             l.Unit,
			Multiplier:       l.Multiplier.String(),
			ExpiresAt:        l.ExpiresAt.Format(time.RFC3339),
			Actor:            l.Actor,
			CreatedAt:        l.CreatedAt.Format(time.RFC3339),
			IngredientsUsed:  usages,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

package handler

import (
	"net/http"

	"stallpos/internal/service"

	"github.com/gin-gonic/gin"
)

type AlertsHandler struct{ svc *service.AlertService }

func NewAlertsHandler(svc *service.AlertService) *AlertsHandler { return &AlertsHandler{svc: svc} }

// GetAlerts returns current low-stock SKUs and ingredients at reorder level.
func (h *AlertsHandler) GetAlerts(c *gin.Context) {
	resp, err := h.svc.GetAlerts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/netsentinel/internal/services"
)

type PredictionsHandler struct {
	predictions *services.PredictionsService
}

func NewPredictionsHandler(predictions *services.PredictionsService) *PredictionsHandler {
	return &PredictionsHandler{predictions: predictions}
}

// GetPredictions отдаёт тело ответа сервиса предсказаний без изменений
func (h *PredictionsHandler) GetPredictions(c *gin.Context) {
	raw, err := h.predictions.LatestPredictions(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err, func(c *gin.Context, status int, _ string) {
			c.String(status, "Error fetching predictions")
		})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

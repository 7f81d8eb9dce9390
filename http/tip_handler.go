package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tip-advisor/domain"
	"tip-advisor/service"
)

// Los montos llegan como texto, igual que en los campos de la app
type calculateTipRequest struct {
	BillAmount string `json:"bill_amount"`
	TipPercent string `json:"tip_percent"`
}

type TipHandler struct {
	service *service.TipService
}

func NewTipHandler(service *service.TipService) *TipHandler {
	return &TipHandler{service: service}
}

// CalculateTip never rejects unparsable amounts; they count as zero.
func (h *TipHandler) CalculateTip(c *gin.Context) {
	var req calculateTipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.service.CalculateFromText(req.BillAmount, req.TipPercent))
}

func (h *TipHandler) Legend(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service_qualities": domain.ServiceQualities,
		"legend":            domain.TipLegend,
	})
}

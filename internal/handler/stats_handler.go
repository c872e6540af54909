package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusbites/campusbites-api/internal/service"
)

type StatsHandler struct {
	svc *service.StatsService
}

func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) Sales(c *gin.Context) {
	topN, _ := strconv.Atoi(c.DefaultQuery("top", "5"))

	report, err := h.svc.SalesReport(c.Request.Context(), topN)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, report)
}

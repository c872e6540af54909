package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbites/campusbites-api/internal/dto"
	"github.com/campusbites/campusbites-api/internal/middleware"
	"github.com/campusbites/campusbites-api/internal/service"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	params := dto.ParsePagination(c)

	orders, total, err := h.svc.List(c.Request.Context(), userID, params.PageSize, params.Offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderListResponse{
		Orders:     orders,
		Pagination: dto.NewPagination(params.Page, params.PageSize, total),
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	order, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, order)
}

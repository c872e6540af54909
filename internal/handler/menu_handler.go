package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbites/campusbites-api/internal/dto"
	"github.com/campusbites/campusbites-api/internal/service"
)

type MenuHandler struct {
	svc *service.MenuService
}

func NewMenuHandler(svc *service.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

func (h *MenuHandler) List(c *gin.Context) {
	params := dto.ParsePagination(c)
	category := c.Query("category")

	items, total, err := h.svc.List(c.Request.Context(), category, params.PageSize, params.Offset)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.MenuListResponse{
		Items:      items,
		Pagination: dto.NewPagination(params.Page, params.PageSize, total),
	})
}

func (h *MenuHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, item)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbites/campusbites-api/internal/dto"
	"github.com/campusbites/campusbites-api/internal/middleware"
	"github.com/campusbites/campusbites-api/internal/service"
)

type CartHandler struct {
	svc *service.CartService
}

func NewCartHandler(svc *service.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) Get(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	lines, subtotal, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.CartResponse{Lines: lines, Subtotal: subtotal})
}

func (h *CartHandler) Add(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	if err := h.svc.AddItem(c.Request.Context(), userID, req.MenuItemID, req.Quantity); err != nil {
		if service.IsValidation(err) || errors.Is(err, service.ErrItemUnavailable) {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "item added to cart"})
}

func (h *CartHandler) Update(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	if err := h.svc.SetQuantity(c.Request.Context(), userID, c.Param("itemID"), req.Quantity); err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "cart updated"})
}

func (h *CartHandler) Remove(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := h.svc.RemoveItem(c.Request.Context(), userID, c.Param("itemID")); err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "item removed"})
}

func (h *CartHandler) Clear(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := h.svc.Clear(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "cart cleared"})
}

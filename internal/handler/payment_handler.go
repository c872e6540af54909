package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbites/campusbites-api/internal/dto"
	"github.com/campusbites/campusbites-api/internal/middleware"
	"github.com/campusbites/campusbites-api/internal/payment"
	"github.com/campusbites/campusbites-api/internal/service"
)

type PaymentHandler struct {
	checkoutSvc *service.CheckoutService
}

func NewPaymentHandler(checkoutSvc *service.CheckoutService) *PaymentHandler {
	return &PaymentHandler{checkoutSvc: checkoutSvc}
}

// Methods returns the fixed payment method catalog.
func (h *PaymentHandler) Methods(c *gin.Context) {
	c.JSON(http.StatusOK, dto.PaymentMethodsResponse{Methods: payment.Methods()})
}

func (h *PaymentHandler) Checkout(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	result, err := h.checkoutSvc.Checkout(c.Request.Context(), userID, req.PaymentMethodID)
	if err != nil {
		var declined *service.PaymentDeclinedError
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
		case errors.As(err, &declined):
			// The gateway message goes back verbatim for the retry prompt.
			c.JSON(http.StatusPaymentRequired, dto.ErrorListResponse{Error: declined.Message})
		default:
			c.Error(err)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		Order:   result.Order,
		Receipt: result.Receipt,
	})
}

func (h *PaymentHandler) Receipt(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	receipt, err := h.checkoutSvc.Receipt(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotPaid) {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

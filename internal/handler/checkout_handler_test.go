package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbites/campusbites-api/internal/dto"
	"github.com/campusbites/campusbites-api/internal/model"
	"github.com/campusbites/campusbites-api/internal/payment"
)

func TestPaymentHandler_Methods(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	router, _ := setupApp(t, payment.Options{Rand: func() float64 { return 0.9 }})

	w := doJSON(t, router, "GET", "/api/v1/payments/methods", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.PaymentMethodsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Methods, 4)
}

func TestPaymentHandler_Checkout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	router, pool := setupApp(t, payment.Options{Rand: func() float64 { return 0.9 }})
	token := registerAndLogin(t, router, pool, "checkout@student.edu")

	var menuItemID string
	var menuPrice float64
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT id, price FROM menu_items WHERE name = 'Veg Thali'`).Scan(&menuItemID, &menuPrice))

	t.Run("bad: empty cart cannot check out", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/checkout", token, dto.CheckoutRequest{PaymentMethodID: "upi"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "cart is empty")
	})

	t.Run("bad: unknown payment method rejected by binding", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/checkout", token, dto.CheckoutRequest{PaymentMethodID: "cheque"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("happy: checkout pays, receipts and clears the cart", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/cart", token, dto.AddCartItemRequest{
			MenuItemID: menuItemID, Quantity: 2,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, router, "POST", "/api/v1/checkout", token, dto.CheckoutRequest{PaymentMethodID: "upi"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp dto.CheckoutResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		subtotal := menuPrice * 2
		assert.Equal(t, model.OrderStatusPaid, resp.Order.Status)
		assert.InDelta(t, subtotal, resp.Order.Subtotal, 1e-9)
		assert.Regexp(t, `^pay_\d+_[a-z0-9]+$`, resp.Order.PaymentID)

		assert.Regexp(t, `^RCP_\d+$`, resp.Receipt.ReceiptID)
		assert.InDelta(t, subtotal, resp.Receipt.Subtotal, 1e-9)
		assert.InDelta(t, resp.Receipt.Subtotal+resp.Receipt.Tax, resp.Receipt.Amount, 1e-9)
		assert.Equal(t, "paid", resp.Receipt.Status)
		assert.Equal(t, resp.Order.PaymentID, resp.Receipt.PaymentID)
		require.Len(t, resp.Receipt.Items, 1)
		assert.Equal(t, "Veg Thali", resp.Receipt.Items[0].Name)
		assert.Equal(t, 2, resp.Receipt.Items[0].Quantity)

		// Cart is cleared after a successful payment.
		var cart dto.CartResponse
		w = doJSON(t, router, "GET", "/api/v1/cart", token, nil)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
		assert.Empty(t, cart.Lines)

		// Receipt endpoint rebuilds the same totals.
		w = doJSON(t, router, "GET", "/api/v1/orders/"+resp.Order.ID+"/receipt", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var again payment.Receipt
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
		assert.InDelta(t, resp.Receipt.Amount, again.Amount, 1e-9)
		assert.Equal(t, resp.Receipt.PaymentID, again.PaymentID)
	})

	t.Run("happy: order appears in history", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/v1/orders", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.OrderListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Orders)
		assert.Equal(t, model.OrderStatusPaid, resp.Orders[0].Status)
	})
}

func TestPaymentHandler_CheckoutDeclined(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	// Rand at 0.05 forces the decline branch on every attempt.
	router, pool := setupApp(t, payment.Options{Rand: func() float64 { return 0.05 }})
	token := registerAndLogin(t, router, pool, "declined@student.edu")

	var menuItemID string
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT id FROM menu_items WHERE name = 'Samosa'`).Scan(&menuItemID))

	w := doJSON(t, router, "POST", "/api/v1/cart", token, dto.AddCartItemRequest{
		MenuItemID: menuItemID, Quantity: 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/api/v1/checkout", token, dto.CheckoutRequest{PaymentMethodID: "card"})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp dto.ErrorListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Payment failed. Please try again.", resp.Error)

	// The failed attempt is recorded and the cart survives for a retry.
	var status string
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT status FROM orders ORDER BY created_at DESC LIMIT 1`).Scan(&status))
	assert.Equal(t, model.OrderStatusFailed, status)

	var cart dto.CartResponse
	w = doJSON(t, router, "GET", "/api/v1/cart", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Len(t, cart.Lines, 1)

	// A FAILED order has no receipt.
	var orderID string
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT id FROM orders ORDER BY created_at DESC LIMIT 1`).Scan(&orderID))
	w = doJSON(t, router, "GET", "/api/v1/orders/"+orderID+"/receipt", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsHandler_Sales(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	router, pool := setupApp(t, payment.Options{Rand: func() float64 { return 0.9 }})
	token := registerAndLogin(t, router, pool, "stats@student.edu")

	var menuItemID string
	require.NoError(t, pool.QueryRow(context.Background(),
		`SELECT id FROM menu_items WHERE name = 'Masala Chai'`).Scan(&menuItemID))

	w := doJSON(t, router, "POST", "/api/v1/cart", token, dto.AddCartItemRequest{
		MenuItemID: menuItemID, Quantity: 4,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, "POST", "/api/v1/checkout", token, dto.CheckoutRequest{PaymentMethodID: "wallet"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "GET", "/api/v1/stats/sales", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var report struct {
		Summary struct {
			TotalOrders int     `json:"total_orders"`
			PaidOrders  int     `json:"paid_orders"`
			GrossSales  float64 `json:"gross_sales"`
			PaymentRate float64 `json:"payment_success_rate"`
		} `json:"summary"`
		TopItems []struct {
			Name     string `json:"name"`
			Quantity int    `json:"quantity"`
		} `json:"top_items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.GreaterOrEqual(t, report.Summary.PaidOrders, 1)
	assert.Greater(t, report.Summary.GrossSales, 0.0)
	require.NotEmpty(t, report.TopItems)
	assert.Equal(t, "Masala Chai", report.TopItems[0].Name)
	assert.Equal(t, 4, report.TopItems[0].Quantity)
}

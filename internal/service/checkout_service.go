package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/campusbites/campusbites-api/internal/model"
	"github.com/campusbites/campusbites-api/internal/payment"
	"github.com/campusbites/campusbites-api/internal/repository"
)

type CheckoutService struct {
	cartRepo      *repository.CartRepository
	orderRepo     *repository.OrderRepository
	userRepo      *repository.UserRepository
	processor     *payment.Processor
	receiptMailer *ReceiptMailer
}

func NewCheckoutService(
	cartRepo *repository.CartRepository,
	orderRepo *repository.OrderRepository,
	userRepo *repository.UserRepository,
	processor *payment.Processor,
	receiptMailer *ReceiptMailer,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:      cartRepo,
		orderRepo:     orderRepo,
		userRepo:      userRepo,
		processor:     processor,
		receiptMailer: receiptMailer,
	}
}

type CheckoutResult struct {
	Order   model.Order
	Receipt payment.Receipt
}

// Checkout turns the user's cart into an order, charges it through the
// payment processor and, on success, derives a receipt and clears the
// cart. A declined payment leaves the order recorded as FAILED and the
// cart untouched so the customer can retry.
func (s *CheckoutService) Checkout(ctx context.Context, userID, methodID string) (*CheckoutResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	lines, err := s.cartRepo.Lines(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	var subtotal float64
	items := make([]model.OrderItem, len(lines))
	for i, l := range lines {
		subtotal += l.LineTotal
		items[i] = model.OrderItem{Name: l.Name, Quantity: l.Quantity, Price: l.Price}
	}
	tax := payment.TaxOn(subtotal)

	order := &model.Order{
		Token:         uuid.NewString(),
		UserID:        userID,
		Status:        model.OrderStatusPending,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         subtotal + tax,
		CustomerName:  user.Name,
		CustomerEmail: user.Email,
		PaymentMethod: methodID,
		Items:         items,
	}
	if err := s.orderRepo.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	res := s.processor.Submit(ctx, payment.Request{
		Amount:        order.Total,
		Currency:      "INR",
		OrderID:       order.ID,
		CustomerEmail: order.CustomerEmail,
		CustomerName:  order.CustomerName,
		MethodID:      methodID,
	})

	if !res.Success {
		if err := s.orderRepo.UpdatePaymentOutcome(ctx, order.ID, model.OrderStatusFailed, ""); err != nil {
			log.Error().Err(err).Str("order_id", order.ID).Msg("failed to record payment failure")
		}
		return nil, &PaymentDeclinedError{Message: res.Error, OrderID: order.ID}
	}

	if err := s.orderRepo.UpdatePaymentOutcome(ctx, order.ID, model.OrderStatusPaid, res.PaymentID); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	order.Status = model.OrderStatusPaid
	order.PaymentID = res.PaymentID

	receiptItems := make([]payment.LineItem, len(items))
	for i, it := range items {
		receiptItems[i] = payment.LineItem{Name: it.Name, Quantity: it.Quantity, Price: it.Price}
	}
	receipt := s.processor.BuildReceipt(payment.CompletedOrder{
		ID:            order.ID,
		Token:         order.Token,
		TotalAmount:   order.Subtotal,
		Items:         receiptItems,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		PaymentMethod: order.PaymentMethod,
	}, res.PaymentID)

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to clear cart after checkout")
	}

	if s.receiptMailer != nil {
		if err := s.receiptMailer.SendReceipt(order.CustomerEmail, receipt); err != nil {
			log.Error().Err(err).Str("order_id", order.ID).Msg("failed to mail receipt")
		}
	}

	log.Info().
		Str("order_id", order.ID).
		Str("payment_id", res.PaymentID).
		Float64("total", order.Total).
		Msg("checkout completed")

	return &CheckoutResult{Order: *order, Receipt: receipt}, nil
}

// Receipt rebuilds a receipt for an already-paid order.
func (s *CheckoutService) Receipt(ctx context.Context, userID, orderID string) (*payment.Receipt, error) {
	order, err := s.orderRepo.FindByID(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order.Status != model.OrderStatusPaid {
		return nil, ErrOrderNotPaid
	}

	items := make([]payment.LineItem, len(order.Items))
	for i, it := range order.Items {
		items[i] = payment.LineItem{Name: it.Name, Quantity: it.Quantity, Price: it.Price}
	}
	receipt := s.processor.BuildReceipt(payment.CompletedOrder{
		ID:            order.ID,
		Token:         order.Token,
		TotalAmount:   order.Subtotal,
		Items:         items,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		PaymentMethod: order.PaymentMethod,
	}, order.PaymentID)

	return &receipt, nil
}

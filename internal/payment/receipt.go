package payment

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

const taxRate = 0.05

// LineItem is one purchased line of a completed order.
type LineItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CompletedOrder is the externally-owned record of an order that has
// already been paid. The processor does not verify payment status.
type CompletedOrder struct {
	ID            string
	Token         string
	TotalAmount   float64
	Items         []LineItem
	CustomerName  string
	CustomerEmail string
	PaymentMethod string
}

// Receipt is a derived, immutable summary of a completed payment.
type Receipt struct {
	ReceiptID     string     `json:"receipt_id"`
	OrderID       string     `json:"order_id"`
	OrderToken    string     `json:"order_token"`
	PaymentID     string     `json:"payment_id"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	Amount        float64    `json:"amount"`
	Items         []LineItem `json:"items"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	PaymentMethod string     `json:"payment_method"`
	Timestamp     time.Time  `json:"timestamp"`
	Status        string     `json:"status"`
}

var receiptSeq atomic.Uint64

// TaxOn returns the 5% tax on a subtotal, rounded half away from zero to
// two decimal places. Checkout and receipts share this rule.
func TaxOn(subtotal float64) float64 {
	return round2(subtotal * taxRate)
}

// BuildReceipt derives a receipt from a completed order and the payment
// identifier assigned by Submit. Pure except for ReceiptID and Timestamp:
// identical inputs yield identical amounts and items but distinct receipt
// ids. Tax is 5% of the subtotal, rounded half away from zero to two
// decimal places.
func (p *Processor) BuildReceipt(order CompletedOrder, paymentID string) Receipt {
	subtotal := order.TotalAmount
	tax := TaxOn(subtotal)

	items := make([]LineItem, len(order.Items))
	copy(items, order.Items)

	return Receipt{
		ReceiptID:     newReceiptID(),
		OrderID:       order.ID,
		OrderToken:    order.Token,
		PaymentID:     paymentID,
		Subtotal:      subtotal,
		Tax:           tax,
		Amount:        subtotal + tax,
		Items:         items,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		PaymentMethod: order.PaymentMethod,
		Timestamp:     time.Now(),
		Status:        "paid",
	}
}

// newReceiptID combines wall-clock millis with an atomic sequence so that
// back-to-back calls within the same millisecond still get distinct ids.
func newReceiptID() string {
	seq := receiptSeq.Add(1) % 1000
	return fmt.Sprintf("RCP_%d%03d", time.Now().UnixMilli(), seq)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package payment

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

const (
	// User-facing messages are an external contract: the UI shows them verbatim.
	msgDeclined        = "Payment failed. Please try again."
	msgProcessingError = "Payment processing error. Please try again."

	failureRate     = 0.10
	defaultMinDelay = 1 * time.Second
	defaultMaxDelay = 3 * time.Second

	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixLen      = 9
)

// Request describes one charge attempt. Fields are not validated here:
// the gateway simulation never inspects them, matching the permissive
// contract of the real gateway adapter this stands in for.
type Request struct {
	Amount        float64
	Currency      string
	OrderID       string
	CustomerEmail string
	CustomerName  string
	MethodID      string
}

// Result is the outcome of a charge attempt. PaymentID is set if and only
// if Success is true; Error is set if and only if Success is false.
type Result struct {
	Success   bool   `json:"success"`
	PaymentID string `json:"payment_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Options configures a Processor. Zero-value fields get production
// defaults; tests substitute Rand and Sleep to force each branch.
type Options struct {
	// Rand returns a value in [0,1). Drawn once for the simulated delay,
	// once for the outcome, then per suffix character.
	Rand func() float64
	// Sleep blocks for d or returns an error if it cannot.
	Sleep func(ctx context.Context, d time.Duration) error
	// MinDelay and MaxDelay bound the simulated gateway latency.
	MinDelay time.Duration
	MaxDelay time.Duration
}

// Processor simulates submission of payments to an external gateway and
// derives receipts for completed orders. It holds no state between calls
// and is safe for concurrent use.
type Processor struct {
	rand     func() float64
	sleep    func(ctx context.Context, d time.Duration) error
	minDelay time.Duration
	maxDelay time.Duration
}

func NewProcessor(opts Options) *Processor {
	p := &Processor{
		rand:     opts.Rand,
		sleep:    opts.Sleep,
		minDelay: opts.MinDelay,
		maxDelay: opts.MaxDelay,
	}
	if p.rand == nil {
		// The top-level source is locked, so a shared Processor stays
		// safe for concurrent Submit calls.
		p.rand = rand.Float64
	}
	if p.sleep == nil {
		p.sleep = sleepContext
	}
	if p.minDelay <= 0 {
		p.minDelay = defaultMinDelay
	}
	if p.maxDelay < p.minDelay {
		p.maxDelay = p.minDelay
	}
	if opts.MaxDelay <= 0 && opts.MinDelay <= 0 {
		p.maxDelay = defaultMaxDelay
	}
	return p
}

// Submit simulates charging the customer. It blocks for the simulated
// gateway latency and always returns a terminal Result: a simulated
// decline and a sleep fault are both reported as failure values, never
// as an error or panic. Once submitted the attempt runs to completion;
// a context cancelled mid-delay surfaces as a processing-error Result.
func (p *Processor) Submit(ctx context.Context, req Request) Result {
	delay := p.minDelay + time.Duration(p.rand()*float64(p.maxDelay-p.minDelay))

	if err := p.sleep(ctx, delay); err != nil {
		return Result{Success: false, Error: msgProcessingError}
	}

	if p.rand() <= failureRate {
		return Result{Success: false, Error: msgDeclined}
	}

	return Result{
		Success:   true,
		PaymentID: fmt.Sprintf("pay_%d_%s", time.Now().UnixMilli(), p.suffix(suffixLen)),
	}
}

func (p *Processor) suffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx := int(p.rand() * float64(len(suffixAlphabet)))
		if idx >= len(suffixAlphabet) {
			idx = len(suffixAlphabet) - 1
		}
		b[i] = suffixAlphabet[idx]
	}
	return string(b)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

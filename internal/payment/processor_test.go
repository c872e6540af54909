package payment

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payIDPattern = regexp.MustCompile(`^pay_\d+_[a-z0-9]+$`)

func noSleep(ctx context.Context, d time.Duration) error { return nil }

func testRequest() Request {
	return Request{
		Amount:        250,
		Currency:      "INR",
		OrderID:       "order_001",
		CustomerEmail: "ravi@student.edu",
		CustomerName:  "Ravi Kumar",
		MethodID:      "upi",
	}
}

func TestProcessor_Submit(t *testing.T) {
	t.Run("happy: high draw succeeds with payment id", func(t *testing.T) {
		p := NewProcessor(Options{Rand: func() float64 { return 0.5 }, Sleep: noSleep})

		res := p.Submit(context.Background(), testRequest())

		require.True(t, res.Success)
		assert.Empty(t, res.Error)
		assert.Regexp(t, payIDPattern, res.PaymentID)
	})

	t.Run("bad: draw at failure threshold declines", func(t *testing.T) {
		p := NewProcessor(Options{Rand: func() float64 { return 0.10 }, Sleep: noSleep})

		res := p.Submit(context.Background(), testRequest())

		require.False(t, res.Success)
		assert.Equal(t, "Payment failed. Please try again.", res.Error)
		assert.Empty(t, res.PaymentID)
	})

	t.Run("bad: draw below threshold declines", func(t *testing.T) {
		p := NewProcessor(Options{Rand: func() float64 { return 0.01 }, Sleep: noSleep})

		res := p.Submit(context.Background(), testRequest())

		require.False(t, res.Success)
		assert.Equal(t, "Payment failed. Please try again.", res.Error)
	})

	t.Run("bad: sleep fault converts to processing error", func(t *testing.T) {
		p := NewProcessor(Options{
			Rand:  func() float64 { return 0.9 },
			Sleep: func(ctx context.Context, d time.Duration) error { return errors.New("timer wheel full") },
		})

		res := p.Submit(context.Background(), testRequest())

		require.False(t, res.Success)
		assert.Equal(t, "Payment processing error. Please try again.", res.Error)
		assert.Empty(t, res.PaymentID)
	})

	t.Run("bad: cancelled context converts to processing error", func(t *testing.T) {
		p := NewProcessor(Options{
			Rand:     func() float64 { return 0.9 },
			MinDelay: 50 * time.Millisecond,
			MaxDelay: 50 * time.Millisecond,
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res := p.Submit(ctx, testRequest())

		require.False(t, res.Success)
		assert.Equal(t, "Payment processing error. Please try again.", res.Error)
	})

	t.Run("happy: malformed request still resolves", func(t *testing.T) {
		// The simulation never inspects the request, so a zero-value
		// request still gets a terminal result.
		p := NewProcessor(Options{Rand: func() float64 { return 0.7 }, Sleep: noSleep})

		res := p.Submit(context.Background(), Request{})

		require.True(t, res.Success)
		assert.Regexp(t, payIDPattern, res.PaymentID)
	})

	t.Run("happy: outcome draw order makes delay draw independent", func(t *testing.T) {
		// First draw picks the delay, second picks the outcome.
		draws := []float64{0.99, 0.05}
		i := 0
		p := NewProcessor(Options{
			Rand:  func() float64 { v := draws[i%len(draws)]; i++; return v },
			Sleep: noSleep,
		})

		res := p.Submit(context.Background(), testRequest())

		require.False(t, res.Success)
		assert.Equal(t, "Payment failed. Please try again.", res.Error)
	})
}

func TestProcessor_Submit_ConcurrentIDsUnique(t *testing.T) {
	p := NewProcessor(Options{Sleep: noSleep})

	const attempts = 50
	results := make([]Result, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Submit(context.Background(), testRequest())
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, res := range results {
		if !res.Success {
			assert.Equal(t, "Payment failed. Please try again.", res.Error)
			continue
		}
		assert.Regexp(t, payIDPattern, res.PaymentID)
		assert.False(t, seen[res.PaymentID], "payment id %s assigned twice", res.PaymentID)
		seen[res.PaymentID] = true
	}
}

func TestProcessor_Defaults(t *testing.T) {
	t.Run("delay bounds default to one and three seconds", func(t *testing.T) {
		p := NewProcessor(Options{})
		assert.Equal(t, time.Second, p.minDelay)
		assert.Equal(t, 3*time.Second, p.maxDelay)
	})

	t.Run("max delay below min collapses to min", func(t *testing.T) {
		p := NewProcessor(Options{MinDelay: 2 * time.Second, MaxDelay: time.Second})
		assert.Equal(t, 2*time.Second, p.minDelay)
		assert.Equal(t, 2*time.Second, p.maxDelay)
	})
}

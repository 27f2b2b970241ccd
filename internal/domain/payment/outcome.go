package payment

import (
	"math/rand"
	"sync"
	"time"
)

// Outcome of a simulated gateway call.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeFailed
)

// OutcomeStrategy decides how a structurally valid payment resolves.
type OutcomeStrategy interface {
	Decide() Outcome
}

// OutcomeFunc adapts a function to OutcomeStrategy.
type OutcomeFunc func() Outcome

func (f OutcomeFunc) Decide() Outcome { return f() }

// Always returns a strategy that always yields o.
func Always(o Outcome) OutcomeStrategy {
	return OutcomeFunc(func() Outcome { return o })
}

// DefaultSuccessRate is the share of simulated payments that complete.
const DefaultSuccessRate = 0.9

// WeightedOutcome completes with probability SuccessRate.
type WeightedOutcome struct {
	mu          sync.Mutex
	rnd         *rand.Rand
	successRate float64
}

// NewWeightedOutcome creates a strategy seeded from the clock.
func NewWeightedOutcome(successRate float64) *WeightedOutcome {
	return NewSeededOutcome(successRate, time.Now().UnixNano())
}

// NewSeededOutcome creates a reproducible strategy.
func NewSeededOutcome(successRate float64, seed int64) *WeightedOutcome {
	if successRate < 0 || successRate > 1 {
		successRate = DefaultSuccessRate
	}
	return &WeightedOutcome{
		rnd:         rand.New(rand.NewSource(seed)),
		successRate: successRate,
	}
}

// Decide draws one outcome.
func (w *WeightedOutcome) Decide() Outcome {
	w.mu.Lock()
	draw := w.rnd.Float64()
	w.mu.Unlock()

	if draw < w.successRate {
		return OutcomeCompleted
	}
	return OutcomeFailed
}

// Package rules contains the pure calculation logic for game mechanics.
// This package is PURE and must NOT import any infrastructure packages.
package rules

// Countdown is the time budget of one level, in simulated time units.
// It only moves down and never goes below zero.
type Countdown struct {
	budget    int
	remaining int
}

// NewCountdown starts a countdown with the full budget. A negative budget is
// treated as zero.
func NewCountdown(budget int) Countdown {
	if budget < 0 {
		budget = 0
	}
	return Countdown{budget: budget, remaining: budget}
}

// Consume spends units from the budget and returns what is left.
func (c *Countdown) Consume(units int) int {
	if units < 0 {
		units = 0
	}
	c.remaining -= units
	if c.remaining < 0 {
		c.remaining = 0
	}
	return c.remaining
}

// Exhaust forces the countdown to zero.
func (c *Countdown) Exhaust() {
	c.remaining = 0
}

func (c Countdown) Budget() int    { return c.budget }
func (c Countdown) Remaining() int { return c.remaining }
func (c Countdown) Elapsed() int   { return c.budget - c.remaining }

// Expired reports whether the budget is used up.
func (c Countdown) Expired() bool {
	return c.remaining <= 0
}

// TurnsAvailable is how many turns of turnCost can be played before budget
// expires. A turn starts while any time is left, so a partial last turn
// counts (6 units at 5 per turn is 2 turns).
// A non-positive cost means turns are free and the answer is unbounded (-1).
func TurnsAvailable(budget, turnCost int) int {
	if turnCost <= 0 {
		return -1
	}
	if budget <= 0 {
		return 0
	}
	return (budget + turnCost - 1) / turnCost
}

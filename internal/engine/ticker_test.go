package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MRamiBalles/JuegoHospital/server/internal/events"
	"github.com/MRamiBalles/JuegoHospital/server/internal/levels"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/logger"
)

func TestTickerAdvanceEmitsTimeTick(t *testing.T) {
	el := events.NewEventLog()
	tk := NewTicker(el, logger.NewNop())
	tk.Reset(2, 12)

	first := tk.Advance(5)
	assert.Equal(t, events.TimeTickPayload{Level: 2, Turn: 1, Consumed: 5, Remaining: 7, Elapsed: 5}, first)

	tk.Advance(5)
	last := tk.Advance(5)
	assert.Equal(t, 0, last.Remaining)
	assert.Equal(t, 12, last.Elapsed)
	assert.True(t, tk.Expired())
	assert.Equal(t, 3, tk.Turn())

	ticks := el.GetByType(events.EventTypeTimeTick)
	require.Len(t, ticks, 3)
	assert.Equal(t, events.ActorClock, ticks[0].ActorID)
	assert.Equal(t, 2, ticks[0].Level)
}

func TestTickerResetStartsOver(t *testing.T) {
	tk := NewTicker(events.NewEventLog(), logger.NewNop())
	assert.True(t, tk.Expired())

	tk.Reset(1, 60)
	tk.Advance(5)
	tk.Reset(2, 60)

	assert.Equal(t, 60, tk.Remaining())
	assert.Equal(t, 0, tk.Turn())
}

func TestTickerExpire(t *testing.T) {
	el := events.NewEventLog()
	tk := NewTicker(el, logger.NewNop())
	tk.Reset(1, 60)

	tk.Expire()
	assert.Equal(t, 0, tk.Turn())
	assert.Empty(t, el.GetByType(events.EventTypeTimeTick))
	assert.Equal(t, 0, tk.Remaining())
	assert.True(t, tk.Expired())
}

func TestRulesBudgetAndTurns(t *testing.T) {
	r := DefaultRules()

	assert.Equal(t, 60, r.BudgetFor(levels.Definition{Number: 1}))
	assert.Equal(t, 25, r.BudgetFor(levels.Definition{Number: 2, TimeBudget: 25}))

	assert.Equal(t, 12, r.TurnsFor(60))
	assert.Equal(t, 2, r.TurnsFor(6))
	assert.Equal(t, 0, r.TurnsFor(0))
	assert.Equal(t, -1, Rules{DefaultTimeBudget: 60}.TurnsFor(60))
}

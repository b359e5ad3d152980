package engine

import (
	"fmt"

	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/rules"
	"github.com/MRamiBalles/JuegoHospital/server/internal/events"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/logger"
)

// Ticker is the level clock. It is cooperative: time only moves when a turn
// completes (Advance) or when a caller drains it explicitly. It does NOT know
// about doctors or patients.
type Ticker struct {
	eventLog  *events.EventLog
	logger    *logger.Logger
	level     int
	turn      int
	countdown rules.Countdown
}

// NewTicker creates a stopped ticker with an empty budget.
func NewTicker(eventLog *events.EventLog, log *logger.Logger) *Ticker {
	return &Ticker{
		eventLog:  eventLog,
		logger:    log,
		countdown: rules.NewCountdown(0),
	}
}

// Reset arms the clock for a new level.
func (t *Ticker) Reset(level, budget int) {
	t.level = level
	t.turn = 0
	t.countdown = rules.NewCountdown(budget)
	t.logger.Event("CLOCK_RESET", events.ActorClock, fmt.Sprintf("Level %d budget %d", level, budget))
}

// Advance consumes one turn's worth of time and emits a TIME_TICK event.
func (t *Ticker) Advance(cost int) events.TimeTickPayload {
	t.turn++
	t.countdown.Consume(cost)

	payload := events.TimeTickPayload{
		Level:     t.level,
		Turn:      t.turn,
		Consumed:  cost,
		Remaining: t.countdown.Remaining(),
		Elapsed:   t.countdown.Elapsed(),
	}

	t.eventLog.Append(events.GameEvent{
		Type:    events.EventTypeTimeTick,
		ActorID: events.ActorClock,
		Payload: payload,
		Level:   t.level,
	})
	t.logger.Event("TIME_TICK", events.ActorClock,
		fmt.Sprintf("Level %d turn %d: %d left", t.level, t.turn, payload.Remaining))

	return payload
}

// Expire forces the countdown to zero.
func (t *Ticker) Expire() {
	t.countdown.Exhaust()
	t.logger.Warn(fmt.Sprintf("Level %d clock forced to zero", t.level))
}

func (t *Ticker) Remaining() int { return t.countdown.Remaining() }
func (t *Ticker) Expired() bool  { return t.countdown.Expired() }
func (t *Ticker) Turn() int      { return t.turn }

package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MRamiBalles/JuegoHospital/server/internal/events"
	"github.com/MRamiBalles/JuegoHospital/server/internal/levels"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/logger"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/pacing"
)

// Options toggles optional game behaviour.
type Options struct {
	// ConfirmLevels asks the chooser before every level after the first.
	ConfirmLevels bool
}

// Result summarizes a finished game.
type Result struct {
	LevelsCompleted int
	FailedLevel     int // 0 when no level failed
	Quit            bool
}

// Won reports whether every level of the table was completed.
func (r Result) Won(total int) bool {
	return r.FailedLevel == 0 && !r.Quit && r.LevelsCompleted == total
}

// Game is the central orchestrator: it walks the level table in order and
// stops at the first failed level.
type Game struct {
	sessionID string

	table    *levels.Table
	level    *Level
	ports    Ports
	options  Options
	eventLog *events.EventLog
	logger   *logger.Logger
}

// NewGame builds the doctor roster from the table and wires a level engine
// around it. The same doctors serve every level.
func NewGame(table *levels.Table, ports Ports, rules Rules, opts Options, eventLog *events.EventLog, log *logger.Logger) *Game {
	return &Game{
		sessionID: uuid.NewString(),
		table:     table,
		level:     NewLevel(table, table.BuildDoctors(), ports, rules, eventLog, log),
		ports:     ports,
		options:   opts,
		eventLog:  eventLog,
		logger:    log,
	}
}

// SessionID identifies this game in the event log.
func (g *Game) SessionID() string {
	return g.sessionID
}

// Level exposes the level engine, mainly for inspection in tests.
func (g *Game) Level() *Level {
	return g.level
}

// GetEventLog exposes the event log the game writes to.
func (g *Game) GetEventLog() *events.EventLog {
	return g.eventLog
}

// Run plays levels 1..N. It returns an error only when the input side fails,
// ctx is cancelled or a level cannot be configured; the game end is announced
// on every path.
func (g *Game) Run(ctx context.Context) (res Result, err error) {
	view := g.ports.Notifier

	g.logger.Event("GAME_STARTED", g.sessionID, fmt.Sprintf("%d levels", g.table.Len()))
	view.Welcome()
	g.eventLog.Append(events.GameEvent{Type: events.EventTypeGameStarted, ActorID: events.ActorSystem, TargetID: g.sessionID})
	g.ports.Pacer.Pause(ctx, pacing.BeatShort)

	defer func() { g.end(ctx, res, err) }()

	for n := 1; n <= g.table.Len(); n++ {
		if n > 1 && g.options.ConfirmLevels {
			ok, cerr := g.ports.Chooser.ConfirmAction(ctx, fmt.Sprintf("nivel %d", n))
			if cerr != nil {
				return res, fmt.Errorf("confirm level %d: %w", n, cerr)
			}
			if !ok {
				g.logger.Info(fmt.Sprintf("Player stopped before level %d", n))
				res.Quit = true
				return res, nil
			}
		}

		view.LevelStarted(n)
		g.ports.Pacer.Pause(ctx, pacing.BeatShort)
		if err := g.level.Configure(n); err != nil {
			return res, fmt.Errorf("configure level %d: %w", n, err)
		}

		outcome, err := g.level.Play(ctx)
		if err != nil {
			return res, err
		}
		if outcome == OutcomeFailed {
			res.FailedLevel = n
			return res, nil
		}
		res.LevelsCompleted++
	}
	return res, nil
}

func (g *Game) end(ctx context.Context, res Result, err error) {
	if err != nil {
		g.logger.Error("Game aborted: " + err.Error())
	}
	g.ports.Notifier.Performance(g.level.Performance())
	g.ports.Pacer.Pause(ctx, pacing.BeatShort)
	g.ports.Notifier.GameEnded()
	g.eventLog.Append(events.GameEvent{
		Type:     events.EventTypeGameEnded,
		ActorID:  events.ActorSystem,
		TargetID: g.sessionID,
		Payload:  events.GameEndedPayload{LevelsCompleted: res.LevelsCompleted, FailedLevel: res.FailedLevel, Quit: res.Quit},
	})
}

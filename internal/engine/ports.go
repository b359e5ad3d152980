package engine

import (
	"context"

	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/doctor"
	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/patient"
	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/rules"
	"github.com/MRamiBalles/JuegoHospital/server/internal/levels"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/pacing"
)

// Chooser obtains the player's decisions. Implementations are expected to
// return one of the offered names, but the engine validates anyway.
// An error means the input side is gone; the game stops.
type Chooser interface {
	SelectDoctor(ctx context.Context, names []string) (string, error)
	SelectPatient(ctx context.Context, names []string) (string, error)
	ConfirmAction(ctx context.Context, label string) (bool, error)
}

// Notifier announces progress to the player. Calls are fire-and-forget.
type Notifier interface {
	Welcome()
	LevelStarted(level int)
	Roster(patients []patient.Summary)
	Assigned(doctorName, patientName string, canHandle bool)
	Attended(doctorName, patientName string)
	Diagnosis(patientName string, d patient.Diagnosis)
	SelectionRejected(reason string)
	TimeRemaining(units int)
	TimeUp()
	LevelCompleted(level int)
	LevelFailed(level int)
	Performance(reports []doctor.Performance)
	GameEnded()
}

// Pacer inserts the pauses between notifications.
type Pacer interface {
	Pause(ctx context.Context, b pacing.Beat)
}

// Ports groups the external collaborators of the engine.
type Ports struct {
	Chooser  Chooser
	Notifier Notifier
	Pacer    Pacer
}

// Rules are the time-budget parameters of the engine.
type Rules struct {
	TurnCost          int // time units per completed turn
	DefaultTimeBudget int // used when a level does not set its own
}

// DefaultRules are 60 time units per level, 5 per turn.
func DefaultRules() Rules {
	return Rules{TurnCost: 5, DefaultTimeBudget: 60}
}

// BudgetFor is the clock a level starts with.
func (r Rules) BudgetFor(def levels.Definition) int {
	if def.TimeBudget == 0 {
		return r.DefaultTimeBudget
	}
	return def.TimeBudget
}

// TurnsFor is how many turns can start before a clock of budget runs out,
// or -1 when turns cost nothing.
func (r Rules) TurnsFor(budget int) int {
	return rules.TurnsAvailable(budget, r.TurnCost)
}

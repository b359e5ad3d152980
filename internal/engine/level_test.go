package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MRamiBalles/JuegoHospital/server/internal/events"
	"github.com/MRamiBalles/JuegoHospital/server/internal/levels"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/logger"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/pacing"
)

func TestLevelCompletesWhenRosterEmpties(t *testing.T) {
	h := newHarness(t, twoDoctorTable, pick{"D1", "John"}, pick{"D2", "Alice"})
	lvl := h.level(DefaultRules())

	require.NoError(t, lvl.Configure(1))
	assert.Equal(t, StateConfiguring, lvl.State())
	assert.Equal(t, []string{"John", "Alice"}, lvl.RosterNames())

	outcome, err := lvl.Play(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeCompleted, outcome)
	assert.Equal(t, StateLevelComplete, lvl.State())
	assert.Empty(t, lvl.RosterNames())
	assert.Equal(t, 50, lvl.Remaining())

	assert.Equal(t, []string{
		"roster 2",
		"assigned D1 John true",
		"attended D1 John",
		"diagnosis John xray true",
		"remaining 55",
		"assigned D2 Alice true",
		"attended D2 Alice",
		"completed 1",
	}, h.view.lines)

	// Both doctors were free on each turn; the patient list shrank.
	assert.Equal(t, [][]string{{"D1", "D2"}, {"D1", "D2"}}, h.chooser.offeredDoctors)
	assert.Equal(t, [][]string{{"John", "Alice"}, {"Alice"}}, h.chooser.offeredPatients)

	assert.Equal(t, 2, h.pacer.beats[pacing.BeatTreatment])
	assert.Equal(t, 2, h.pacer.beats[pacing.BeatTurn])

	assert.Len(t, h.log.GetByType(events.EventTypeTimeTick), 2)
	assert.Len(t, h.log.GetByType(events.EventTypeLevelCompleted), 1)

	perf := lvl.Performance()
	require.Len(t, perf, 2)
	assert.Equal(t, 1, perf[0].PatientsAttended)
	assert.Equal(t, 1, perf[1].PatientsAttended)
}

func TestLevelFailsWhenTimeRunsOut(t *testing.T) {
	table := `
doctors:
  - name: D1
    specialty: Traumatología
    experience: senior
levels:
  - number: 1
    time_budget: 5
    patients:
      - name: John
        kind: Trauma
        injury_type: fractura
      - name: Alice
        kind: General
        urgency: low
`
	h := newHarness(t, table, pick{"D1", "John"}, pick{"D1", "Alice"})
	lvl := h.level(DefaultRules())
	require.NoError(t, lvl.Configure(1))

	outcome, err := lvl.Play(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, outcome)
	assert.Equal(t, StateLevelFailed, lvl.State())
	assert.Equal(t, []string{"Alice"}, lvl.RosterNames())
	assert.Equal(t, 0, lvl.Remaining())

	// No remaining-time line at zero; the second pick is never asked for.
	assert.Equal(t, 0, h.view.count("remaining 0"))
	assert.Equal(t, 1, h.view.count("timeup"))
	assert.Equal(t, 1, h.view.count("failed 1"))
	assert.Len(t, h.chooser.picks, 1)

	failed := h.log.GetByType(events.EventTypeLevelFailed)
	require.Len(t, failed, 1)
	payload := failed[0].Payload.(events.LevelOutcomePayload)
	assert.Equal(t, 1, payload.PatientsLeft)
	assert.Equal(t, 1, payload.Turns)
}

func TestExpiredClockFailsBeforeAnyTurn(t *testing.T) {
	h := newHarness(t, twoDoctorTable)
	lvl := h.level(DefaultRules())
	require.NoError(t, lvl.Configure(1))

	lvl.Ticker().Expire()

	outcome, err := lvl.Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Empty(t, h.chooser.offeredDoctors)
	assert.Equal(t, []string{"John", "Alice"}, lvl.RosterNames())
}

func TestClockRunsOutAfterLastAvailableTurn(t *testing.T) {
	h := newHarness(t, twoDoctorTable, pick{"D1", "John"})
	r := Rules{TurnCost: 10, DefaultTimeBudget: 10}
	var logs bytes.Buffer
	lvl := NewLevel(h.table, h.table.BuildDoctors(), h.ports(), r, h.log, logger.NewLoggerTo(&logs, "warn", logger.FormatJSON))
	require.NoError(t, lvl.Configure(1))
	assert.Equal(t, 1, r.TurnsFor(lvl.Remaining()))

	outcome, err := lvl.Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeFailed, outcome)
	assert.Equal(t, []string{"Alice"}, lvl.RosterNames())

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(logs.Bytes(), &line))
	assert.Equal(t, "Level failed", line["message"])
	assert.Equal(t, float64(1), line["level_number"])
	assert.Equal(t, float64(1), line["turns"])
	assert.Equal(t, float64(1), line["patients_left"])
}

func TestInvalidSelectionsChangeNothing(t *testing.T) {
	h := newHarness(t, twoDoctorTable,
		pick{"Dr. Nobody", "John"},
		pick{"D1", "Ghost"},
		pick{"D1", "John"},
		pick{"D2", "Alice"},
	)
	lvl := h.level(DefaultRules())
	require.NoError(t, lvl.Configure(1))

	outcome, err := lvl.Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, outcome)

	assert.Equal(t, 1, h.view.count("rejected UNKNOWN_DOCTOR"))
	assert.Equal(t, 1, h.view.count("rejected UNKNOWN_PATIENT"))

	// Rejections cost no time and no turn.
	assert.Equal(t, 50, lvl.Remaining())
	assert.Len(t, h.log.GetByType(events.EventTypeTimeTick), 2)

	rejected := h.log.GetByType(events.EventTypeSelectionRejected)
	require.Len(t, rejected, 2)
	assert.Equal(t, events.SelectionRejectedPayload{Reason: events.RejectUnknownDoctor, Value: "Dr. Nobody"}, rejected[0].Payload)
	assert.Equal(t, events.SelectionRejectedPayload{Reason: events.RejectUnknownPatient, Value: "Ghost"}, rejected[1].Payload)

	// The patient list offered after the rejections is still complete.
	assert.Equal(t, []string{"John", "Alice"}, h.chooser.offeredPatients[1])
}

func TestEmptyRosterCompletesImmediately(t *testing.T) {
	table := `
doctors:
  - name: D1
    experience: junior
levels:
  - number: 1
    patients: []
`
	h := newHarness(t, table)
	lvl := h.level(DefaultRules())
	require.NoError(t, lvl.Configure(1))

	outcome, err := lvl.Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, outcome)
	assert.Equal(t, 60, lvl.Remaining())
	assert.Empty(t, h.chooser.offeredDoctors)
}

func TestConfigureUnknownLevel(t *testing.T) {
	h := newHarness(t, twoDoctorTable)
	lvl := h.level(DefaultRules())

	err := lvl.Configure(9)
	assert.ErrorIs(t, err, levels.ErrUnknownLevel)
	assert.Equal(t, StateIdle, lvl.State())

	_, err = lvl.Play(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestConfigureUsesDefaultBudget(t *testing.T) {
	h := newHarness(t, twoDoctorTable)
	lvl := h.level(Rules{TurnCost: 5, DefaultTimeBudget: 25})

	require.NoError(t, lvl.Configure(1))
	assert.Equal(t, 25, lvl.Remaining())

	started := h.log.GetByType(events.EventTypeLevelStarted)
	require.Len(t, started, 1)
	assert.Equal(t, 25, started[0].Payload.(events.LevelStartedPayload).TimeBudget)
}

func TestChooserErrorStopsPlay(t *testing.T) {
	h := newHarness(t, twoDoctorTable, pick{"D1", "John"})
	lvl := h.level(DefaultRules())
	require.NoError(t, lvl.Configure(1))

	_, err := lvl.Play(context.Background())
	assert.ErrorIs(t, err, errScriptDone)
	assert.Equal(t, []string{"Alice"}, lvl.RosterNames())
}

func TestCancelledContextStopsAtTurnBoundary(t *testing.T) {
	h := newHarness(t, twoDoctorTable, pick{"D1", "John"})
	lvl := h.level(DefaultRules())
	require.NoError(t, lvl.Configure(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lvl.Play(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.chooser.offeredDoctors)
}

func TestMismatchedSpecialtyStillTreats(t *testing.T) {
	h := newHarness(t, twoDoctorTable, pick{"D2", "John"}, pick{"D1", "Alice"})
	lvl := h.level(DefaultRules())
	require.NoError(t, lvl.Configure(1))

	outcome, err := lvl.Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeCompleted, outcome)
	assert.Equal(t, 1, h.view.count("assigned D2 John false"))

	assigned := h.log.GetByType(events.EventTypePatientAssigned)
	require.Len(t, assigned, 2)
	assert.False(t, assigned[0].Payload.(events.AssignmentPayload).CanHandle)
}

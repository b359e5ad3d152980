package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/doctor"
	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/patient"
	"github.com/MRamiBalles/JuegoHospital/server/internal/events"
	"github.com/MRamiBalles/JuegoHospital/server/internal/levels"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/logger"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/pacing"
)

// State is the position of the level engine in its state machine.
type State string

const (
	StateIdle              State = "Idle"
	StateConfiguring       State = "Configuring"
	StateAwaitingSelection State = "AwaitingSelection"
	StateAssigning         State = "Assigning"
	StateLevelComplete     State = "LevelComplete"
	StateLevelFailed       State = "LevelFailed"
)

// Outcome is how a level ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
)

var (
	// ErrNotConfigured is returned by Play when Configure has not succeeded.
	ErrNotConfigured = errors.New("level has not been configured")
	// ErrInvalidSelection marks a rejected pick. It never leaves the turn loop.
	ErrInvalidSelection = errors.New("invalid selection")
)

// Level is the turn engine of one level: it owns the doctor roster for the
// whole game and the patient roster for the level being played.
type Level struct {
	table    *levels.Table
	doctors  []*doctor.Doctor
	roster   []*patient.Patient
	ports    Ports
	rules    Rules
	eventLog *events.EventLog
	logger   *logger.Logger
	ticker   *Ticker

	number int
	state  State
}

// NewLevel wires the level engine. The doctors slice is owned by the engine
// from here on.
func NewLevel(table *levels.Table, doctors []*doctor.Doctor, ports Ports, rules Rules, eventLog *events.EventLog, log *logger.Logger) *Level {
	return &Level{
		table:    table,
		doctors:  doctors,
		ports:    ports,
		rules:    rules,
		eventLog: eventLog,
		logger:   log,
		ticker:   NewTicker(eventLog, log),
		state:    StateIdle,
	}
}

func (l *Level) State() State   { return l.state }
func (l *Level) Remaining() int { return l.ticker.Remaining() }

// Ticker exposes the level clock for externally driven time.
func (l *Level) Ticker() *Ticker {
	return l.ticker
}

// RosterNames lists the patients still waiting, in roster order.
func (l *Level) RosterNames() []string {
	names := make([]string, 0, len(l.roster))
	for _, p := range l.roster {
		names = append(names, p.Name())
	}
	return names
}

// Performance reports every doctor's attendance count.
func (l *Level) Performance() []doctor.Performance {
	reports := make([]doctor.Performance, 0, len(l.doctors))
	for _, d := range l.doctors {
		reports = append(reports, d.CheckPerformance())
	}
	return reports
}

func (l *Level) transition(to State) {
	if l.state == to {
		return
	}
	l.logger.Event("STATE", fmt.Sprintf("level:%d", l.number), string(l.state)+" -> "+string(to))
	l.state = to
}

// Configure replaces the patient roster with level n's fresh set and arms the
// clock. Levels outside the table return levels.ErrUnknownLevel and leave the
// engine Idle.
func (l *Level) Configure(n int) error {
	l.number = n
	l.transition(StateConfiguring)

	def, err := l.table.Lookup(n)
	if err != nil {
		l.roster = nil
		l.transition(StateIdle)
		return err
	}

	budget := l.rules.BudgetFor(def)
	l.roster = def.Build()
	l.ticker.Reset(n, budget)

	l.eventLog.Append(events.GameEvent{
		Type:    events.EventTypeLevelStarted,
		ActorID: events.ActorSystem,
		Level:   n,
		Payload: events.LevelStartedPayload{Level: n, TimeBudget: budget, Patients: l.RosterNames()},
	})
	return nil
}

// Play runs the turn loop until the roster is empty (completed) or the clock
// runs out first (failed). An error is returned only when the chooser fails
// or ctx is cancelled between turns.
func (l *Level) Play(ctx context.Context) (Outcome, error) {
	if l.state != StateConfiguring {
		return "", ErrNotConfigured
	}

	view := l.ports.Notifier
	summaries := make([]patient.Summary, 0, len(l.roster))
	for _, p := range l.roster {
		summaries = append(summaries, p.Summarize())
	}
	view.Roster(summaries)

	for {
		if len(l.roster) == 0 {
			return l.finish(OutcomeCompleted), nil
		}
		if l.ticker.Expired() {
			view.TimeUp()
			return l.finish(OutcomeFailed), nil
		}
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("level %d interrupted: %w", l.number, err)
		}

		l.transition(StateAwaitingSelection)
		d, p, err := l.selectPair(ctx)
		if err != nil {
			return "", err
		}

		l.transition(StateAssigning)
		if !l.treat(ctx, d, p) {
			continue
		}

		tick := l.ticker.Advance(l.rules.TurnCost)
		if len(l.roster) > 0 && tick.Remaining > 0 {
			view.TimeRemaining(tick.Remaining)
		}
		l.ports.Pacer.Pause(ctx, pacing.BeatTurn)
	}
}

// selectPair asks for a doctor and a patient until both names match the live
// rosters. Rejected names change nothing.
func (l *Level) selectPair(ctx context.Context) (*doctor.Doctor, *patient.Patient, error) {
	for {
		doctorName, err := l.ports.Chooser.SelectDoctor(ctx, l.availableDoctorNames())
		if err != nil {
			return nil, nil, fmt.Errorf("doctor selection: %w", err)
		}
		d := l.findDoctor(doctorName)
		if d == nil {
			l.reject(events.RejectUnknownDoctor, doctorName)
			continue
		}
		if d.Busy() {
			l.reject(events.RejectDoctorOccupied, doctorName)
			continue
		}

		patientName, err := l.ports.Chooser.SelectPatient(ctx, l.RosterNames())
		if err != nil {
			return nil, nil, fmt.Errorf("patient selection: %w", err)
		}
		p := l.findPatient(patientName)
		if p == nil {
			l.reject(events.RejectUnknownPatient, patientName)
			continue
		}

		return d, p, nil
	}
}

// treat runs assign and attend back to back so no half-assigned state is
// ever visible. It returns false when the turn made no progress.
func (l *Level) treat(ctx context.Context, d *doctor.Doctor, p *patient.Patient) bool {
	view := l.ports.Notifier

	if err := d.AssignPatient(p); err != nil {
		l.reject(events.RejectDoctorOccupied, d.Name())
		return false
	}

	canHandle := d.CanHandlePatient(p)
	l.eventLog.Append(events.GameEvent{
		Type:     events.EventTypePatientAssigned,
		ActorID:  d.Name(),
		TargetID: p.Name(),
		Level:    l.number,
		Payload:  l.assignmentPayload(d, p, canHandle),
	})
	view.Assigned(d.Name(), p.Name(), canHandle)
	l.ports.Pacer.Pause(ctx, pacing.BeatTreatment)

	treated, err := d.AttendPatient()
	if err != nil {
		l.reject(events.RejectNothingToAttend, d.Name())
		return false
	}

	l.removeFromRoster(treated)
	l.eventLog.Append(events.GameEvent{
		Type:     events.EventTypePatientAttended,
		ActorID:  d.Name(),
		TargetID: treated.Name(),
		Level:    l.number,
		Payload:  l.assignmentPayload(d, treated, canHandle),
	})
	l.logger.Event("PATIENT_ATTENDED", d.Name(), treated.Name())
	view.Attended(d.Name(), treated.Name())

	if diag, ok := treated.Diagnose(); ok {
		l.eventLog.Append(events.GameEvent{
			Type:     events.EventTypeDiagnosis,
			ActorID:  d.Name(),
			TargetID: treated.Name(),
			Level:    l.number,
			Payload:  events.DiagnosisPayload{PatientName: treated.Name(), Diagnosis: diag},
		})
		view.Diagnosis(treated.Name(), diag)
	}
	return true
}

func (l *Level) assignmentPayload(d *doctor.Doctor, p *patient.Patient, canHandle bool) events.AssignmentPayload {
	return events.AssignmentPayload{
		DoctorName:  d.Name(),
		PatientName: p.Name(),
		PatientKind: p.Kind(),
		Urgency:     p.Urgency(),
		CanHandle:   canHandle,
		RosterLeft:  len(l.roster),
		DoctorTotal: d.PatientsAttended(),
	}
}

func (l *Level) reject(reason events.RejectionReason, value string) {
	err := fmt.Errorf("level %d: %w: %s %q", l.number, ErrInvalidSelection, reason, value)
	l.logger.Warn(err.Error())
	l.eventLog.Append(events.GameEvent{
		Type:    events.EventTypeSelectionRejected,
		ActorID: events.ActorSystem,
		Level:   l.number,
		Payload: events.SelectionRejectedPayload{Reason: reason, Value: value},
	})
	l.ports.Notifier.SelectionRejected(string(reason))
}

func (l *Level) finish(outcome Outcome) Outcome {
	payload := events.LevelOutcomePayload{
		Level:        l.number,
		Turns:        l.ticker.Turn(),
		Remaining:    l.ticker.Remaining(),
		PatientsLeft: len(l.roster),
	}

	if outcome == OutcomeCompleted {
		l.transition(StateLevelComplete)
		l.eventLog.Append(events.GameEvent{Type: events.EventTypeLevelCompleted, ActorID: events.ActorSystem, Level: l.number, Payload: payload})
		l.ports.Notifier.LevelCompleted(l.number)
	} else {
		l.transition(StateLevelFailed)
		l.logger.Zerolog().Warn().
			Int("level_number", l.number).
			Int("turns", payload.Turns).
			Int("patients_left", payload.PatientsLeft).
			Msg("Level failed")
		l.eventLog.Append(events.GameEvent{Type: events.EventTypeLevelFailed, ActorID: events.ActorSystem, Level: l.number, Payload: payload})
		l.ports.Notifier.LevelFailed(l.number)
	}
	return outcome
}

func (l *Level) availableDoctorNames() []string {
	names := make([]string, 0, len(l.doctors))
	for _, d := range l.doctors {
		if !d.Busy() {
			names = append(names, d.Name())
		}
	}
	return names
}

func (l *Level) findDoctor(name string) *doctor.Doctor {
	for _, d := range l.doctors {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

func (l *Level) findPatient(name string) *patient.Patient {
	for _, p := range l.roster {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

func (l *Level) removeFromRoster(target *patient.Patient) {
	kept := l.roster[:0]
	for _, p := range l.roster {
		if p != target {
			kept = append(kept, p)
		}
	}
	l.roster = kept
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/doctor"
	"github.com/MRamiBalles/JuegoHospital/server/internal/domain/patient"
	"github.com/MRamiBalles/JuegoHospital/server/internal/events"
	"github.com/MRamiBalles/JuegoHospital/server/internal/levels"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/logger"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/pacing"
)

var errScriptDone = errors.New("script exhausted")

// pick is one scripted doctor/patient pair.
type pick struct{ doctor, patient string }

// scriptChooser replays picks in order and records what it was offered.
type scriptChooser struct {
	picks    []pick
	confirms []bool
	pending  *pick

	offeredDoctors  [][]string
	offeredPatients [][]string
	confirmLabels   []string
}

func (s *scriptChooser) SelectDoctor(_ context.Context, names []string) (string, error) {
	s.offeredDoctors = append(s.offeredDoctors, names)
	if len(s.picks) == 0 {
		return "", errScriptDone
	}
	s.pending = &s.picks[0]
	s.picks = s.picks[1:]
	return s.pending.doctor, nil
}

func (s *scriptChooser) SelectPatient(_ context.Context, names []string) (string, error) {
	s.offeredPatients = append(s.offeredPatients, names)
	if s.pending == nil {
		return "", errScriptDone
	}
	name := s.pending.patient
	s.pending = nil
	return name, nil
}

func (s *scriptChooser) ConfirmAction(_ context.Context, label string) (bool, error) {
	s.confirmLabels = append(s.confirmLabels, label)
	if len(s.confirms) == 0 {
		return false, errScriptDone
	}
	ok := s.confirms[0]
	s.confirms = s.confirms[1:]
	return ok, nil
}

// recordingView stores every notification as a short line.
type recordingView struct {
	lines []string
}

func (r *recordingView) add(format string, args ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recordingView) Welcome()               { r.add("welcome") }
func (r *recordingView) LevelStarted(level int) { r.add("level %d", level) }
func (r *recordingView) Roster(p []patient.Summary) {
	r.add("roster %d", len(p))
}
func (r *recordingView) Assigned(d, p string, canHandle bool) {
	r.add("assigned %s %s %t", d, p, canHandle)
}
func (r *recordingView) Attended(d, p string) { r.add("attended %s %s", d, p) }
func (r *recordingView) Diagnosis(p string, d patient.Diagnosis) {
	r.add("diagnosis %s %s %t", p, d.Action, d.Required)
}
func (r *recordingView) SelectionRejected(reason string) { r.add("rejected %s", reason) }
func (r *recordingView) TimeRemaining(units int)         { r.add("remaining %d", units) }
func (r *recordingView) TimeUp()                         { r.add("timeup") }
func (r *recordingView) LevelCompleted(level int)        { r.add("completed %d", level) }
func (r *recordingView) LevelFailed(level int)           { r.add("failed %d", level) }
func (r *recordingView) Performance(reports []doctor.Performance) {
	for _, rep := range reports {
		r.add("performance %s %d", rep.DoctorName, rep.PatientsAttended)
	}
}
func (r *recordingView) GameEnded() { r.add("ended") }

func (r *recordingView) count(line string) int {
	n := 0
	for _, l := range r.lines {
		if l == line {
			n++
		}
	}
	return n
}

type countingPacer struct {
	beats map[pacing.Beat]int
}

func (c *countingPacer) Pause(_ context.Context, b pacing.Beat) {
	if c.beats == nil {
		c.beats = make(map[pacing.Beat]int)
	}
	c.beats[b]++
}

const twoDoctorTable = `
doctors:
  - name: D1
    specialty: Traumatología
    experience: senior
  - name: D2
    specialty: Gastroenterología
    experience: mid
levels:
  - number: 1
    patients:
      - name: John
        kind: Trauma
        injury_type: fractura
      - name: Alice
        kind: General
        urgency: medium
`

type harness struct {
	table   *levels.Table
	chooser *scriptChooser
	view    *recordingView
	pacer   *countingPacer
	log     *events.EventLog
}

func newHarness(t *testing.T, yamlTable string, picks ...pick) *harness {
	t.Helper()
	table, err := levels.Parse([]byte(yamlTable))
	require.NoError(t, err)
	return &harness{
		table:   table,
		chooser: &scriptChooser{picks: picks},
		view:    &recordingView{},
		pacer:   &countingPacer{},
		log:     events.NewEventLog(),
	}
}

func (h *harness) ports() Ports {
	return Ports{Chooser: h.chooser, Notifier: h.view, Pacer: h.pacer}
}

func (h *harness) level(rules Rules) *Level {
	return NewLevel(h.table, h.table.BuildDoctors(), h.ports(), rules, h.log, logger.NewNop())
}

func (h *harness) game(rules Rules, opts Options) *Game {
	return NewGame(h.table, h.ports(), rules, opts, h.log, logger.NewNop())
}

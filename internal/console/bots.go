package console

import (
	"context"
	"errors"
	"math/rand"
)

// ErrScriptExhausted is returned by ScriptedChooser when it runs out of answers.
var ErrScriptExhausted = errors.New("scripted chooser has no more answers")

// Step is one scripted turn. Names are returned verbatim, so a step may name a
// doctor or patient that is not on offer.
type Step struct {
	Doctor  string
	Patient string
}

// ScriptedChooser answers from a fixed list of steps and confirmations.
type ScriptedChooser struct {
	steps    []Step
	confirms []bool
	next     int
	pending  *Step
}

func NewScriptedChooser(steps []Step, confirms ...bool) *ScriptedChooser {
	return &ScriptedChooser{steps: steps, confirms: confirms}
}

// Remaining is the number of steps not yet started.
func (s *ScriptedChooser) Remaining() int {
	return len(s.steps) - s.next
}

func (s *ScriptedChooser) SelectDoctor(ctx context.Context, _ []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.next >= len(s.steps) {
		return "", ErrScriptExhausted
	}
	s.pending = &s.steps[s.next]
	s.next++
	return s.pending.Doctor, nil
}

func (s *ScriptedChooser) SelectPatient(ctx context.Context, _ []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.pending == nil {
		return "", ErrScriptExhausted
	}
	name := s.pending.Patient
	s.pending = nil
	return name, nil
}

// ConfirmAction pops the next confirmation; with none left it answers yes.
func (s *ScriptedChooser) ConfirmAction(ctx context.Context, _ string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if len(s.confirms) == 0 {
		return true, nil
	}
	ok := s.confirms[0]
	s.confirms = s.confirms[1:]
	return ok, nil
}

// RandomChooser picks uniformly among the offered names. It always confirms.
type RandomChooser struct {
	rng *rand.Rand
}

// NewRandomChooser creates a bot whose choices are reproducible for a seed.
func NewRandomChooser(seed int64) *RandomChooser {
	return &RandomChooser{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomChooser) SelectDoctor(ctx context.Context, names []string) (string, error) {
	return r.pick(ctx, names)
}

func (r *RandomChooser) SelectPatient(ctx context.Context, names []string) (string, error) {
	return r.pick(ctx, names)
}

func (r *RandomChooser) ConfirmAction(ctx context.Context, _ string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RandomChooser) pick(ctx context.Context, names []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", ErrNoOptions
	}
	return names[r.rng.Intn(len(names))], nil
}

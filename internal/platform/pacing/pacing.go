// Package pacing provides the pauses between notifications that give the
// player time to read. Pauses are cosmetic: they never change game state.
package pacing

import (
	"context"
	"fmt"
	"time"
)

// Beat is a kind of pause.
type Beat int

const (
	// BeatShort separates banners (welcome, level start, game end).
	BeatShort Beat = iota
	// BeatTreatment separates an assignment from its result.
	BeatTreatment
	// BeatTurn follows a completed turn.
	BeatTurn
)

// Preset names accepted by ForPreset.
const (
	PresetReal = "real"
	PresetFast = "fast"
	PresetNone = "none"
)

// Pacer sleeps for the duration configured for each beat.
type Pacer struct {
	durations map[Beat]time.Duration
}

// Real returns the full-length pauses used for interactive play.
func Real() *Pacer {
	return &Pacer{durations: map[Beat]time.Duration{
		BeatShort:     1 * time.Second,
		BeatTreatment: 1 * time.Second,
		BeatTurn:      2 * time.Second,
	}}
}

// Fast returns short pauses for demos and autoplay.
func Fast() *Pacer {
	return &Pacer{durations: map[Beat]time.Duration{
		BeatShort:     100 * time.Millisecond,
		BeatTreatment: 50 * time.Millisecond,
		BeatTurn:      100 * time.Millisecond,
	}}
}

// None returns a pacer that never sleeps. Used by tests.
func None() *Pacer {
	return &Pacer{durations: map[Beat]time.Duration{}}
}

// ForPreset resolves a preset by name.
func ForPreset(name string) (*Pacer, error) {
	switch name {
	case PresetReal, "":
		return Real(), nil
	case PresetFast:
		return Fast(), nil
	case PresetNone:
		return None(), nil
	default:
		return nil, fmt.Errorf("unknown pacing preset %q", name)
	}
}

// Duration returns the pause configured for b.
func (p *Pacer) Duration(b Beat) time.Duration {
	return p.durations[b]
}

// Pause sleeps for the beat or until ctx is done, whichever comes first.
func (p *Pacer) Pause(ctx context.Context, b Beat) {
	d := p.durations[b]
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Package engine implements the hospital turn loop.
//
// A Level owns the patient roster of the level being played and the shared
// doctor roster. Each turn pairs one free doctor with one waiting patient,
// treats the patient and advances the Ticker. The level is complete when the
// roster empties and failed when the Ticker runs out first. Game drives the
// levels in order and stops at the first failure.
//
// All player input goes through Chooser and all output through Notifier, so
// the engine can be driven by the console, a bot or a test script.
package engine

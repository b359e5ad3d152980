// Package events provides the session event log for the game.
// It is an in-memory, append-only record of every turn; nothing is persisted.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of a game event.
type EventType string

const (
	EventTypeGameStarted       EventType = "GAME_STARTED"
	EventTypeLevelStarted      EventType = "LEVEL_STARTED"
	EventTypePatientAssigned   EventType = "PATIENT_ASSIGNED"
	EventTypePatientAttended   EventType = "PATIENT_ATTENDED"
	EventTypeDiagnosis         EventType = "DIAGNOSIS"
	EventTypeSelectionRejected EventType = "SELECTION_REJECTED"
	EventTypeTimeTick          EventType = "TIME_TICK"
	EventTypeLevelCompleted    EventType = "LEVEL_COMPLETED"
	EventTypeLevelFailed       EventType = "LEVEL_FAILED"
	EventTypeGameEnded         EventType = "GAME_ENDED"
)

// Actor IDs used by the engine itself.
const (
	ActorSystem = "SYSTEM_HOSPITAL"
	ActorClock  = "SYSTEM_CLOCK"
)

// GameEvent represents an immutable record of an action in the game.
type GameEvent struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`  // Doctor or system actor
	TargetID  string      `json:"target_id"` // Patient, if any
	Payload   interface{} `json:"payload"`
	Level     int         `json:"level"`
}

// Handler reacts to an appended event.
type Handler func(event GameEvent)

// EventLog is the in-memory append-only log of game events.
type EventLog struct {
	mu          sync.RWMutex
	events      []GameEvent
	subscribers map[EventType][]Handler
	catchAll    []Handler
}

// NewEventLog creates an empty event log.
func NewEventLog() *EventLog {
	return &EventLog{
		events:      make([]GameEvent, 0),
		subscribers: make(map[EventType][]Handler),
	}
}

// Subscribe registers h for events of type t.
func (el *EventLog) Subscribe(t EventType, h Handler) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.subscribers[t] = append(el.subscribers[t], h)
}

// SubscribeAll registers h for every event.
func (el *EventLog) SubscribeAll(h Handler) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.catchAll = append(el.catchAll, h)
}

// Append adds a new event to the log and notifies subscribers synchronously.
// Missing ID and Timestamp are filled in.
func (el *EventLog) Append(event GameEvent) GameEvent {
	if event.ID == "" {
		event.ID = GenerateEventID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	el.mu.Lock()
	el.events = append(el.events, event)
	handlers := make([]Handler, 0, len(el.subscribers[event.Type])+len(el.catchAll))
	handlers = append(handlers, el.subscribers[event.Type]...)
	handlers = append(handlers, el.catchAll...)
	el.mu.Unlock()

	// Handlers run outside the lock so they may read the log.
	for _, h := range handlers {
		h(event)
	}
	return event
}

// GetByActor returns all events performed by a specific actor.
func (el *EventLog) GetByActor(actorID string) []GameEvent {
	return el.filter(func(e GameEvent) bool { return e.ActorID == actorID })
}

// GetByLevel returns all events recorded while the given level was active.
func (el *EventLog) GetByLevel(level int) []GameEvent {
	return el.filter(func(e GameEvent) bool { return e.Level == level })
}

// GetByType returns all events of type t.
func (el *EventLog) GetByType(t EventType) []GameEvent {
	return el.filter(func(e GameEvent) bool { return e.Type == t })
}

func (el *EventLog) filter(keep func(GameEvent) bool) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

// Replay returns a copy of the full history in append order.
func (el *EventLog) Replay() []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return append([]GameEvent(nil), el.events...)
}

// Len returns the number of recorded events.
func (el *EventLog) Len() int {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.events)
}

// GenerateEventID creates a unique event identifier.
func GenerateEventID() string {
	return uuid.NewString()
}

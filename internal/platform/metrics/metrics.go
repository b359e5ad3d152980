// Package metrics provides session statistics for the game.
// The collector listens to the event log; the engine never calls it directly.
package metrics

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MRamiBalles/JuegoHospital/server/internal/events"
)

// Collector gathers per-session metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry

	turns            prometheus.Counter
	rejections       *prometheus.CounterVec
	patientsAttended *prometheus.CounterVec
	diagnoses        *prometheus.CounterVec
	levels           *prometheus.CounterVec
	timeRemaining    prometheus.Gauge

	// Plain counters for Snapshot
	turnCount       int64
	rejectionCount  int64
	attendedCount   int64
	levelsCompleted int64
	levelsFailed    int64

	mu        sync.RWMutex
	lastTick  events.TimeTickPayload
	StartTime time.Time
}

// NewCollector creates a collector with all metrics registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		turns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hospital_turns_total",
			Help: "Completed turns (assign + attend).",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hospital_selection_rejections_total",
			Help: "Selections that did not produce a turn.",
		}, []string{"reason"}),
		patientsAttended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hospital_patients_attended_total",
			Help: "Patients attended, by kind.",
		}, []string{"kind"}),
		diagnoses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hospital_diagnoses_total",
			Help: "Specialization diagnoses, by action and result.",
		}, []string{"action", "required"}),
		levels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hospital_levels_total",
			Help: "Finished levels, by outcome.",
		}, []string{"outcome"}),
		timeRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hospital_time_remaining",
			Help: "Time units left in the current level.",
		}),
		StartTime: time.Now(),
	}

	c.registry.MustRegister(c.turns, c.rejections, c.patientsAttended, c.diagnoses, c.levels, c.timeRemaining)
	return c
}

// Attach subscribes the collector to every event of el.
func (c *Collector) Attach(el *events.EventLog) {
	el.SubscribeAll(c.Observe)
}

// Observe updates metrics from one event.
func (c *Collector) Observe(event events.GameEvent) {
	switch event.Type {
	case events.EventTypePatientAttended:
		kind := "unknown"
		if p, ok := event.Payload.(events.AssignmentPayload); ok {
			kind = string(p.PatientKind)
		}
		c.patientsAttended.WithLabelValues(kind).Inc()
		atomic.AddInt64(&c.attendedCount, 1)

	case events.EventTypeDiagnosis:
		if p, ok := event.Payload.(events.DiagnosisPayload); ok {
			c.diagnoses.WithLabelValues(string(p.Diagnosis.Action), strconv.FormatBool(p.Diagnosis.Required)).Inc()
		}

	case events.EventTypeSelectionRejected:
		reason := "unknown"
		if p, ok := event.Payload.(events.SelectionRejectedPayload); ok {
			reason = string(p.Reason)
		}
		c.rejections.WithLabelValues(reason).Inc()
		atomic.AddInt64(&c.rejectionCount, 1)

	case events.EventTypeTimeTick:
		c.turns.Inc()
		atomic.AddInt64(&c.turnCount, 1)
		if p, ok := event.Payload.(events.TimeTickPayload); ok {
			c.timeRemaining.Set(float64(p.Remaining))
			c.mu.Lock()
			c.lastTick = p
			c.mu.Unlock()
		}

	case events.EventTypeLevelStarted:
		if p, ok := event.Payload.(events.LevelStartedPayload); ok {
			c.timeRemaining.Set(float64(p.TimeBudget))
		}

	case events.EventTypeLevelCompleted:
		c.levels.WithLabelValues("completed").Inc()
		atomic.AddInt64(&c.levelsCompleted, 1)

	case events.EventTypeLevelFailed:
		c.levels.WithLabelValues("failed").Inc()
		atomic.AddInt64(&c.levelsFailed, 1)
	}
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"uptime_seconds":      time.Since(c.StartTime).Seconds(),
		"turns":               atomic.LoadInt64(&c.turnCount),
		"rejections":          atomic.LoadInt64(&c.rejectionCount),
		"patients_attended":   atomic.LoadInt64(&c.attendedCount),
		"levels_completed":    atomic.LoadInt64(&c.levelsCompleted),
		"levels_failed":       atomic.LoadInt64(&c.levelsFailed),
		"last_time_remaining": c.lastTick.Remaining,
	}
}

// WriteTextfile writes the metrics in Prometheus text format, for the
// node_exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

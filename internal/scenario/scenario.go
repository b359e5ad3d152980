// Package scenario runs scripted games end to end and checks their outcome.
// It backs the test-runner binary: a quick smoke test of the level table and
// the engine without a human at the keyboard.
package scenario

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MRamiBalles/JuegoHospital/server/internal/console"
	"github.com/MRamiBalles/JuegoHospital/server/internal/engine"
	"github.com/MRamiBalles/JuegoHospital/server/internal/events"
	"github.com/MRamiBalles/JuegoHospital/server/internal/levels"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/logger"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/metrics"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/pacing"
)

// Scenario is one scripted game and what it must produce.
type Scenario struct {
	Name     string
	Input    string
	Table    func() (*levels.Table, error)
	Steps    []console.Step
	Confirms []bool
	Rules    engine.Rules
	Options  engine.Options

	Expect           engine.Result
	ExpectRejections int // -1 skips the check
}

// Result captures the outcome of each scenario.
type Result struct {
	ScenarioName string
	Input        string
	Expected     string
	Actual       string
	Passed       bool
	Reason       string
}

// Runner plays scenarios with no pauses. Game output goes to out, which may
// be io.Discard.
type Runner struct {
	scenarios []Scenario
	out       io.Writer
	logger    *logger.Logger
}

func NewRunner(out io.Writer, log *logger.Logger, scenarios ...Scenario) *Runner {
	return &Runner{scenarios: scenarios, out: out, logger: log}
}

// Run plays every scenario in order.
func (r *Runner) Run(ctx context.Context) []Result {
	results := make([]Result, 0, len(r.scenarios))
	for _, sc := range r.scenarios {
		results = append(results, r.runOne(ctx, sc))
	}
	return results
}

func (r *Runner) runOne(ctx context.Context, sc Scenario) Result {
	res := Result{
		ScenarioName: sc.Name,
		Input:        sc.Input,
		Expected:     describe(sc.Expect),
	}

	table, err := sc.Table()
	if err != nil {
		res.Reason = "level table: " + err.Error()
		return res
	}

	rules := sc.Rules
	if rules == (engine.Rules{}) {
		rules = engine.DefaultRules()
	}

	el := events.NewEventLog()
	collector := metrics.NewCollector()
	collector.Attach(el)

	ports := engine.Ports{
		Chooser:  console.NewScriptedChooser(sc.Steps, sc.Confirms...),
		Notifier: console.NewView(r.out),
		Pacer:    pacing.None(),
	}

	r.logger.Info("Scenario: " + sc.Name)
	got, err := engine.NewGame(table, ports, rules, sc.Options, el, r.logger).Run(ctx)
	res.Actual = describe(got)
	if err != nil {
		res.Actual += " (error: " + err.Error() + ")"
		res.Reason = "game aborted: " + err.Error()
		return res
	}

	if got != sc.Expect {
		res.Reason = "unexpected result"
		return res
	}

	if sc.ExpectRejections >= 0 {
		rejections := collector.Snapshot()["rejections"].(int64)
		if rejections != int64(sc.ExpectRejections) {
			res.Reason = fmt.Sprintf("expected %d rejected selections, got %d", sc.ExpectRejections, rejections)
			return res
		}
	}

	res.Passed = true
	res.Reason = "ok"
	return res
}

func describe(r engine.Result) string {
	switch {
	case r.FailedLevel > 0:
		return fmt.Sprintf("falla en nivel %d tras %d completados", r.FailedLevel, r.LevelsCompleted)
	case r.Quit:
		return fmt.Sprintf("abandono tras %d completados", r.LevelsCompleted)
	default:
		return fmt.Sprintf("%d niveles completados", r.LevelsCompleted)
	}
}

// Report prints a summary of results and returns how many failed.
func Report(w io.Writer, results []Result) int {
	failed := 0
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "📊 RESUMEN DE ESCENARIOS")
	fmt.Fprintln(w, rule)
	for _, r := range results {
		mark := "✅"
		if !r.Passed {
			mark = "❌"
			failed++
		}
		fmt.Fprintf(w, "%s %s\n", mark, r.ScenarioName)
		fmt.Fprintf(w, "   Entrada:  %s\n", r.Input)
		fmt.Fprintf(w, "   Esperado: %s\n", r.Expected)
		fmt.Fprintf(w, "   Obtenido: %s\n", r.Actual)
		if !r.Passed {
			fmt.Fprintf(w, "   Motivo:   %s\n", r.Reason)
		}
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "   ✅ Pasados: %d\n", len(results)-failed)
	fmt.Fprintf(w, "   ❌ Fallidos: %d\n", failed)
	return failed
}

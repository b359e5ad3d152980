// Package main is the entry point for the Juego del Hospital console game.
// It only handles dependency injection and wiring.
// NO business logic belongs here.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MRamiBalles/JuegoHospital/server/internal/console"
	"github.com/MRamiBalles/JuegoHospital/server/internal/engine"
	"github.com/MRamiBalles/JuegoHospital/server/internal/events"
	"github.com/MRamiBalles/JuegoHospital/server/internal/levels"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/config"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/logger"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/metrics"
	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/pacing"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "hospital",
		Short:        "Juego del Hospital: atiende a todos los pacientes antes de que se acabe el tiempo",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("levels", "", "YAML level table (overrides LEVELS_FILE)")
	rootCmd.PersistentFlags().String("pacing", "", "pause preset: real, fast or none (overrides PACING)")
	rootCmd.PersistentFlags().String("metrics-file", "", "write Prometheus metrics here on exit (overrides METRICS_FILE)")

	rootCmd.AddCommand(playCmd())
	rootCmd.AddCommand(autoplayCmd())
	rootCmd.AddCommand(levelsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds everything the subcommands share.
type app struct {
	cfg       *config.Config
	logger    *logger.Logger
	table     *levels.Table
	pacer     *pacing.Pacer
	collector *metrics.Collector
}

func bootstrap(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("levels"); v != "" {
		cfg.LevelsFile = v
	}
	if v, _ := flags.GetString("pacing"); v != "" {
		cfg.Pacing = v
	}
	if v, _ := flags.GetString("metrics-file"); v != "" {
		cfg.MetricsFile = v
	}

	appLogger := logger.NewLogger(cfg.LogLevel, logger.Format(cfg.LogFormat))

	table, err := loadTable(cfg.LevelsFile)
	if err != nil {
		return nil, err
	}
	appLogger.Info(fmt.Sprintf("Level table loaded: %d levels, %d doctors", table.Len(), len(table.Doctors)))

	pacer, err := pacing.ForPreset(cfg.Pacing)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    appLogger,
		table:     table,
		pacer:     pacer,
		collector: metrics.NewCollector(),
	}, nil
}

func loadTable(path string) (*levels.Table, error) {
	if path == "" {
		return levels.Default()
	}
	return levels.Load(path)
}

func (a *app) rules() engine.Rules {
	return engine.Rules{TurnCost: a.cfg.TurnCost, DefaultTimeBudget: a.cfg.LevelTimeBudget}
}

// newGame wires one game. Each game gets its own event log.
func (a *app) newGame(chooser engine.Chooser, out io.Writer) *engine.Game {
	eventLog := events.NewEventLog()
	a.collector.Attach(eventLog)

	ports := engine.Ports{
		Chooser:  chooser,
		Notifier: console.NewView(out),
		Pacer:    a.pacer,
	}
	opts := engine.Options{ConfirmLevels: a.cfg.ConfirmLevels}
	return engine.NewGame(a.table, ports, a.rules(), opts, eventLog, a.logger)
}

func (a *app) flushMetrics() {
	if a.cfg.MetricsFile == "" {
		return
	}
	if err := a.collector.WriteTextfile(a.cfg.MetricsFile); err != nil {
		a.logger.Error("Failed to write metrics: " + err.Error())
		return
	}
	a.logger.Info("Metrics written to " + a.cfg.MetricsFile)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play interactively in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.flushMetrics()

			ctx, stop := signalContext()
			defer stop()

			prompter := console.NewPrompter(os.Stdin, os.Stdout, a.cfg.YesToken)
			res, err := a.newGame(prompter, os.Stdout).Run(ctx)
			if err != nil {
				return err
			}
			a.logger.Info(fmt.Sprintf("Game over: %d levels completed, failed level %d, quit %t",
				res.LevelsCompleted, res.FailedLevel, res.Quit))
			return nil
		},
	}
}

func autoplayCmd() *cobra.Command {
	var (
		seed     int64
		sessions int
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:   "autoplay",
		Short: "Let a random bot play one or more games",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sessions < 1 {
				return fmt.Errorf("--sessions must be at least 1, got %d", sessions)
			}
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.flushMetrics()

			ctx, stop := signalContext()
			defer stop()

			var out io.Writer = os.Stdout
			if quiet {
				out = io.Discard
			}

			won := 0
			for i := 0; i < sessions; i++ {
				bot := console.NewRandomChooser(seed + int64(i))
				res, err := a.newGame(bot, out).Run(ctx)
				if err != nil {
					return fmt.Errorf("session %d: %w", i+1, err)
				}
				if res.Won(a.table.Len()) {
					won++
				}
				fmt.Printf("Partida %d: %d niveles completados", i+1, res.LevelsCompleted)
				if res.FailedLevel > 0 {
					fmt.Printf(", perdida en el nivel %d", res.FailedLevel)
				}
				fmt.Println()
			}

			snap := a.collector.Snapshot()
			fmt.Printf("\nGanadas: %d/%d  Turnos: %d  Pacientes atendidos: %d\n",
				won, sessions, snap["turns"], snap["patients_attended"])
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 1, "seed for the first session; session i uses seed+i")
	cmd.Flags().IntVar(&sessions, "sessions", 1, "number of games to play")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "hide the game output, print only the summary")
	return cmd
}

func turnsLabel(turns int) string {
	if turns < 0 {
		return "turnos ilimitados"
	}
	return fmt.Sprintf("%d turnos disponibles", turns)
}

func levelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "Print the level table",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}

			fmt.Println("Doctores:")
			for _, d := range a.table.Doctors {
				fmt.Printf("  %s (%s, %s)\n", d.Name, d.Specialty, d.Experience)
			}
			rules := a.rules()
			for _, def := range a.table.Levels {
				budget := rules.BudgetFor(def)
				fmt.Printf("\nNivel %d: %d unidades de tiempo, %s\n", def.Number, budget, turnsLabel(rules.TurnsFor(budget)))
				for _, p := range def.Build() {
					fmt.Printf("  - %s [%s, %s]\n", p.Name(), p.Kind(), p.Urgency())
				}
			}
			return nil
		},
	}
}

// Package main - test-runner
// Executable to run the scripted game scenarios.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MRamiBalles/JuegoHospital/server/internal/platform/logger"
	"github.com/MRamiBalles/JuegoHospital/server/internal/scenario"
)

func main() {
	fmt.Println("🏥 JUEGO DEL HOSPITAL - SCENARIO TEST SUITE")
	fmt.Println("===========================================")

	var out io.Writer = io.Discard
	if len(os.Args) > 1 && os.Args[1] == "-v" {
		out = os.Stdout
	}

	runner := scenario.NewRunner(out, logger.NewLogger("warn", logger.FormatConsole), scenario.Builtin()...)
	results := runner.Run(context.Background())

	if failed := scenario.Report(os.Stdout, results); failed > 0 {
		fmt.Println("\n⚠️  El motor no se comporta como se espera")
		os.Exit(1)
	}
	fmt.Println("\n✅ Todos los escenarios pasaron")
}

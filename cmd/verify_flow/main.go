package main

import (
	"log"
	"os"

	"greenwich/internal/runner"
	"greenwich/internal/scenario"
)

// Runs the denied flow and the granted dashboard back to back. Each
// scenario gets its own browser session; a failure in one does not
// stop the next.
func main() {
	logger := log.New(os.Stdout, "[verify_flow] ", log.LstdFlags|log.Lmicroseconds)

	names := []string{"location-flow-denied", "location-dashboard"}
	failed := 0
	for _, name := range names {
		cfg, ok := scenario.Builtin(name)
		if !ok {
			logger.Fatalf("built-in scenario %s is missing", name)
		}
		out, err := runner.Run(cfg, runner.Options{Headless: true})
		if err != nil {
			logger.Printf("%s failed: %v", name, err)
			failed++
			continue
		}
		logger.Printf("%s passed, screenshot at %s", name, out.Screenshot)
	}

	if failed > 0 {
		logger.Printf("%d of %d scenarios failed", failed, len(names))
		os.Exit(1)
	}
	logger.Println("Flow verification complete.")
}

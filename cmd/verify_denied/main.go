package main

import (
	"log"
	"os"

	"greenwich/internal/runner"
	"greenwich/internal/scenario"
)

// Checks that the location access prompt is shown when no geolocation
// grant is in place, and captures the proof screenshot.
func main() {
	logger := log.New(os.Stdout, "[verify_denied] ", log.LstdFlags|log.Lmicroseconds)

	cfg, ok := scenario.Builtin("permission-denied")
	if !ok {
		logger.Fatal("built-in scenario permission-denied is missing")
	}

	out, err := runner.Run(cfg, runner.Options{Headless: true})
	if err != nil {
		logger.Fatalf("run failed: %v", err)
	}
	logger.Printf("Captured %s (%d/%d steps)", out.Screenshot, out.StepsCompleted, out.StepsTotal)
}

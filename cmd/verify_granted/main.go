package main

import (
	"log"
	"os"

	"greenwich/internal/runner"
	"greenwich/internal/scenario"
)

// Grants geolocation, logs in as admin, opens the locations dashboard
// and captures the rendered map.
func main() {
	logger := log.New(os.Stdout, "[verify_granted] ", log.LstdFlags|log.Lmicroseconds)

	cfg, ok := scenario.Builtin("location-dashboard")
	if !ok {
		logger.Fatal("built-in scenario location-dashboard is missing")
	}

	out, err := runner.Run(cfg, runner.Options{Headless: true})
	if err != nil {
		logger.Fatalf("run failed: %v", err)
	}
	logger.Printf("Captured %s (%d/%d steps)", out.Screenshot, out.StepsCompleted, out.StepsTotal)
}

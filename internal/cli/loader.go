package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"greenwich/internal/scenario"
)

// resolveScenario maps a command-line argument to a scenario config.
// Built-in names win; anything that looks like a YAML path or exists
// on disk is loaded from file.
func resolveScenario(arg string) (*scenario.Config, error) {
	if cfg, ok := scenario.Builtin(arg); ok {
		return cfg, nil
	}
	ext := filepath.Ext(arg)
	if ext == ".yaml" || ext == ".yml" {
		return scenario.Load(arg)
	}
	if _, err := os.Stat(arg); err == nil {
		return scenario.Load(arg)
	}
	return nil, fmt.Errorf("unknown scenario %q (not a built-in and no such file)", arg)
}

package config

import (
	"fmt"
	"os"

	"github.com/ShamarKellman/power-tranz/internal/core/cardrules"
)

// BuildRuleset builds the network table: the predefined networks, or
// the JSON table at RulesFile when set. Any configuration error is
// returned as is so callers can treat it as fatal.
func (c *Config) BuildRuleset() (*cardrules.Ruleset, error) {
	if c.RulesFile == "" {
		return cardrules.DefaultRuleset()
	}

	f, err := os.Open(c.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("could not open rules file '%s': %w", c.RulesFile, err)
	}
	defer f.Close()

	configs, err := cardrules.LoadConfigs(f)
	if err != nil {
		return nil, fmt.Errorf("rules file '%s': %w", c.RulesFile, err)
	}
	return cardrules.NewRuleset(configs...)
}

package sched

import (
	"fmt"
	"os"
	"strings"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml
type Config struct {
	Policy    string `yaml:"policy"`     // fcfs | sjf | priority
	TestCase  int    `yaml:"test_case"`  // canned self-test scenario selector
	TracePath string `yaml:"trace_path"` // optional CSV event trace output
	Debug     bool   `yaml:"debug"`      // enable kernel debug logging
}

// If the config file is not found, we use default values
func defaultConfig() Config {
	return Config{
		Policy:   "fcfs",
		TestCase: 0,
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = yaml.Unmarshal(data, &cfg)

	// sanity clamps
	if cfg.Policy == "" {
		cfg.Policy = "fcfs"
	}
	if cfg.TestCase < 0 {
		cfg.TestCase = 0
	}

	return cfg
}

// ParsePolicy maps a config policy name onto its tag. An unknown name is
// a configuration error, reported rather than asserted: it comes from
// the environment, not from kernel logic.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(name) {
	case "fcfs":
		return FCFS, nil
	case "sjf":
		return SJF, nil
	case "priority":
		return Priority, nil
	default:
		return 0, fmt.Errorf("unknown scheduling policy %q", name)
	}
}

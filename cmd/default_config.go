package cmd

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gatesim/gatesim/sim"
	"github.com/gatesim/gatesim/sim/batch"
)

// SimulationSection holds the engine parameters in the config file.
type SimulationSection struct {
	MaxIterations int  `yaml:"max_iterations"`
	TrailingRow   bool `yaml:"trailing_row"`
}

// FilesSection names the files of a test case.
type FilesSection struct {
	Netlist        string `yaml:"netlist"`
	Stimulus       string `yaml:"stimulus"`
	ZeroDelayTrace string `yaml:"zero_delay_trace"`
	UnitDelayTrace string `yaml:"unit_delay_trace"`
}

// BatchSection configures the batch command.
type BatchSection struct {
	Workers int `yaml:"workers"` // 0 = GOMAXPROCS
}

// Config represents the full config file structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Simulation SimulationSection `yaml:"simulation"`
	Files      FilesSection      `yaml:"files"`
	Batch      BatchSection      `yaml:"batch"`
}

// DefaultFileConfig returns the values used for anything the config file
// does not set.
func DefaultFileConfig() Config {
	def := sim.DefaultConfig()
	l := batch.DefaultLayout()
	return Config{
		Simulation: SimulationSection{
			MaxIterations: def.MaxIterations,
			TrailingRow:   def.TrailingRow,
		},
		Files: FilesSection{
			Netlist:        l.Netlist,
			Stimulus:       l.Stimulus,
			ZeroDelayTrace: l.ZeroDelayTrace,
			UnitDelayTrace: l.UnitDelayTrace,
		},
	}
}

// LoadConfig parses the YAML config file at path on top of the defaults.
// Uses strict field checking: typos must cause errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultFileConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config file")
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(err, "parsing config file %s", path)
	}
	return cfg, nil
}

// SimConfig returns the engine configuration.
func (c Config) SimConfig() sim.Config {
	return sim.NewConfig(c.Simulation.MaxIterations, c.Simulation.TrailingRow)
}

// Layout returns the test-case file layout.
func (c Config) Layout() batch.Layout {
	return batch.Layout{
		Netlist:        c.Files.Netlist,
		Stimulus:       c.Files.Stimulus,
		ZeroDelayTrace: c.Files.ZeroDelayTrace,
		UnitDelayTrace: c.Files.UnitDelayTrace,
	}
}

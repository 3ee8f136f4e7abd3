package adbscan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tuning parameters for one ensemble fit.
type Config struct {
	// Eps is the neighborhood radius of the density primitive, in the same
	// units as the point coordinates.
	Eps float64 `yaml:"eps"`

	// MinSamples is the neighborhood weight required for a point to be a
	// core point, the point itself included. It applies to the full dataset;
	// each draw scales it down by SampleFraction (floored at 1) so the
	// subsample keeps comparable detection sensitivity.
	MinSamples int `yaml:"minSamples"`

	// SampleFraction is the proportion of the dataset clustered in each
	// draw, in (0, 1]. With 1.0 every draw sees the whole dataset.
	SampleFraction float64 `yaml:"sampleFraction"`

	// Reps is the number of ensemble repetitions.
	Reps int `yaml:"reps"`

	// VoteThreshold is the minimum vote share a point's winning label needs
	// to survive into the final labels; anything below is demoted to Noise.
	VoteThreshold float64 `yaml:"voteThreshold"`

	// Parallelism bounds the alignment stage's worker count. Draws are
	// always sequential regardless of this setting; see Parallelism.
	Parallelism Parallelism `yaml:"parallelism"`

	// KeepSolutions retains the per-repetition and aligned label matrices
	// on the Result for inspection. Off by default to save memory.
	KeepSolutions bool `yaml:"keepSolutions"`
}

// DefaultConfig returns the baseline configuration: 10% draws, 100
// repetitions, 0.9 vote threshold, sequential execution. Eps and MinSamples
// have no sensible defaults and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		SampleFraction: 0.1,
		Reps:           100,
		VoteThreshold:  0.9,
		Parallelism:    Sequential(),
	}
}

// Validate checks every field range and reports the first violation.
func (c Config) Validate() error {
	if c.Eps <= 0 {
		return fmt.Errorf("eps must be > 0, got %g", c.Eps)
	}
	if c.MinSamples < 1 {
		return fmt.Errorf("minSamples must be >= 1, got %d", c.MinSamples)
	}
	if c.SampleFraction <= 0 || c.SampleFraction > 1 {
		return fmt.Errorf("sampleFraction must be in (0, 1], got %g", c.SampleFraction)
	}
	if c.Reps < 1 {
		return fmt.Errorf("reps must be >= 1, got %d", c.Reps)
	}
	if c.VoteThreshold < 0 || c.VoteThreshold > 1 {
		return fmt.Errorf("voteThreshold must be in [0, 1], got %g", c.VoteThreshold)
	}
	return nil
}

// LoadConfig loads a Config from a YAML file. Fields absent from the file
// keep the DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &config, nil
}

// UnmarshalYAML accepts "sequential", "all", or a positive worker count.
func (p *Parallelism) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!int" {
		var n int
		if err := value.Decode(&n); err != nil {
			return fmt.Errorf("parsing parallelism: %w", err)
		}
		if n < 1 {
			return fmt.Errorf("parallelism worker count must be >= 1, got %d", n)
		}
		*p = Workers(n)
		return nil
	}

	var mode string
	if err := value.Decode(&mode); err != nil {
		return fmt.Errorf("parsing parallelism: %w", err)
	}
	switch mode {
	case "", "sequential":
		*p = Sequential()
	case "all":
		*p = AllCores()
	default:
		return fmt.Errorf("unknown parallelism mode %q (want \"sequential\", \"all\", or a worker count)", mode)
	}
	return nil
}

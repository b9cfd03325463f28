package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mcpi/internal/montecarlo"
)

const (
	DefaultRepeat    = 1
	DefaultSample    = 1e6
	DefaultGenerator = "pcg"
)

type Config struct {
	Threads   int     `yaml:"threads"`
	Repeat    int     `yaml:"repeat"`
	Sample    float64 `yaml:"sample"`
	Generator string  `yaml:"generator"`
	Seed      uint64  `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Threads:   montecarlo.DefaultThreads(),
		Repeat:    DefaultRepeat,
		Sample:    DefaultSample,
		Generator: DefaultGenerator,
	}
}

func Load(path string) (*Config, error) {
	return Overlay(path, DefaultConfig())
}

// Overlay reads the YAML file at path on top of a copy of base. Keys
// missing from the file keep base's values.
func Overlay(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SampleCount truncates Sample to a whole number of points.
func (c *Config) SampleCount() (uint64, error) {
	return SampleCount(c.Sample)
}

// SampleCount truncates v to a whole number of points. NaN, infinities,
// values below 1 and values that do not fit in a uint64 are rejected.
func SampleCount(v float64) (uint64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 1 {
		return 0, fmt.Errorf("%w: sample count must be at least 1, got %g", montecarlo.ErrInvalidArgument, v)
	}
	if v >= math.MaxUint64 {
		return 0, fmt.Errorf("%w: sample count %g too large", montecarlo.ErrInvalidArgument, v)
	}
	return uint64(v), nil
}

// Run converts the file-level settings into a driver configuration.
func (c *Config) Run() (montecarlo.Config, error) {
	n, err := c.SampleCount()
	if err != nil {
		return montecarlo.Config{}, err
	}
	rc := montecarlo.Config{Threads: c.Threads, Repeat: c.Repeat, Samples: n}
	if err := rc.Validate(); err != nil {
		return montecarlo.Config{}, err
	}
	return rc, nil
}

func (c *Config) Validate() error {
	_, err := c.Run()
	return err
}

// Package config loads benchmark definitions from YAML or JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minthd/minthd/internal/bench"
	"github.com/minthd/minthd/internal/parallel"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("config: unsupported format")

// FileConfig is the top-level structure of a config file.
type FileConfig struct {
	Bench BenchConfig `yaml:"bench" json:"bench"`
}

// BenchConfig holds the benchmark settings.
type BenchConfig struct {
	Executor string      `yaml:"executor" json:"executor"`
	Repeat   int         `yaml:"repeat" json:"repeat"`
	Runs     []RunConfig `yaml:"runs" json:"runs"`
}

// RunConfig describes a single benchmark run.
type RunConfig struct {
	Name    string `yaml:"name" json:"name"`
	Mode    string `yaml:"mode" json:"mode"`
	Length  int    `yaml:"length" json:"length"`
	Workers int    `yaml:"workers" json:"workers"`
}

// Default returns the two reference scenarios: a 2,000,000 element ranged
// fill over 32 workers and a 64 worker uniform fill.
func Default() *FileConfig {
	return &FileConfig{
		Bench: BenchConfig{
			Executor: parallel.GoroutineExecutor,
			Repeat:   1,
			Runs: []RunConfig{
				{Name: "ranged-2m", Mode: string(bench.ModeRanged), Length: 2_000_000, Workers: 32},
				{Name: "uniform-64", Mode: string(bench.ModeUniform), Length: 20_000, Workers: 64},
			},
		},
	}
}

// LoadFile reads a config file, picking the decoder by extension.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config FileConfig
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	return &config, nil
}

// Validate checks the config for values the runner cannot use.
func (f *FileConfig) Validate() error {
	bc := f.Bench

	if _, err := parallel.NewExecutor(bc.Executor); err != nil {
		return fmt.Errorf("bench.executor: %w", err)
	}
	if bc.Repeat < 0 {
		return fmt.Errorf("bench.repeat must be non-negative")
	}
	if len(bc.Runs) == 0 {
		return fmt.Errorf("bench.runs must not be empty")
	}

	for i, rc := range bc.Runs {
		if _, err := bench.ParseMode(rc.Mode); err != nil {
			return fmt.Errorf("bench.runs[%d].mode: %w", i, err)
		}
		if rc.Length < 0 {
			return fmt.Errorf("bench.runs[%d].length must be non-negative", i)
		}
		if rc.Workers < 0 {
			return fmt.Errorf("bench.runs[%d].workers must be non-negative", i)
		}
	}

	return nil
}

// Executor resolves the configured executor.
func (f *FileConfig) Executor() (parallel.Executor, error) {
	return parallel.NewExecutor(f.Bench.Executor)
}

// ToRuns converts the run entries, naming unnamed runs after their position.
func (f *FileConfig) ToRuns() ([]bench.Run, error) {
	runs := make([]bench.Run, 0, len(f.Bench.Runs))
	for i, rc := range f.Bench.Runs {
		mode, err := bench.ParseMode(rc.Mode)
		if err != nil {
			return nil, fmt.Errorf("bench.runs[%d]: %w", i, err)
		}
		name := rc.Name
		if name == "" {
			name = fmt.Sprintf("run-%d", i)
		}
		runs = append(runs, bench.Run{
			Name:    name,
			Mode:    mode,
			Length:  rc.Length,
			Workers: rc.Workers,
		})
	}
	return runs, nil
}

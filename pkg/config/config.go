// Package config loads the YAML run configuration of the community analysis.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-community/pkg/algorithms"
	"github.com/dd0wney/cluso-community/pkg/community"
	"github.com/dd0wney/cluso-community/pkg/edgelist"
	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/logging"
	"github.com/dd0wney/cluso-community/pkg/metrics"
	"github.com/dd0wney/cluso-community/pkg/validation"
)

// InputConfig describes the edge list to load
type InputConfig struct {
	Path           string `yaml:"path"`
	Delimiter      string `yaml:"delimiter"`
	Header         bool   `yaml:"header"`
	SkipSelfLoops  bool   `yaml:"skip_self_loops"`
	AllowSelfLoops bool   `yaml:"allow_self_loops"`
	Duplicates     string `yaml:"duplicates"`
}

// LouvainConfig mirrors community.Options
type LouvainConfig struct {
	Resolution float64 `yaml:"resolution"`
	Tolerance  float64 `yaml:"tolerance"`
	MaxPasses  int     `yaml:"max_passes"`
	MaxSweeps  int     `yaml:"max_sweeps"`
}

// MetricsConfig selects the node metrics stage
type MetricsConfig struct {
	Enabled     bool `yaml:"enabled"`
	Betweenness bool `yaml:"betweenness"`
	Workers     int  `yaml:"workers"`
	TopN        int  `yaml:"top_n"`
}

// OutputConfig says where results go
type OutputConfig struct {
	// Path of the JSON report; a .sz suffix writes snappy framed output.
	// Empty writes the report to stdout.
	Path string `yaml:"path"`
	// MetricsTextfile is a Prometheus textfile collector target
	MetricsTextfile string `yaml:"metrics_textfile"`
	Summary         bool   `yaml:"summary"`
}

// LoggingConfig sets the log level
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Config is the complete run configuration
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Louvain LouvainConfig `yaml:"louvain"`
	Metrics MetricsConfig `yaml:"metrics"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	louvain := community.DefaultOptions()
	return &Config{
		Input: InputConfig{
			Delimiter:  string(edgelist.Whitespace),
			Duplicates: string(graph.CollapseDuplicates),
		},
		Louvain: LouvainConfig{
			Resolution: louvain.Resolution,
			Tolerance:  louvain.Tolerance,
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Betweenness: true,
			TopN:        10,
		},
		Output: OutputConfig{
			Summary: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section and reports all problems at once
func (c *Config) Validate() error {
	v := validation.NewConfigValidator("config")

	v.OneOf("input.delimiter", c.Input.Delimiter, []string{
		string(edgelist.Whitespace), string(edgelist.Tab), string(edgelist.Comma),
	})
	v.OneOf("input.duplicates", c.Input.Duplicates, []string{
		string(graph.CollapseDuplicates), string(graph.AccumulateDuplicates),
	})

	v.NonNegativeFloat("louvain.resolution", c.Louvain.Resolution)
	v.NonNegativeFloat("louvain.tolerance", c.Louvain.Tolerance)
	v.NonNegative("louvain.max_passes", c.Louvain.MaxPasses)
	v.NonNegative("louvain.max_sweeps", c.Louvain.MaxSweeps)

	v.When(c.Metrics.Enabled, func(v *validation.ConfigValidator) {
		v.NonNegative("metrics.workers", c.Metrics.Workers)
		v.Positive("metrics.top_n", c.Metrics.TopN)
	})

	v.Custom("logging.level", func() error {
		_, err := logging.ParseLevel(c.Logging.Level)
		return err
	})

	return v.Validate()
}

// EdgeListOptions converts the input section for edgelist.Read
func (c *Config) EdgeListOptions() edgelist.Options {
	return edgelist.Options{
		Delimiter:     edgelist.Delimiter(c.Input.Delimiter),
		Header:        c.Input.Header,
		SkipSelfLoops: c.Input.SkipSelfLoops,
		Build: graph.BuildOptions{
			AllowSelfLoops: c.Input.AllowSelfLoops,
			Duplicates:     graph.DuplicatePolicy(c.Input.Duplicates),
		},
	}
}

// LouvainOptions converts the louvain section for community.DetectCommunities
func (c *Config) LouvainOptions(logger logging.Logger, reg *metrics.Registry) community.Options {
	return community.Options{
		Resolution: c.Louvain.Resolution,
		Tolerance:  c.Louvain.Tolerance,
		MaxPasses:  c.Louvain.MaxPasses,
		MaxSweeps:  c.Louvain.MaxSweeps,
		Logger:     logger,
		Metrics:    reg,
	}
}

// CollectOptions converts the metrics section for algorithms.Collect
func (c *Config) CollectOptions(logger logging.Logger, reg *metrics.Registry) algorithms.CollectOptions {
	return algorithms.CollectOptions{
		Workers:         c.Metrics.Workers,
		SkipBetweenness: !c.Metrics.Betweenness,
		Logger:          logger,
		Metrics:         reg,
	}
}

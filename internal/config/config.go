// Package config holds the engine's operational settings, loadable from a
// YAML file with sensible defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gioe/quotient/internal/blueprint"
	"github.com/gioe/quotient/internal/selection"
	"github.com/gioe/quotient/internal/stopping"
)

// Config is the full engine configuration.
type Config struct {
	Selection SelectionConfig `yaml:"selection"`
	Stopping  StoppingConfig  `yaml:"stopping"`
	Domains   []DomainConfig  `yaml:"domains"`
}

// SelectionConfig mirrors selection.Config for YAML.
type SelectionConfig struct {
	TopK          int     `yaml:"top_k"`
	SoftTolerance float64 `yaml:"soft_tolerance"`
}

// StoppingConfig mirrors stopping.Config for YAML.
type StoppingConfig struct {
	MinItems           int     `yaml:"min_items"`
	MaxItems           int     `yaml:"max_items"`
	SEThreshold        float64 `yaml:"se_threshold"`
	BalanceWaiverItems int     `yaml:"balance_waiver_items"`
	StabilityDelta     float64 `yaml:"stability_delta"`
	StabilitySEMargin  float64 `yaml:"stability_se_margin"`
}

// DomainConfig mirrors blueprint.Domain for YAML.
type DomainConfig struct {
	Tag         string  `yaml:"tag"`
	Name        string  `yaml:"name"`
	TargetShare float64 `yaml:"target_share"`
	MinItems    int     `yaml:"min_items"`
}

// Default returns the standard configuration: default thresholds over the
// six-domain cognitive blueprint.
func Default() Config {
	sel := selection.DefaultConfig()
	stop := stopping.DefaultConfig()

	var domains []DomainConfig
	for _, d := range blueprint.DefaultDomains() {
		domains = append(domains, DomainConfig{
			Tag:         d.Tag,
			Name:        d.Name,
			TargetShare: d.TargetShare,
			MinItems:    d.MinItems,
		})
	}

	return Config{
		Selection: SelectionConfig{
			TopK:          sel.TopK,
			SoftTolerance: sel.SoftTolerance,
		},
		Stopping: StoppingConfig{
			MinItems:           stop.MinItems,
			MaxItems:           stop.MaxItems,
			SEThreshold:        stop.SEThreshold,
			BalanceWaiverItems: stop.BalanceWaiverItems,
			StabilityDelta:     stop.StabilityDelta,
			StabilitySEMargin:  stop.StabilitySEMargin,
		},
		Domains: domains,
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the full configuration by constructing each component's
// validated form.
func (c Config) Validate() error {
	if _, err := c.Registry(); err != nil {
		return err
	}
	if _, err := stopping.New(blueprint.MustDefault(), c.StoppingConfig()); err != nil {
		return err
	}
	if c.Selection.TopK < 1 {
		return fmt.Errorf("selection top_k must be >= 1, got %d", c.Selection.TopK)
	}
	return nil
}

// Registry builds the validated blueprint registry.
func (c Config) Registry() (*blueprint.Registry, error) {
	domains := make([]blueprint.Domain, len(c.Domains))
	for i, d := range c.Domains {
		domains[i] = blueprint.Domain{
			Tag:         d.Tag,
			Name:        d.Name,
			TargetShare: d.TargetShare,
			MinItems:    d.MinItems,
		}
	}
	return blueprint.New(domains)
}

// SelectionConfig converts to the selector's config. MaxItems comes from the
// stopping section so the two stay consistent.
func (c Config) SelectionConfig() selection.Config {
	return selection.Config{
		TopK:          c.Selection.TopK,
		SoftTolerance: c.Selection.SoftTolerance,
		MaxItems:      c.Stopping.MaxItems,
	}
}

// StoppingConfig converts to the evaluator's config.
func (c Config) StoppingConfig() stopping.Config {
	return stopping.Config{
		MinItems:           c.Stopping.MinItems,
		MaxItems:           c.Stopping.MaxItems,
		SEThreshold:        c.Stopping.SEThreshold,
		BalanceWaiverItems: c.Stopping.BalanceWaiverItems,
		StabilityDelta:     c.Stopping.StabilityDelta,
		StabilitySEMargin:  c.Stopping.StabilitySEMargin,
	}
}

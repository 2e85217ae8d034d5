package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the rule configuration document.
type Config struct {
	Chores      []Rule           `yaml:"chores,omitempty"`
	Inventory   []Rule           `yaml:"inventory,omitempty"`
	Documents   []Rule           `yaml:"documents,omitempty"`
	Suggestions []Rule           `yaml:"suggestions,omitempty"`
	Heartbeat   *HeartbeatConfig `yaml:"heartbeat,omitempty"`
}

// HeartbeatConfig describes when and how the weekly report is produced.
type HeartbeatConfig struct {
	Schedule string   `yaml:"schedule"`
	Include  []string `yaml:"include"`
	Format   string   `yaml:"format"`
}

// Rules returns every rule tagged with its section, in section order.
func (c *Config) Rules() []Rule {
	sections := map[Category][]Rule{
		CategoryChores:      c.Chores,
		CategoryInventory:   c.Inventory,
		CategoryDocuments:   c.Documents,
		CategorySuggestions: c.Suggestions,
	}
	var out []Rule
	for _, cat := range Categories {
		for _, r := range sections[cat] {
			r.Category = cat
			out = append(out, r)
		}
	}
	return out
}

// LoadConfig reads the rule document at path. A missing file yields an empty
// config and a warning.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("rules: config not found, using empty rules", "path", path)
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	return &cfg, nil
}

// Load reads the rule document at path and flattens it into a rule list.
func Load(path string) ([]Rule, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	rules := cfg.Rules()
	slog.Debug("rules: loaded", "path", path, "count", len(rules))
	return rules, nil
}

// Package config loads the optimize CLI's configuration from a YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/sullivanja92/dfs-lineup-optimizer/pkg/dataset"
)

// TeamBound is one configured team player bound.
type TeamBound struct {
	Team string `mapstructure:"team"`
	Min  *int   `mapstructure:"min"`
	Max  *int   `mapstructure:"max"`
}

// Constraints mirrors the optimizer's user-constraint surface in config
// form; empty fields add nothing.
type Constraints struct {
	OnlyTeams      []string    `mapstructure:"only_teams"`
	ExcludeTeams   []string    `mapstructure:"exclude_teams"`
	IncludePlayers []string    `mapstructure:"include_players"`
	ExcludePlayers []string    `mapstructure:"exclude_players"`
	TeamBounds     []TeamBound `mapstructure:"team_bounds"`
	MaxSalary      int         `mapstructure:"max_salary"`
	MinSalary      int         `mapstructure:"min_salary"`
	GameSlate      string      `mapstructure:"game_slate"`
}

// Config is the optimize CLI's full configuration.
type Config struct {
	Site            string                `mapstructure:"site"`
	ProjectionsPath string                `mapstructure:"projections_path"`
	OutputPath      string                `mapstructure:"output_path"`
	LogLevel        string                `mapstructure:"log_level"`
	Development     bool                  `mapstructure:"development"`
	Columns         dataset.ColumnMapping `mapstructure:"columns"`
	Constraints     Constraints           `mapstructure:"constraints"`
}

// Load reads the configuration file at path, falling back to
// dfs-optimizer.yaml in the working directory, with DFS_-prefixed
// environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("dfs-optimizer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("DFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("site", "draftkings")
	v.SetDefault("log_level", "info")
	v.SetDefault("columns", map[string]string{})

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{Columns: dataset.DefaultColumnMapping()}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyColumnDefaults(&cfg.Columns)

	if cfg.ProjectionsPath == "" {
		return nil, fmt.Errorf("projections_path is required")
	}
	return cfg, nil
}

// applyColumnDefaults fills unmapped columns with the conventional names
// so a config file only has to declare the columns it renames.
func applyColumnDefaults(m *dataset.ColumnMapping) {
	defaults := dataset.DefaultColumnMapping()
	if m.Name == "" {
		m.Name = defaults.Name
	}
	if m.Position == "" {
		m.Position = defaults.Position
	}
	if m.Salary == "" {
		m.Salary = defaults.Salary
	}
	if m.Points == "" {
		m.Points = defaults.Points
	}
	if m.Team == "" {
		m.Team = defaults.Team
	}
	if m.Opponent == "" {
		m.Opponent = defaults.Opponent
	}
	if m.Kickoff == "" {
		m.Kickoff = defaults.Kickoff
	}
}

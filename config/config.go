// Package config loads the scheduler's Config record: viper layered over
// an optional .env file, with typed defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full set of parameters the scheduler core accepts: the
// time-grid shape, the fitness evaluator's consecutive-hours limit
// (MaxConsecutive) and the Evolutionary Engine's GA parameters. The fitness
// penalty weights are not part of it.
type Config struct {
	Days           []string `mapstructure:"days"`
	HoursPerDay    int      `mapstructure:"hours_per_day"`
	MaxConsecutive int      `mapstructure:"max_consecutive"`

	PopulationSize   int     `mapstructure:"population_size"`
	MaxGenerations   int     `mapstructure:"max_generations"`
	MutationRate     float64 `mapstructure:"mutation_rate"`
	ElitismRate      float64 `mapstructure:"elitism_rate"`
	TournamentSize   int     `mapstructure:"tournament_size"`
	EarlyStopFitness float64 `mapstructure:"early_stop_fitness"`
	StagnationWindow int     `mapstructure:"stagnation_window"`
	MutationRateCap  float64 `mapstructure:"mutation_rate_cap"`
}

// Default returns the scheduler's literal default configuration.
func Default() Config {
	return Config{
		Days:             []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
		HoursPerDay:      6,
		MaxConsecutive:   4,
		PopulationSize:   100,
		MaxGenerations:   100,
		MutationRate:     0.02,
		ElitismRate:      0.05,
		TournamentSize:   5,
		EarlyStopFitness: 0.99,
		StagnationWindow: 20,
		MutationRateCap:  0.10,
	}
}

// Load reads an optional .env file and an optional config file (YAML, TOML,
// JSON - anything viper supports) at path, overlays it onto Default(), and
// returns the merged Config. A missing path is not an error: Load then
// returns Default() with only environment-variable overrides applied.
func Load(path string) (Config, error) {
	_ = godotenv.Load() // best-effort; absence of a .env file is not an error

	v := viper.New()
	v.SetEnvPrefix("SCHEDULER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("days", def.Days)
	v.SetDefault("hours_per_day", def.HoursPerDay)
	v.SetDefault("max_consecutive", def.MaxConsecutive)
	v.SetDefault("population_size", def.PopulationSize)
	v.SetDefault("max_generations", def.MaxGenerations)
	v.SetDefault("mutation_rate", def.MutationRate)
	v.SetDefault("elitism_rate", def.ElitismRate)
	v.SetDefault("tournament_size", def.TournamentSize)
	v.SetDefault("early_stop_fitness", def.EarlyStopFitness)
	v.SetDefault("stagnation_window", def.StagnationWindow)
	v.SetDefault("mutation_rate_cap", def.MutationRateCap)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// Option is a functional option for in-process Config construction that
// overrides one or more fields of the Config it is applied to (Apply
// applies options on top of Default).
type Option func(*Config)

// WithPopulationSize overrides PopulationSize.
func WithPopulationSize(n int) Option {
	return func(c *Config) { c.PopulationSize = n }
}

// WithMaxGenerations overrides MaxGenerations.
func WithMaxGenerations(n int) Option {
	return func(c *Config) { c.MaxGenerations = n }
}

// WithMutationRate overrides MutationRate.
func WithMutationRate(r float64) Option {
	return func(c *Config) { c.MutationRate = r }
}

// WithGrid overrides the day/hour grid shape.
func WithGrid(days []string, hoursPerDay int) Option {
	return func(c *Config) {
		c.Days = days
		c.HoursPerDay = hoursPerDay
	}
}

// Apply returns Default() with every opt applied in order.
func Apply(opts ...Option) Config {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

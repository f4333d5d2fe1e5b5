package config

import (
	"os"
	"time"

	"countdown-quiz/internal/app"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		Bank        string `yaml:"bank"`
		Duration    int    `yaml:"duration"`
		Penalty     int    `yaml:"penalty"`
		Tick        string `yaml:"tick"`
		StatusDelay string `yaml:"status_delay"`
	} `yaml:"quiz"`
	Questions struct {
		Dir string `yaml:"dir"`
		TTL string `yaml:"ttl"`
	} `yaml:"questions"`
	Scores struct {
		Record string `yaml:"record"`
	} `yaml:"scores"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// QuizSettings converts the quiz section; unset values fall back to the defaults.
func (c Config) QuizSettings() app.Settings {
	def := app.DefaultSettings()
	return app.Settings{
		BankID:       c.Quiz.Bank,
		Duration:     c.Quiz.Duration,
		Penalty:      c.Quiz.Penalty,
		TickInterval: Duration(c.Quiz.Tick, def.TickInterval),
		StatusDelay:  Duration(c.Quiz.StatusDelay, def.StatusDelay),
	}
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

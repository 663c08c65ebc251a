package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is shared by every command; each one reads the fields it needs.
type Config struct {
	KafkaBrokers []string `env:"BALLOT_KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	KafkaTopic   string   `env:"BALLOT_KAFKA_TOPIC" envDefault:"votes"`
	KafkaGroupID string   `env:"BALLOT_KAFKA_GROUP_ID" envDefault:"ballot-register-group"`

	// Empty disables the Redis mirror.
	RedisURL string `env:"BALLOT_REDIS_URL"`

	HTTPAddr       string        `env:"BALLOT_HTTP_ADDR" envDefault:":8081"`
	StandingsURL   string        `env:"BALLOT_STANDINGS_URL" envDefault:"ws://localhost:8081/ws/standings"`
	ReportInterval time.Duration `env:"BALLOT_REPORT_INTERVAL" envDefault:"5s"`

	MetricsNamespace string `env:"BALLOT_METRICS_NAMESPACE" envDefault:"ballot"`
	MetricsSubsystem string `env:"BALLOT_METRICS_SUBSYSTEM" envDefault:"register"`

	CandidatesFile string   `env:"BALLOT_CANDIDATES_FILE"`
	Candidates     []string `env:"BALLOT_CANDIDATES" envSeparator:","`
	AllowedVoters  []string `env:"BALLOT_ALLOWED_VOTERS" envSeparator:","`

	SimulationInterval time.Duration `env:"BALLOT_SIMULATION_INTERVAL" envDefault:"500ms"`
	SimulationVoters   int           `env:"BALLOT_SIMULATION_VOTERS" envDefault:"1000"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and merges in the candidate seed file, file
// entries first.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.CandidatesFile != "" {
		names, err := LoadCandidates(cfg.CandidatesFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Candidates = append(names, cfg.Candidates...)
	}
	return cfg, nil
}

package config

import "time"

// DetectConfig holds the detection keys of one configuration layer. A nil
// field leaves the lower layer's value in place.
type DetectConfig struct {
	Timeout        *time.Duration `yaml:"timeout" toml:"timeout" json:"timeout"`
	LatencyTimeout *time.Duration `yaml:"latency_timeout" toml:"latency_timeout" json:"latency_timeout"`
	Latency        *bool          `yaml:"latency" toml:"latency" json:"latency"`
}

type ReportConfig struct {
	Color  *string `yaml:"color" toml:"color" json:"color"`
	Format *string `yaml:"format" toml:"format" json:"format"`
}

type Config struct {
	Detect DetectConfig `yaml:"detect" toml:"detect" json:"detect"`
	Report ReportConfig `yaml:"report" toml:"report" json:"report"`
}

// Settings is the fully resolved configuration of the check program.
type Settings struct {
	Timeout        time.Duration
	LatencyTimeout time.Duration
	Latency        bool
	Color          string
	Format         string
}

const (
	DefaultTimeout        = 100 * time.Millisecond
	DefaultLatencyTimeout = time.Second
	MaxTimeout            = 10 * time.Second
)

func DefaultSettings() Settings {
	return Settings{
		Timeout:        DefaultTimeout,
		LatencyTimeout: DefaultLatencyTimeout,
		Latency:        false,
		Color:          "auto",
		Format:         "text",
	}
}

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Mode       string     `yaml:"mode"`
	Generation Generation `yaml:"generation"`
	Streaming  Streaming  `yaml:"streaming"`
	Search     Search     `yaml:"search"`
	Radar      Radar      `yaml:"radar"`
	Sources    Sources    `yaml:"sources"`
	Knowledge  Knowledge  `yaml:"knowledge"`
	Output     Output     `yaml:"output"`
	Server     Server     `yaml:"server"`
	Logging    Logging    `yaml:"logging"`
}

type Generation struct {
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	MaxTokens int    `yaml:"max_tokens"`
}

type Streaming struct {
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

type Search struct {
	Enabled   bool   `yaml:"enabled"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

type Radar struct {
	DaysBack int    `yaml:"days_back"`
	Feeds    []Feed `yaml:"feeds"`
}

type Feed struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

type Sources struct {
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
}

type Knowledge struct {
	Dir string `yaml:"dir"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for gfpd.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "gfpd")
}

// DataDir returns the XDG data directory for gfpd.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "gfpd")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/gfpd/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'gfpd init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Mode: "lowkey",
		Generation: Generation{
			Model:     "claude-sonnet-4-20250514",
			APIKeyEnv: "ANTHROPIC_API_KEY",
			MaxTokens: 8192,
		},
		Streaming: Streaming{
			Model:     "gpt-4o",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Search: Search{
			Enabled:   true,
			Model:     "sonar",
			APIKeyEnv: "PERPLEXITY_API_KEY",
		},
		Radar:   Radar{DaysBack: 7},
		Sources: Sources{FetchTimeoutSeconds: 15},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

// GetKnowledgeDir returns the effective knowledge directory from config or
// its default under the config directory.
func (c *Config) GetKnowledgeDir() string {
	if c.Knowledge.Dir != "" {
		return c.Knowledge.Dir
	}
	return filepath.Join(ConfigDir(), "knowledge")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

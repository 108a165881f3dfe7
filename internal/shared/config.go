package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Client   ClientConfig   `toml:"client"`
	Services ServicesConfig `toml:"services"`
	Log      LogConfig      `toml:"log"`
}

// ClientConfig contains the uploader identity reported to the Music Manager
// endpoints. Empty values are discovered at startup.
type ClientConfig struct {
	UploaderName string `toml:"uploader_name"`
	Hostname     string `toml:"hostname"`
	Address      string `toml:"address"`
}

// ServicesConfig contains the base URLs of the remote service family.
type ServicesConfig struct {
	WebBaseURL string `toml:"web_base_url"`
	SJBaseURL  string `toml:"sj_base_url"`
	AndroidURL string `toml:"android_url"`
	JumperURL  string `toml:"jumper_url"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

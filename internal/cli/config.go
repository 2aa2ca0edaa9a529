package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the tudu.yaml configuration structure.
type Config struct {
	Version string `yaml:"version"`
	Project string `yaml:"project"`

	Database struct {
		Driver         string `yaml:"driver"`
		URL            string `yaml:"url"`
		MaxConnections int    `yaml:"max_connections"`
	} `yaml:"database"`
}

// LoadConfig reads the config file at path, or the first file found among
// the default locations when path is empty. A missing config file is not
// an error; (nil, nil) is returned.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		locations := []string{"tudu.yaml", "tudu.yml", ".tudu.yaml", ".tudu.yml"}
		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
		if path == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Database.Driver == "" {
		config.Database.Driver = "sqlite"
	}
	if config.Database.MaxConnections == 0 {
		config.Database.MaxConnections = 10
	}

	return &config, nil
}

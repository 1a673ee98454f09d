package configuration

import (
	"fmt"
	"os"
	"regexp"

	"pgbot/sources/platform"
	"pgbot/sources/tracing"

	"gopkg.in/yaml.v3"
)

var envPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::([^}]*))?\}`)

// NewYaml reads the configuration from $CONFIG_PATH (default: config.yaml).
func NewYaml(log *tracing.Logger) (*Config, error) {
	defer tracing.ProfilePoint(log, "Configuration loaded", "configuration.load")()

	filePath := platform.Get("CONFIG_PATH", "config.yaml")
	log.I("reading configuration", "path", filePath)

	config, err := Load(filePath)
	if err != nil {
		log.E("failed to load configuration", tracing.InnerError, err, "path", filePath)
		return nil, err
	}

	return config, nil
}

func Load(filePath string) (*Config, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	return Parse(content)
}

// Parse decodes YAML content after expanding ${VAR} and ${VAR:default}.
func Parse(content []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal([]byte(expandEnv(string(content))), &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	config.applyDefaults()

	if err := platform.ValidateCommandPrefix(config.Commands.Prefix); err != nil {
		return nil, fmt.Errorf("invalid commands section: %w", err)
	}
	if config.Commands.MaxInputLength < 0 {
		return nil, fmt.Errorf("invalid commands section: max_input_length must not be negative")
	}

	return &config, nil
}

func expandEnv(content string) string {
	return envPattern.ReplaceAllStringFunc(content, func(match string) string {
		matches := envPattern.FindStringSubmatch(match)
		if value, exists := os.LookupEnv(matches[1]); exists {
			return value
		}
		return matches[2]
	})
}

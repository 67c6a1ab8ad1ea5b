package cli

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	airmd "github.com/goliatone/go-airmd"
)

// LoadConfig overlays the YAML file at path onto airmd.DefaultConfig. A blank
// path returns the defaults.
func LoadConfig(path string) (airmd.Config, error) {
	cfg := airmd.DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads cfg from the YAML file at path, applies defaults, and overlays
// recognized environment variables. An empty path or a missing file starts
// from a zero-value Config before defaulting.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}
	ApplyDefaults(cfg)
	applyEnvOverlay(cfg)
	return cfg, nil
}

func applyEnvOverlay(cfg *Config) {
	if key := os.Getenv("COHERE_API_KEY"); key != "" {
		cfg.Embedding.APIKey = key
	}
	if host := os.Getenv("RAGSEARCH_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("RAGSEARCH_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Server.Port = port
		}
	}
	if origins, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		cfg.Cors.Origins = parseCorsOrigins(origins)
	}
}

// parseCorsOrigins splits a comma-separated origin list; an empty string or
// "*" means every origin is permitted, matching the original collaborator's
// CORS_ORIGINS parsing rule.
func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

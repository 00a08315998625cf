package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFromDir reads {dir}/config.yml (falling back to config.yaml and
// config.json) and returns the parsed Config with ConfigDirectory set.
func LoadFromDir(dir string) (Config, error) {
	for _, name := range []string{"config.yml", "config.yaml", "config.json"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFromPath(path)
		}
	}
	return Config{}, fmt.Errorf("no config.yml, config.yaml, or config.json in %s", dir)
}

// LoadFromPath reads a config file (YAML or JSON) and returns the parsed Config.
// Format is detected by extension (.yaml/.yml → YAML, .json → JSON) or by
// content (first non-whitespace char).
func LoadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	c, err := Load(data, filepath.Ext(path))
	if err != nil {
		return Config{}, err
	}
	c.ConfigDirectory = filepath.Dir(path)
	return c, nil
}

// Load parses config from bytes. ext is the file extension for format hint;
// empty = detect from content.
func Load(data []byte, ext string) (Config, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	var c Config
	switch ext {
	case ".yaml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
		return c, nil
	case ".json":
		if err := json.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("parse config json: %w", err)
		}
		return c, nil
	}
	// Detect: try JSON first (starts with {), else YAML
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("parse config json: %w", err)
		}
		return c, nil
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config yaml: %w", err)
	}
	return c, nil
}

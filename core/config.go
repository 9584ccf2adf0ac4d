package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr       = "127.0.0.1:3000"
	DefaultTitle      = "Lachlan's Blog"
	DefaultAssetsDir  = "assets"
	DefaultStylesheet = "/assets/css/style.css"
)

type Config struct {
	Addr         string `yaml:"addr" json:"addr"`
	Title        string `yaml:"title" json:"title"`
	AssetsDir    string `yaml:"assetsDir" json:"assetsDir"`
	Stylesheet   string `yaml:"stylesheet" json:"stylesheet"`
	DebugHeaders bool   `yaml:"debugHeaders" json:"debugHeaders"`
	DebugLogs    bool   `yaml:"debugLogs" json:"debugLogs"`
	LogFile      string `yaml:"logFile,omitempty" json:"logFile,omitempty"`
	OTLPEndpoint string `yaml:"otlpEndpoint,omitempty" json:"otlpEndpoint,omitempty"`
	// IndexMarkdown, when set, is a markdown file rendered as the index body.
	IndexMarkdown string `yaml:"indexMarkdown,omitempty" json:"indexMarkdown,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Addr:       DefaultAddr,
		Title:      DefaultTitle,
		AssetsDir:  DefaultAssetsDir,
		Stylesheet: DefaultStylesheet,
	}
}

// LoadConfig reads path as YAML on top of DefaultConfig. A missing file is not
// an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.AssetsDir == "" {
		c.AssetsDir = def.AssetsDir
	}
	if c.Stylesheet == "" {
		c.Stylesheet = def.Stylesheet
	}
}

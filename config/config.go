package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Feed     FeedConfig     `json:"feed" yaml:"feed"`
	Content  ContentConfig  `json:"content" yaml:"content"`
	History  HistoryConfig  `json:"history" yaml:"history"`
	Markdown MarkdownConfig `json:"markdown" yaml:"markdown"`
	Filters  FilterConfig   `json:"filters" yaml:"filters"`
}

// FeedConfig holds feed metadata and selection options.
type FeedConfig struct {
	Title    string `json:"title" yaml:"title"`
	BaseURL  string `json:"baseURL" yaml:"baseURL"`   // entry id/link prefix
	Link     string `json:"link" yaml:"link"`         // feed link; defaults to BaseURL
	Top      int    `json:"top" yaml:"top"`           // Default: 20
	Template string `json:"template" yaml:"template"` // empty: feed.xml.in if present, else built-in Atom
}

// ContentConfig locates the documents.
type ContentConfig struct {
	Dir     string `json:"dir" yaml:"dir"`         // Default: "content"
	Pattern string `json:"pattern" yaml:"pattern"` // Default: "*"
}

// HistoryConfig controls how commit history is read.
type HistoryConfig struct {
	Backend      string `json:"backend" yaml:"backend"`           // "gogit" or "gitcli"
	Branch       string `json:"branch" yaml:"branch"`             // empty: HEAD
	RenameDetect string `json:"renameDetect" yaml:"renameDetect"` // "off", "simple" or "aggressive"
}

// MarkdownConfig holds Markdown rendering options.
type MarkdownConfig struct {
	Extensions []string `json:"extensions" yaml:"extensions"` // nil: renderer defaults
}

// FilterConfig holds file path filtering options.
type FilterConfig struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Feed: FeedConfig{
			Title:   "gitfeed",
			BaseURL: "https://example.com/read",
			Top:     20,
		},
		Content: ContentConfig{
			Dir:     "content",
			Pattern: "*",
		},
		History: HistoryConfig{
			Backend:      "gogit",
			RenameDetect: "simple",
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

var defaultNames = []string{".gitfeed.json", ".gitfeed.yaml", ".gitfeed.yml"}

// LoadConfig loads configuration from a file, merging with defaults.
// Environment files in the working directory are loaded first, and GITFEED_*
// variables override file values.
func LoadConfig(path string) (*Config, error) {
	loadEnvFiles(".")

	cfg := DefaultConfig()

	if path == "" {
		path = findDefault()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := decode(path, data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findDefault() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}
	for _, dir := range dirs {
		for _, name := range defaultNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func decode(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

// loadEnvFiles loads .env.local then .env from dir. Variables already set are
// never overwritten, so .env.local wins over .env.
func loadEnvFiles(dir string) {
	for _, name := range []string{".env.local", ".env"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("GITFEED_BASE_URL"); v != "" {
		cfg.Feed.BaseURL = v
	}
	if v := os.Getenv("GITFEED_TITLE"); v != "" {
		cfg.Feed.Title = v
	}
	if v := os.Getenv("GITFEED_TEMPLATE"); v != "" {
		cfg.Feed.Template = v
	}
	if v := os.Getenv("GITFEED_CONTENT_DIR"); v != "" {
		cfg.Content.Dir = v
	}
	if v := os.Getenv("GITFEED_TOP"); v != "" {
		top, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GITFEED_TOP: %w", err)
		}
		cfg.Feed.Top = top
	}
	return nil
}

// SaveConfig saves configuration to a file, as YAML when the name ends in
// .yaml or .yml and JSON otherwise.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

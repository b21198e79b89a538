package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables that override the config file.
const (
	EnvBaseURL = "BLOGSMITH_BASE_URL"
	EnvOutput  = "BLOGSMITH_OUTPUT"
)

type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	BaseURL     string `yaml:"base_url"`
	Language    string `yaml:"language"`
	Author      string `yaml:"author"`
}

// PathsConfig holds directories relative to the site root.
type PathsConfig struct {
	Posts   string `yaml:"posts"`
	Output  string `yaml:"output"`
	Layouts string `yaml:"layouts"`
	Static  string `yaml:"static"`
}

type MarkdownConfig struct {
	// Unsafe passes raw HTML through; nil means the default (true)
	Unsafe    *bool `yaml:"unsafe"`
	HardWraps bool  `yaml:"hard_wraps"`
}

type ProjectConfig struct {
	Site     SiteConfig        `yaml:"site"`
	Paths    PathsConfig       `yaml:"paths"`
	Markdown MarkdownConfig    `yaml:"markdown"`
	Drafts   bool              `yaml:"drafts"`
	Params   map[string]string `yaml:"params"`
	Timeout  string            `yaml:"timeout"`
}

// Default returns the configuration used when blogsmith.yaml is absent.
func Default() *ProjectConfig {
	cfg := &ProjectConfig{}
	cfg.applyDefaults()
	return cfg
}

// Load reads blogsmith.yaml from sourcePath. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, blogsmith.ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %v: %w", configPath, err, blogsmith.ErrInvalidConfig)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault is Load with ErrConfigNotFound replaced by Default().
func LoadOrDefault(sourcePath string) (*ProjectConfig, bool, error) {
	cfg, err := Load(sourcePath)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

func (c *ProjectConfig) applyDefaults() {
	if c.Paths.Posts == "" {
		c.Paths.Posts = blogsmith.DefaultPostsDir
	}
	if c.Paths.Output == "" {
		c.Paths.Output = blogsmith.DefaultOutputDir
	}
	if c.Paths.Layouts == "" {
		c.Paths.Layouts = blogsmith.DefaultLayoutsDir
	}
	if c.Paths.Static == "" {
		c.Paths.Static = blogsmith.DefaultStaticDir
	}
	if c.Site.Language == "" {
		c.Site.Language = blogsmith.DefaultLanguage
	}
	if c.Params == nil {
		c.Params = map[string]string{}
	}
}

// ApplyEnv overrides settings from the environment. getenv is usually os.Getenv.
func (c *ProjectConfig) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvBaseURL); v != "" {
		c.Site.BaseURL = v
	}
	if v := getenv(EnvOutput); v != "" {
		c.Paths.Output = v
	}
}

// UnsafeHTML reports whether raw HTML in markdown is passed through.
func (c *ProjectConfig) UnsafeHTML() bool {
	return c.Markdown.Unsafe == nil || *c.Markdown.Unsafe
}

// TimeoutDuration parses the timeout setting. An empty value means no timeout.
func (c *ProjectConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, blogsmith.ErrInvalidConfig)
	}
	return d, nil
}

// Resolve returns p relative to root unless it is already absolute.
func Resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// SiteInfo converts the site section for rendering.
func (c *ProjectConfig) SiteInfo() blogsmith.SiteInfo {
	params := make(map[string]string, len(c.Params))
	for k, v := range c.Params {
		params[k] = v
	}
	return blogsmith.SiteInfo{
		Title:       c.Site.Title,
		Description: c.Site.Description,
		BaseURL:     c.Site.BaseURL,
		Language:    c.Site.Language,
		Author:      c.Site.Author,
		Params:      params,
	}
}

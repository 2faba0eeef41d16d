// Package deploy provisions a site root: it fetches the source, writes the
// settings, builds the binary, collects static files, migrates the store,
// signals a reload and runs the test suite.
package deploy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRepoURL  = "https://github.com/maksimryndin/tdd.git"
	DefaultSiteRoot = "~/superlists-staging"
	BinaryName      = "superlists"
)

// Config describes one deploy target. Values come from an optional YAML
// manifest and are then overridden by DEPLOY_* environment variables.
type Config struct {
	Target      string `yaml:"target"       env:"DEPLOY_TARGET"`
	RepoURL     string `yaml:"repo_url"     env:"DEPLOY_REPO_URL"`
	SiteRoot    string `yaml:"site_root"    env:"DEPLOY_SITE_ROOT"`
	Environment string `yaml:"environment"  env:"DEPLOY_APP_ENV"`
	TriggerFile string `yaml:"trigger_file" env:"DEPLOY_TRIGGER_FILE"`
	GoBin       string `yaml:"go_bin"       env:"DEPLOY_GO_BIN"`
	GitBin      string `yaml:"git_bin"      env:"DEPLOY_GIT_BIN"`
	SkipTests   bool   `yaml:"skip_tests"   env:"DEPLOY_SKIP_TESTS"`
}

func defaults() Config {
	return Config{
		Target:      "staging",
		RepoURL:     DefaultRepoURL,
		SiteRoot:    DefaultSiteRoot,
		Environment: "staging",
		GoBin:       "go",
		GitBin:      "git",
	}
}

// LoadConfig reads manifestPath (skipped when empty) over the defaults and
// applies environment overrides.
func LoadConfig(manifestPath string) (*Config, error) {
	cfg := defaults()

	if manifestPath != "" {
		b, err := os.ReadFile(manifestPath)
		if err != nil {
			return nil, fmt.Errorf("read manifest: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse manifest %s: %w", manifestPath, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	root, err := expandHome(cfg.SiteRoot)
	if err != nil {
		return nil, err
	}
	cfg.SiteRoot = root

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SiteRoot == "" {
		return fmt.Errorf("site_root is required")
	}
	if c.RepoURL == "" {
		return fmt.Errorf("repo_url is required")
	}
	switch c.Environment {
	case "staging", "production":
	default:
		return fmt.Errorf("environment %q is not staging or production", c.Environment)
	}
	return nil
}

func (c *Config) SourceDir() string     { return filepath.Join(c.SiteRoot, "source") }
func (c *Config) BinPath() string       { return filepath.Join(c.SiteRoot, "bin", BinaryName) }
func (c *Config) StaticDir() string     { return filepath.Join(c.SiteRoot, "static") }
func (c *Config) DatabasePath() string  { return filepath.Join(c.SiteRoot, "database", "db.sqlite3") }
func (c *Config) SecretKeyPath() string { return filepath.Join(c.SiteRoot, "secret_key") }
func (c *Config) EnvFilePath() string   { return filepath.Join(c.SiteRoot, BinaryName+".env") }

func (c *Config) ReloadTrigger() string {
	if c.TriggerFile != "" {
		return c.TriggerFile
	}
	return filepath.Join(c.SiteRoot, "reload.trigger")
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

package deploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// Step is one stage of a deploy.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

type Deployer struct {
	cfg    *Config
	runner Runner
	log    *log.Entry
}

func NewDeployer(cfg *Config, runner Runner) *Deployer {
	return &Deployer{
		cfg:    cfg,
		runner: runner,
		log:    log.WithFields(log.Fields{"target": cfg.Target, "site": cfg.SiteRoot}),
	}
}

// Steps returns the deploy stages in execution order.
func (d *Deployer) Steps() []Step {
	steps := []Step{
		{Name: "source", Run: d.latestSource},
		{Name: "settings", Run: d.updateSettings},
		{Name: "build", Run: d.build},
		{Name: "static", Run: d.collectStatic},
		{Name: "database", Run: d.migrate},
		{Name: "reload", Run: d.reload},
	}
	if !d.cfg.SkipTests {
		steps = append(steps, Step{Name: "test", Run: d.test})
	}
	return steps
}

// Deploy runs every step and stops at the first failure.
func (d *Deployer) Deploy(ctx context.Context) error {
	start := time.Now()
	for _, step := range d.Steps() {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.log.WithField("step", step.Name).Info("running")
		if err := step.Run(ctx); err != nil {
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	d.log.WithField("elapsed", time.Since(start).String()).Info("deployed")
	return nil
}

func (d *Deployer) latestSource(ctx context.Context) error {
	src := d.cfg.SourceDir()
	if _, err := os.Stat(filepath.Join(src, ".git")); err == nil {
		return d.runner.Run(ctx, src, nil, d.cfg.GitBin, "pull")
	}
	if err := os.MkdirAll(d.cfg.SiteRoot, 0o755); err != nil {
		return err
	}
	return d.runner.Run(ctx, d.cfg.SiteRoot, nil, d.cfg.GitBin, "clone", d.cfg.RepoURL, src)
}

func (d *Deployer) updateSettings(context.Context) error {
	created, err := EnsureSecretKey(d.cfg.SecretKeyPath())
	if err != nil {
		return err
	}
	if created {
		d.log.WithField("path", d.cfg.SecretKeyPath()).Info("generated secret key")
	}

	added, err := EnsureLines(d.cfg.EnvFilePath(), d.envLines())
	if err != nil {
		return err
	}
	if len(added) > 0 {
		d.log.WithField("lines", len(added)).Info("updated env file")
	}
	return nil
}

func (d *Deployer) envLines() []string {
	return []string{
		"APP_ENV=" + d.cfg.Environment,
		"SECRET_KEY_FILE=" + d.cfg.SecretKeyPath(),
		"STORE_DRIVER=sqlite",
		"DB_PATH=" + d.cfg.DatabasePath(),
		"STATIC_DIR=" + d.cfg.StaticDir(),
	}
}

func (d *Deployer) build(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(d.cfg.BinPath()), 0o755); err != nil {
		return err
	}
	return d.runner.Run(ctx, d.cfg.SourceDir(), nil, d.cfg.GoBin, "build", "-o", d.cfg.BinPath(), "./cmd/api")
}

func (d *Deployer) collectStatic(ctx context.Context) error {
	return d.runner.Run(ctx, d.cfg.SourceDir(), nil, d.cfg.BinPath(), "collectstatic", d.cfg.StaticDir())
}

func (d *Deployer) migrate(ctx context.Context) error {
	env := []string{"ENV_FILE=" + d.cfg.EnvFilePath()}
	return d.runner.Run(ctx, d.cfg.SiteRoot, env, d.cfg.BinPath(), "migrate")
}

func (d *Deployer) reload(context.Context) error {
	return Touch(d.cfg.ReloadTrigger())
}

func (d *Deployer) test(ctx context.Context) error {
	return d.runner.Run(ctx, d.cfg.SourceDir(), nil, d.cfg.GoBin, "test", "./...")
}

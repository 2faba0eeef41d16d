package main

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/maksimryndin/superlists/config"
	"github.com/maksimryndin/superlists/internal/bootstrap"
	"github.com/maksimryndin/superlists/internal/logging"
	"github.com/maksimryndin/superlists/internal/web"
)

func runMigrate() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.App.Environment, cfg.App.LogLevel)

	applied, err := bootstrap.Migrate(context.Background(), &cfg.Database)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		log.Info("no migrations to apply")
	}
	for _, name := range applied {
		log.WithField("migration", name).Info("applied")
	}
	return nil
}

// runCollectStatic needs no configuration; the assets are embedded.
func runCollectStatic(dir string) error {
	written, err := web.CollectStatic(dir)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"dir": dir, "files": len(written)}).Info("static files collected")
	return nil
}

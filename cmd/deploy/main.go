package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/maksimryndin/superlists/internal/deploy"
	"github.com/maksimryndin/superlists/internal/logging"
)

func main() {
	manifest := flag.String("manifest", "", "YAML deploy manifest (optional)")
	skipTests := flag.Bool("skip-tests", false, "do not run the test suite after deploying")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logging.Setup("development", *level)

	cfg, err := deploy.LoadConfig(*manifest)
	if err != nil {
		log.WithError(err).Fatal("load deploy config")
	}
	if *skipTests {
		cfg.SkipTests = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := deploy.NewDeployer(cfg, deploy.NewExecRunner()).Deploy(ctx); err != nil {
		log.WithError(err).Fatal("deploy failed")
	}
}

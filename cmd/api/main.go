package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

const usage = "usage: superlists [serve | migrate | collectstatic <dir>]"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe()
	case "migrate":
		err = runMigrate()
	case "collectstatic":
		if len(os.Args) < 3 {
			log.Fatal(usage)
		}
		err = runCollectStatic(os.Args[2])
	case "-h", "--help", "help":
		log.Info(usage)
		return
	default:
		log.Fatalf("unknown command: %s\n%s", cmd, usage)
	}

	if err != nil {
		log.WithError(err).Fatalf("%s failed", cmd)
	}
}

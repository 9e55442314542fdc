package main

import (
	"log"
	"os"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/session"
	"github.com/edusuite/campus-console/services/gateway"
	logsvc "github.com/edusuite/campus-console/services/logger"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "CONSOLECTL : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	svcLogger := logsvc.NewRollbarLogger(logger, conf)
	svcLogger.Enable(false) // CLI errors stay local

	store := session.NewStore(conf, svcLogger)
	store.Restore()

	cli := commandLine{
		store: store,
		auth:  gateway.NewClient(conf, store, svcLogger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

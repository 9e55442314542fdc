package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/edusuite/campus-console/apps/console/webui"
	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/session"
	"github.com/edusuite/campus-console/services/gateway"
	logsvc "github.com/edusuite/campus-console/services/logger"
	"github.com/edusuite/campus-console/services/poller"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "CONSOLE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	store := session.NewStore(conf, logger)
	store.Restore()

	api := gateway.NewClient(conf, store, logger)

	feeds := poller.NewRegistry(conf.DiscussionPollInterval, func(classID string) poller.FetchFunc {
		return func(ctx context.Context) ([]campus.DiscussionPost, error) {
			return api.DiscussionByClass(ctx, classID)
		}
	}, logger)

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	// =========================================================================
	// Start Console Service

	server := webui.NewServer(webui.ServerDeps{
		Conf:   conf,
		Logger: logger,
		Store:  store,
		API:    api,
		Feeds:  feeds,
	})

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", s))
	case <-server.Shutdown():
		logger.Info("shutdown requested: Start shutdown...")
	}

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), conf.RequestTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"employee-sync/internal/config"
	"employee-sync/internal/providers/pipefy"
	"employee-sync/internal/snapshot"
)

// extractcards harvests every card of the active phase from Pipefy and
// persists the snapshot JSON the sync jobs consume.
func main() {
	_ = godotenv.Load()

	var out = flag.String("out", "", "snapshot output path (default: CARDS_JSON_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	log := newLogger(cfg.Debug)
	defer log.Sync() //nolint:errcheck
	if err != nil {
		log.Fatalw("configuration error", "err", err)
	}
	path := cfg.CardsJSONFile
	if *out != "" {
		path = *out
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auth := pipefy.NewAuthenticator(cfg.PipefyTokenURL, cfg.PipefyClientID, cfg.PipefyClientSecret, log)
	pf := pipefy.New(cfg.PipefyEndpoint, auth, log)

	cards, err := pf.FetchPhaseCards(ctx, cfg.PhaseActiveID, cfg.PageSize)
	if err != nil {
		log.Fatalw("card harvest failed", "err", err)
	}
	if err := snapshot.Save(path, cards); err != nil {
		log.Fatalw("snapshot save failed", "err", err)
	}
	fmt.Printf("saved %d cards to %s\n", len(cards), path)
}

func newLogger(debug bool) *zap.SugaredLogger {
	if debug {
		return zap.Must(zap.NewDevelopment()).Sugar()
	}
	return zap.Must(zap.NewProduction()).Sugar()
}

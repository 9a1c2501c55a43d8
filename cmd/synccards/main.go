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

	"employee-sync/internal/canonical"
	"employee-sync/internal/config"
	"employee-sync/internal/providers/pipefy"
	"employee-sync/internal/providers/sinergy"
	"employee-sync/internal/snapshot"
	"employee-sync/internal/sync"
)

// synccards reconciles every snapshotted card against the authoritative
// Sinergy record, updating only the fields that drifted.
func main() {
	_ = godotenv.Load()

	var in = flag.String("in", "", "snapshot input path (default: CARDS_JSON_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	log := newLogger(cfg.Debug)
	defer log.Sync() //nolint:errcheck
	if err != nil {
		log.Fatalw("configuration error", "err", err)
	}
	path := cfg.CardsJSONFile
	if *in != "" {
		path = *in
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cards, err := snapshot.Load(path)
	if err != nil {
		log.Fatalw("snapshot load failed", "err", err)
	}

	auth := pipefy.NewAuthenticator(cfg.PipefyTokenURL, cfg.PipefyClientID, cfg.PipefyClientSecret, log)
	pf := pipefy.New(cfg.PipefyEndpoint, auth, log)

	sin := sinergy.New(cfg.SinergyEndpoint, cfg.SinergyUser, cfg.SinergyPass, log)
	sin.ActionByCPF = cfg.SoapActionByCPF
	sin.ActionActive = cfg.SoapActionActive
	if cfg.Debug {
		sin.DebugDir = debugDir(cfg.DebugDir)
	}

	rec := sync.NewReconciler(canonical.DefaultMapping(), sin, pf, log)
	sum := rec.Run(ctx, cards)
	fmt.Printf("ok=%d updated=%d skipped=%d errors=%d total=%d\n",
		sum.OK, sum.Updated, sum.Skipped, sum.Errors, sum.Total)
}

func debugDir(configured string) string {
	if configured != "" {
		return configured
	}
	return "debug"
}

func newLogger(debug bool) *zap.SugaredLogger {
	if debug {
		return zap.Must(zap.NewDevelopment()).Sugar()
	}
	return zap.Must(zap.NewProduction()).Sugar()
}

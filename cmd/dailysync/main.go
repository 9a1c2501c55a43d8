package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"employee-sync/internal/canonical"
	"employee-sync/internal/config"
	"employee-sync/internal/providers/pipefy"
	"employee-sync/internal/providers/sinergy"
	"employee-sync/internal/snapshot"
	"employee-sync/internal/sync"
)

// dailysync runs the whole routine: harvest the active cards, reconcile them
// against Sinergy, then create cards for new HR-active employees. A failing
// stage aborts the run; per-record failures inside a stage do not.
func main() {
	_ = godotenv.Load()

	var skipCreate = flag.Bool("skip-create", false, "run extract+reconcile only, skip card creation")
	flag.Parse()

	cfg, err := config.Load()
	log := newLogger(cfg.Debug)
	defer log.Sync() //nolint:errcheck
	if err != nil {
		log.Fatalw("configuration error", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := run(ctx, cfg, *skipCreate, log); err != nil {
		log.Fatalw("daily sync failed", "err", err, "elapsed", time.Since(start))
	}
	log.Infow("daily sync finished", "elapsed", time.Since(start))
}

func run(ctx context.Context, cfg config.Config, skipCreate bool, log *zap.SugaredLogger) error {
	auth := pipefy.NewAuthenticator(cfg.PipefyTokenURL, cfg.PipefyClientID, cfg.PipefyClientSecret, log)
	pf := pipefy.New(cfg.PipefyEndpoint, auth, log)

	sin := sinergy.New(cfg.SinergyEndpoint, cfg.SinergyUser, cfg.SinergyPass, log)
	sin.ActionByCPF = cfg.SoapActionByCPF
	sin.ActionActive = cfg.SoapActionActive
	if cfg.Debug {
		if cfg.DebugDir != "" {
			sin.DebugDir = cfg.DebugDir
		} else {
			sin.DebugDir = "debug"
		}
	}

	mapping := canonical.DefaultMapping()

	// [1/3] extract active cards
	log.Infow("stage 1/3: extracting active cards")
	cards, err := pf.FetchPhaseCards(ctx, cfg.PhaseActiveID, cfg.PageSize)
	if err != nil {
		return fmt.Errorf("extract cards: %w", err)
	}
	if err := snapshot.Save(cfg.CardsJSONFile, cards); err != nil {
		return err
	}

	// [2/3] reconcile existing cards
	log.Infow("stage 2/3: reconciling existing cards")
	sum := sync.NewReconciler(mapping, sin, pf, log).Run(ctx, cards)
	fmt.Printf("reconcile: ok=%d updated=%d skipped=%d errors=%d total=%d\n",
		sum.OK, sum.Updated, sum.Skipped, sum.Errors, sum.Total)

	if skipCreate {
		log.Infow("stage 3/3 skipped by flag")
		return nil
	}

	// [3/3] create cards for new employees
	log.Infow("stage 3/3: creating cards for new employees")
	dsum, err := sync.NewDetector(mapping, sin, pf, cfg.PipeID, log).Run(ctx, cards)
	if err != nil {
		return fmt.Errorf("new-employee detection: %w", err)
	}
	fmt.Printf("create: created=%d failed=%d eligible=%d ineligible=%d missing=%d\n",
		dsum.Created, dsum.Failed, dsum.TotalEligible, dsum.Ineligible, dsum.TotalMissing)
	return nil
}

func newLogger(debug bool) *zap.SugaredLogger {
	if debug {
		return zap.Must(zap.NewDevelopment()).Sugar()
	}
	return zap.Must(zap.NewProduction()).Sugar()
}

package sync

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"employee-sync/internal/canonical"
	"employee-sync/internal/domain"
	"employee-sync/internal/providers/pipefy"
	"employee-sync/internal/providers/sinergy"
)

// Summary is the per-run tally the reconciler always produces, even when
// every individual card failed.
type Summary struct {
	OK      int `json:"ok"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
	Total   int `json:"total"`
}

type employeeLookup interface {
	EmployeeByCPF(ctx context.Context, cpfDigits string) (*sinergy.Employee, error)
}

type cardUpdater interface {
	UpdateCardFields(ctx context.Context, cardID string, updates []pipefy.FieldUpdate) error
}

// Reconciler drives the card-by-card reconciliation: extract CPF, fetch the
// authoritative record, canonicalize both sides, diff, update only what
// differs. Cards are processed strictly in input order and a failing card
// never aborts the batch.
type Reconciler struct {
	mapping *canonical.Mapping
	mapper  *canonical.Mapper
	hr      employeeLookup
	cards   cardUpdater
	log     *zap.SugaredLogger
}

func NewReconciler(mapping *canonical.Mapping, hr employeeLookup, cards cardUpdater, log *zap.SugaredLogger) *Reconciler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Reconciler{
		mapping: mapping,
		mapper:  canonical.NewMapper(mapping),
		hr:      hr,
		cards:   cards,
		log:     log,
	}
}

type outcome int

const (
	outcomeOK outcome = iota
	outcomeUpdated
	outcomeSkipped
	outcomeError
)

// Run reconciles every card in the snapshot and returns the tally.
func (r *Reconciler) Run(ctx context.Context, cards []pipefy.Card) Summary {
	sum := Summary{Total: len(cards)}
	r.log.Infow("starting card reconciliation", "cards", len(cards))

	for i, card := range cards {
		r.log.Infow("processing card",
			"progress", i+1, "of", len(cards), "card", card.ID, "title", card.Title)

		switch r.reconcileCard(ctx, card) {
		case outcomeOK:
			sum.OK++
		case outcomeUpdated:
			sum.Updated++
		case outcomeSkipped:
			sum.Skipped++
		case outcomeError:
			sum.Errors++
		}
	}

	r.log.Infow("card reconciliation finished",
		"ok", sum.OK, "updated", sum.Updated, "skipped", sum.Skipped,
		"errors", sum.Errors, "total", sum.Total)
	return sum
}

func (r *Reconciler) reconcileCard(ctx context.Context, card pipefy.Card) outcome {
	cpf := r.mapper.ExtractCPF(card)
	if cpf == "" {
		r.log.Warnw("card has no usable CPF, skipping", "card", card.ID)
		return outcomeSkipped
	}
	masked := domain.FormatCPFMask(cpf)

	emp, err := r.hr.EmployeeByCPF(ctx, cpf)
	if err != nil {
		var perr *sinergy.ProtocolError
		if errors.As(err, &perr) && perr.Reason == sinergy.ReasonEmptyResult {
			// Ambiguous upstream answer: nothing usable for this card, but
			// not proof the person is gone. Skip, loudly.
			r.log.Warnw("authoritative lookup returned an empty result, skipping",
				"card", card.ID, "cpf", masked, "detail", perr.Detail)
			return outcomeSkipped
		}
		r.log.Errorw("authoritative lookup failed",
			"card", card.ID, "cpf", masked, "err", err)
		return outcomeError
	}
	if emp == nil {
		r.log.Warnw("no authoritative record for CPF, skipping",
			"card", card.ID, "cpf", masked)
		return outcomeSkipped
	}

	source := r.mapper.FromEmployee(*emp, cpf)
	if domain.Normalize(source.Get(canonical.FieldStatus)) == "" {
		// An authoritative side with no status cannot be allowed to
		// overwrite whatever history the card holds.
		r.log.Warnw("authoritative record has no status, skipping",
			"card", card.ID, "cpf", masked)
		return outcomeSkipped
	}

	diffs := Diff(r.mapping, r.mapper.FromCard(card), source)
	if len(diffs) == 0 {
		r.log.Infow("card already in sync", "card", card.ID)
		return outcomeOK
	}

	keys := make([]string, 0, len(diffs))
	updates := make([]pipefy.FieldUpdate, 0, len(diffs))
	for _, d := range diffs {
		f, ok := r.mapping.Lookup(d.Key)
		if !ok {
			continue
		}
		keys = append(keys, d.Key)
		updates = append(updates, pipefy.FieldUpdate{FieldID: f.FieldID, Value: d.SourceValue})
	}
	r.log.Infow("card drifted from authoritative record",
		"card", card.ID, "fields", keys)

	if err := r.cards.UpdateCardFields(ctx, card.ID, updates); err != nil {
		r.log.Errorw("card update failed", "card", card.ID, "err", err)
		return outcomeError
	}
	r.log.Infow("card updated", "card", card.ID, "fields", len(updates))
	return outcomeUpdated
}

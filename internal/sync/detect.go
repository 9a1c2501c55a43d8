package sync

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"employee-sync/internal/canonical"
	"employee-sync/internal/domain"
	"employee-sync/internal/providers/pipefy"
	"employee-sync/internal/providers/sinergy"
)

// DetectSummary tallies one new-record detection run. Ineligible counts the
// missing employees held back by the admission-date gate; they are reported,
// not created.
type DetectSummary struct {
	Created       int `json:"created"`
	Failed        int `json:"failed"`
	TotalEligible int `json:"totalEligible"`
	TotalMissing  int `json:"totalMissing"`
	Ineligible    int `json:"ineligible"`
}

type activeSource interface {
	ActiveEmployees(ctx context.Context) ([]sinergy.Employee, error)
}

type cardCreator interface {
	CreateCard(ctx context.Context, pipeID int, fields []pipefy.FieldAttribute) (*pipefy.CreatedCard, error)
}

// Detector finds HR-active employees with no card in the snapshot and
// creates cards for the ones whose admission date has arrived.
type Detector struct {
	mapping *canonical.Mapping
	mapper  *canonical.Mapper
	hr      activeSource
	cards   cardCreator
	pipeID  int
	log     *zap.SugaredLogger

	// now is injectable so the admission gate can be tested against a fixed
	// calendar day.
	now func() time.Time
}

func NewDetector(mapping *canonical.Mapping, hr activeSource, cards cardCreator, pipeID int, log *zap.SugaredLogger) *Detector {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Detector{
		mapping: mapping,
		mapper:  canonical.NewMapper(mapping),
		hr:      hr,
		cards:   cards,
		pipeID:  pipeID,
		log:     log,
		now:     time.Now,
	}
}

// Run fetches the authoritative active list, computes who is missing from
// the snapshot and creates the eligible cards. The fetch itself failing is a
// run-level error: an upstream outage must never read as "nobody to create".
func (d *Detector) Run(ctx context.Context, snapshot []pipefy.Card) (DetectSummary, error) {
	employees, err := d.hr.ActiveEmployees(ctx)
	if err != nil {
		return DetectSummary{}, err
	}

	known := d.knownCPFs(snapshot)
	d.log.Infow("snapshot loaded", "cards", len(snapshot), "distinct_cpfs", len(known))

	var missing []sinergy.Employee
	for _, emp := range employees {
		digits := domain.OnlyDigits(emp.CPF)
		if len(digits) != 11 {
			continue
		}
		if !known[digits] {
			missing = append(missing, emp)
		}
	}
	d.log.Infow("active employees missing from snapshot", "count", len(missing))

	today := startOfDay(d.now())
	var eligible, heldBack []sinergy.Employee
	for _, emp := range missing {
		if admissionOnOrBefore(emp.AdmissionDate, today) {
			eligible = append(eligible, emp)
		} else {
			heldBack = append(heldBack, emp)
		}
	}
	for _, emp := range heldBack {
		// Future or unparseable admission date: report for audit, never create.
		d.log.Infow("holding back employee (admission date not reached or invalid)",
			"name", emp.Name, "cpf", domain.FormatCPFMask(emp.CPF),
			"registration", emp.Registration, "admission", emp.AdmissionDate)
	}
	for _, emp := range eligible {
		d.log.Infow("eligible for card creation",
			"name", emp.Name, "cpf", domain.FormatCPFMask(emp.CPF),
			"registration", emp.Registration, "admission", emp.AdmissionDate)
	}

	sum := DetectSummary{
		TotalMissing:  len(missing),
		TotalEligible: len(eligible),
		Ineligible:    len(heldBack),
	}

	for _, emp := range eligible {
		digits := domain.OnlyDigits(emp.CPF)
		if _, err := d.cards.CreateCard(ctx, d.pipeID, d.cardFields(emp, digits)); err != nil {
			d.log.Errorw("card creation failed",
				"name", emp.Name, "cpf", domain.FormatCPFMask(digits), "err", err)
			sum.Failed++
			continue
		}
		d.log.Infow("card created",
			"name", emp.Name, "cpf", domain.FormatCPFMask(digits))
		sum.Created++
	}

	d.log.Infow("new-employee detection finished",
		"created", sum.Created, "failed", sum.Failed,
		"eligible", sum.TotalEligible, "ineligible", sum.Ineligible,
		"missing", sum.TotalMissing)
	return sum, nil
}

// knownCPFs collects the identity keys already present in the snapshot.
// Only keys with exactly 11 digits count; anything else is no key at all.
func (d *Detector) knownCPFs(snapshot []pipefy.Card) map[string]bool {
	set := make(map[string]bool, len(snapshot))
	for _, card := range snapshot {
		if digits := d.mapper.ExtractCPF(card); digits != "" {
			set[digits] = true
		}
	}
	return set
}

// cardFields maps the canonical record back to Pipefy field attributes in
// mapping order. Empty values are filtered later by the creation call.
func (d *Detector) cardFields(emp sinergy.Employee, cpfDigits string) []pipefy.FieldAttribute {
	rec := d.mapper.FromEmployee(emp, cpfDigits)
	fields := make([]pipefy.FieldAttribute, 0, d.mapping.Len())
	for _, f := range d.mapping.Fields() {
		fields = append(fields, pipefy.FieldAttribute{FieldID: f.FieldID, Value: rec.Get(f.Key)})
	}
	return fields
}

// admissionOnOrBefore applies the admission-date gate against a local
// calendar day. Unparseable or absent dates fail closed: a record we cannot
// date-gate is never created.
func admissionOnOrBefore(raw string, today time.Time) bool {
	adm, ok := parseAdmissionDate(raw)
	if !ok {
		return false
	}
	return !adm.After(today)
}

// parseAdmissionDate accepts the two forms the feed emits, with or without a
// trailing time part: "2006-01-02[...]" and "02/01/2006[...]".
func parseAdmissionDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if len(s) < 10 {
		return time.Time{}, false
	}
	head := s[:10]

	var layout string
	switch {
	case head[4] == '-' && head[7] == '-':
		layout = "2006-01-02"
	case head[2] == '/' && head[5] == '/':
		layout = "02/01/2006"
	default:
		return time.Time{}, false
	}

	t, err := time.ParseInLocation(layout, head, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

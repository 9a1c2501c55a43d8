package canonical

import (
	"employee-sync/internal/domain"
	"employee-sync/internal/providers/pipefy"
	"employee-sync/internal/providers/sinergy"
)

// Mapper projects raw records from either source into the canonical shape
// described by its Mapping. It is pure and stateless; the mapping is injected
// so tests can run against synthetic tables.
type Mapper struct {
	mapping *Mapping
}

func NewMapper(m *Mapping) *Mapper {
	return &Mapper{mapping: m}
}

// FromCard builds the canonical record for a Pipefy card. Every mapped field
// is present in the result; fields the card does not carry read as "".
func (mp *Mapper) FromCard(card pipefy.Card) domain.Record {
	rec := make(domain.Record, mp.mapping.Len())
	for _, f := range mp.mapping.fields {
		rec[f.Key] = normalizeByKind(f.Kind, card.FieldValue(f.Label))
	}
	return rec
}

// FromEmployee builds the canonical record for a Sinergy employee payload.
// fallbackCPFDigits fills the identity field when the payload omits it: the
// lookup key is then the only identity we have.
func (mp *Mapper) FromEmployee(emp sinergy.Employee, fallbackCPFDigits string) domain.Record {
	src := sourceValues(emp)
	if src[FieldCPF] == "" {
		src[FieldCPF] = fallbackCPFDigits
	}

	rec := make(domain.Record, mp.mapping.Len())
	for _, f := range mp.mapping.fields {
		rec[f.Key] = normalizeByKind(f.Kind, src[f.Key])
	}
	return rec
}

// ExtractCPF locates the identity field on a card by label and reduces it to
// digits. The result is either exactly 11 digits or "": a partial digit
// count is no usable key either.
func (mp *Mapper) ExtractCPF(card pipefy.Card) string {
	f, ok := mp.mapping.Lookup(FieldCPF)
	if !ok {
		return ""
	}
	d := domain.OnlyDigits(card.FieldValue(f.Label))
	if len(d) != 11 {
		return ""
	}
	return d
}

func normalizeByKind(k Kind, v string) string {
	switch k {
	case KindCPF:
		return domain.FormatCPFMask(v)
	case KindDate:
		return domain.ToISODateOrOriginal(v)
	default:
		return domain.Normalize(v)
	}
}

// sourceValues maps the fixed Sinergy attribute of each logical field,
// resolving the two attributes with known alternates (mobile, role,
// workplace code) by first non-empty value.
func sourceValues(e sinergy.Employee) map[string]string {
	return map[string]string{
		FieldName:              e.Name,
		FieldPersonalEmail:     e.PersonalEmail,
		FieldCPF:               e.CPF,
		FieldRG:                e.RG,
		FieldCorporateEmail:    e.CorporateEmail,
		FieldMobile:            e.Mobile(),
		FieldHomePhone:         e.HomePhone,
		FieldAddress:           e.Address,
		FieldCityCode:          e.CityCode,
		FieldCityName:          e.CityName,
		FieldPostalCode:        e.PostalCode,
		FieldGender:            e.Gender,
		FieldMaritalStatus:     e.MaritalStatus,
		FieldBirthDate:         e.BirthDate,
		FieldAdmissionDate:     e.AdmissionDate,
		FieldCostCenterName:    e.CostCenterName,
		FieldCostCenterCode:    e.CostCenterCode,
		FieldStatus:            e.Status,
		FieldTerminationDate:   e.TerminationDate,
		FieldTerminationStatus: e.TerminationStatus,
		FieldTerminationReason: e.TerminationReason,
		FieldRole:              firstNonEmpty(e.RoleType, e.RoleFunction),
		FieldWorkplaceCode:     firstNonEmpty(e.Location, e.WorkplaceCode),
		FieldWorkplaceName:     e.WorkplaceName,
		FieldUnitCNPJ:          e.UnitCNPJ,
		FieldWorkplaceCity:     e.WorkplaceCity,
		FieldScheduleDesc:      e.ScheduleDesc,
		FieldManagerName:       e.ManagerName,
		FieldCompanyName:       e.CompanyName,
		FieldContractName:      e.ContractName,
		FieldUnionName:         e.UnionName,
		FieldRegistration:      e.Registration,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

package canonical

import "fmt"

// Kind selects the normalization applied to a field at the canonical boundary.
type Kind int

const (
	KindText Kind = iota // trim only
	KindCPF              // digits-only internally, punctuation mask at the boundary
	KindDate             // dd/MM/yyyy -> yyyy-MM-dd, unrecognized kept as-is
)

// Field binds one logical field name to its Pipefy label (used when reading a
// card), its Pipefy field id (used when writing a card) and its normalization
// kind. The Sinergy attribute for each logical field is resolved by the
// Mapper, since a couple of them have alternate source attributes.
type Field struct {
	Key     string
	Label   string
	FieldID string
	Kind    Kind
}

// Mapping is the immutable, ordered field table. Only fields listed here
// participate in comparison and update; iteration order is the table order,
// so diff output is stable across runs.
type Mapping struct {
	fields []Field
	byKey  map[string]Field
}

func NewMapping(fields []Field) (*Mapping, error) {
	byKey := make(map[string]Field, len(fields))
	for _, f := range fields {
		if f.Key == "" {
			return nil, fmt.Errorf("canonical: field with empty key (label %q)", f.Label)
		}
		if _, dup := byKey[f.Key]; dup {
			return nil, fmt.Errorf("canonical: duplicate field key %q", f.Key)
		}
		byKey[f.Key] = f
	}
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return &Mapping{fields: cp, byKey: byKey}, nil
}

// Fields returns the table in declaration order.
func (m *Mapping) Fields() []Field {
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Lookup returns the field for a logical key.
func (m *Mapping) Lookup(key string) (Field, bool) {
	f, ok := m.byKey[key]
	return f, ok
}

// Len reports the number of mapped fields.
func (m *Mapping) Len() int { return len(m.fields) }

// Logical field names. These are the keys of the canonical record.
const (
	FieldName              = "nome_colaborador"
	FieldPersonalEmail     = "email_pessoal"
	FieldCPF               = "cpf"
	FieldRG                = "rg"
	FieldCorporateEmail    = "email_corporativo"
	FieldMobile            = "celular"
	FieldHomePhone         = "telefone_residencial"
	FieldAddress           = "endereco"
	FieldCityCode          = "cidade_codigo"
	FieldCityName          = "cidade_nome"
	FieldPostalCode        = "cep"
	FieldGender            = "genero"
	FieldMaritalStatus     = "estado_civil"
	FieldBirthDate         = "data_nascimento"
	FieldAdmissionDate     = "data_admissao"
	FieldCostCenterName    = "centro_custo_nome"
	FieldCostCenterCode    = "centro_custo_codigo"
	FieldStatus            = "status_colaborador"
	FieldTerminationDate   = "data_demissao"
	FieldTerminationStatus = "status_demissao"
	FieldTerminationReason = "motivo_demissao"
	FieldRole              = "cargo"
	FieldWorkplaceCode     = "local_trabalho_codigo"
	FieldWorkplaceName     = "local_trabalho_nome"
	FieldUnitCNPJ          = "cnpj_unidade"
	FieldWorkplaceCity     = "municipio_local_trabalho"
	FieldScheduleDesc      = "escala_descricao"
	FieldManagerName       = "gestor_nome"
	FieldCompanyName       = "razao_social"
	FieldContractName      = "vinculo_nome"
	FieldUnionName         = "sindicato_nome"
	FieldRegistration      = "matricula"
)

// DefaultMapping is the production field table for the onboarding pipe.
// Labels are exact ("Nome Centro de Custo " really does carry a trailing
// space in Pipefy); field ids are the slugs Pipefy generated for them.
func DefaultMapping() *Mapping {
	m, err := NewMapping([]Field{
		{FieldName, "Nome do colaborador", "nome_do_colaborador", KindText},
		{FieldPersonalEmail, "E-mail Pessoal", "e_mail_pessoal", KindText},
		{FieldCPF, "CPF", "cpf", KindCPF},
		{FieldRG, "RG", "rg", KindText},
		{FieldCorporateEmail, "E-mail Corporativo (EDC)", "e_mail_edc", KindText},
		{FieldMobile, "Número de Celular", "n_mero_de_celular", KindText},
		{FieldHomePhone, "Número de Telefone", "n_mero_de_telefone", KindText},
		{FieldAddress, "Endereço Logradouro", "endere_o", KindText},
		{FieldCityCode, "[DESATIVADO] Código Cidade", "c_digo_cidade", KindText},
		{FieldCityName, "Nome Cidade", "nome_cidade", KindText},
		{FieldPostalCode, "CEP Cidade", "cep_cidade", KindText},
		{FieldGender, "Gênero", "g_nero", KindText},
		{FieldMaritalStatus, "Estado Civil", "estado_civil", KindText},
		{FieldBirthDate, "Data de Nascimento", "data_de_nascimento", KindDate},
		{FieldAdmissionDate, "Data de Admissão", "data_de_admiss_o", KindDate},
		{FieldCostCenterName, "Nome Centro de Custo ", "nome_centro_de_custo", KindText},
		{FieldCostCenterCode, "Código Centro de Custo", "c_digo_centro_de_custo", KindText},
		{FieldStatus, "Status Colaborador", "status_colaborador", KindText},
		{FieldTerminationDate, "Data Demissão", "data_demiss_o", KindDate},
		{FieldTerminationStatus, "Status Demissão", "status_demiss_o", KindText},
		{FieldTerminationReason, "Motivo Demissão", "motivo_demiss_o", KindText},
		{FieldRole, "Cargo", "cargo", KindText},
		{FieldWorkplaceCode, "[DESATIVADO] Código Local de Trabalho", "c_digo_local_de_trabalho", KindText},
		{FieldWorkplaceName, "Nome Local de Trabalho", "nome_local_de_trabalho", KindText},
		{FieldUnitCNPJ, "CNPJ Unidade", "cnpj_unidade", KindText},
		{FieldWorkplaceCity, "Munícipio Local de Trabalho", "mun_cipio_local_de_trabalho", KindText},
		{FieldScheduleDesc, "Escala de Horário Descrição", "escala_de_hor_rio_descri_o", KindText},
		{FieldManagerName, "Nome Gestor", "nome_gestor", KindText},
		{FieldCompanyName, "Razão Social", "raz_o_social", KindText},
		{FieldContractName, "Nome do Vínculo", "nome_do_v_nculo", KindText},
		{FieldUnionName, "Nome do Sindicato", "nome_do_sindicato", KindText},
		{FieldRegistration, "Matrícula", "matr_cula", KindText},
	})
	if err != nil {
		panic(err) // static table; unreachable unless the table itself is broken
	}
	return m
}

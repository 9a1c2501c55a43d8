package sinergy

// Employee is the raw record shape returned by the Sinergy HR feed, both by
// the per-CPF lookup (dadosFuncionario) and by the full active-list operation
// (dadosFuncionarioAtivosCompleto). The two operations share attribute names.
//
// Every attribute is kept as the string the service sent; normalization
// happens only at the canonical boundary.
type Employee struct {
	Name           string `xml:"func_nom"`
	PersonalEmail  string `xml:"func_email_pessoal"`
	CPF            string `xml:"func_num_cpf"`
	RG             string `xml:"func_num_rg"`
	CorporateEmail string `xml:"func_email"`

	// Mobile comes either pre-formatted or split into DDD + number.
	MobileNumber string `xml:"func_num_cel"`
	MobileDDD    string `xml:"func_celular_ddd"`
	MobileLocal  string `xml:"func_celular_numero"`
	HomePhone    string `xml:"func_num_tel_res"`

	Address    string `xml:"func_nom_end"`
	CityCode   string `xml:"cid_cod"`
	CityName   string `xml:"cid_nome"`
	PostalCode string `xml:"func_cod_cep"`

	Gender        string `xml:"func_sts_sexo"`
	MaritalStatus string `xml:"estcv_cod"`
	BirthDate     string `xml:"func_dat_nasc"`

	AdmissionDate  string `xml:"func_dat_adm_banco"`
	CostCenterName string `xml:"ccu_nom"`
	CostCenterCode string `xml:"ccu_cod"`
	Status         string `xml:"func_sts"`

	TerminationDate   string `xml:"func_dat_dem"`
	TerminationStatus string `xml:"func_sts_dem"`
	TerminationReason string `xml:"desc_motivo_rescisao"`

	// Role and workplace code each have two known source attributes;
	// first non-empty wins at the canonical boundary.
	RoleType      string `xml:"desc_tipo_cargo"`
	RoleFunction  string `xml:"desc_funcao_cargo"`
	Location      string `xml:"func_location"`
	WorkplaceCode string `xml:"func_local_trab_codigo"`

	WorkplaceName string `xml:"func_local_trabalho_descricao"`
	UnitCNPJ      string `xml:"cnpj_unidade"`
	WorkplaceCity string `xml:"func_local_trabalho_municipio"`
	ScheduleDesc  string `xml:"desc_escala"`
	ManagerName   string `xml:"gestor_nome"`
	CompanyName   string `xml:"razao_social"`
	ContractName  string `xml:"nom_vinculo"`
	UnionName     string `xml:"nom_sindicato"`
	Registration  string `xml:"func_num"`
}

// Mobile resolves the phone number the way the feed intends: the
// pre-formatted value when present, otherwise "(DDD) number" when both
// halves exist.
func (e Employee) Mobile() string {
	if e.MobileNumber != "" {
		return e.MobileNumber
	}
	if e.MobileDDD != "" && e.MobileLocal != "" {
		return "(" + e.MobileDDD + ") " + e.MobileLocal
	}
	return ""
}

package sinergy

import "strings"

const (
	opByCPF  = "getDadosFuncionariosPorCpf"
	opActive = "GetDadosFuncionariosAtivosCompleto"
)

// Credentials travel in a custom AuthSoapHd header; the service validates
// them per call, there is no session.
const envelopeHeader = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
               xmlns:xsd="http://www.w3.org/2001/XMLSchema"
               xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Header>
    <AuthSoapHd xmlns="http://tempuri.org/">
      <Usuario>%USER%</Usuario>
      <Senha>%PASS%</Senha>
    </AuthSoapHd>
  </soap:Header>
  <soap:Body>
`

const envelopeFooter = `  </soap:Body>
</soap:Envelope>`

// envelopeByCPF builds the getDadosFuncionariosPorCpf request. The service
// expects the CPF with the punctuation mask, not digits-only.
func envelopeByCPF(user, pass, cpfMasked string) string {
	body := `    <getDadosFuncionariosPorCpf xmlns="http://tempuri.org/">
      <cpf>` + escapeXML(cpfMasked) + `</cpf>
    </getDadosFuncionariosPorCpf>
`
	return header(user, pass) + body + envelopeFooter
}

// envelopeActive builds the parameterless GetDadosFuncionariosAtivosCompleto
// request.
func envelopeActive(user, pass string) string {
	body := `    <GetDadosFuncionariosAtivosCompleto xmlns="http://tempuri.org/" />
`
	return header(user, pass) + body + envelopeFooter
}

func header(user, pass string) string {
	h := strings.Replace(envelopeHeader, "%USER%", escapeXML(user), 1)
	return strings.Replace(h, "%PASS%", escapeXML(pass), 1)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

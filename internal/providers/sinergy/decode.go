package sinergy

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"employee-sync/internal/domain"
	"employee-sync/internal/httpx"
)

// Reason classifies a decode failure. Callers branch on it: transport
// interception, service faults and contract changes each get a different
// skip/retry policy upstream, so they must never collapse into one error.
type Reason string

const (
	// ReasonHTMLResponse: the body is an HTML document, not SOAP. Something
	// upstream (WAF, proxy, login page) intercepted the call.
	ReasonHTMLResponse Reason = "html-response"
	// ReasonMissingBody: the envelope has no Body element (or is not XML at all).
	ReasonMissingBody Reason = "missing-body"
	// ReasonSOAPFault: the service returned a Fault.
	ReasonSOAPFault Reason = "soap-fault"
	// ReasonEmptyResult: the operation's Result node is absent, empty, or not
	// a plain string. Either the service contract changed or the request was
	// rejected; never a confirmation that zero records exist.
	ReasonEmptyResult Reason = "empty-result"
	// ReasonAuthRejected: HTTP 200, but the result string is the service's
	// "login necessário" marker. The security header was rejected.
	ReasonAuthRejected Reason = "auth-rejected"
	// ReasonSuspectedEncodedPayload: the result string looks like base64
	// rather than escaped XML. The service may have switched to a
	// compressed/encrypted payload mode and must be investigated.
	ReasonSuspectedEncodedPayload Reason = "suspected-encoded-payload"
	// ReasonNotXMLAfterDecode: entity decoding did not yield XML, or the
	// inner document does not parse.
	ReasonNotXMLAfterDecode Reason = "not-xml-after-decode"
)

// ProtocolError is a tagged decode failure. It is a value, not a panic: the
// batch drivers record it against the current record and keep going.
type ProtocolError struct {
	Reason Reason
	Detail string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("sinergy: %s: %s", e.Reason, e.Detail)
}

func protoErr(r Reason, format string, args ...any) *ProtocolError {
	return &ProtocolError{Reason: r, Detail: fmt.Sprintf(format, args...)}
}

// DecodeEmployeeByCPF recovers a single employee record from a raw by-CPF
// SOAP response body. Outcomes:
//
//   - (emp, false, nil): the record, selected by wantDigits when the service
//     sent more than one.
//   - (emp, true, nil): several records came back and none matched the
//     requested CPF; this is the legacy first-record fallback, surfaced via
//     the flag so callers can log it.
//   - (nil, false, nil): the service answered cleanly with no record for
//     this CPF.
//   - (nil, false, *ProtocolError): anything else.
func DecodeEmployeeByCPF(body, wantDigits string) (*Employee, bool, error) {
	payload, err := extractPayload(body, opByCPF)
	if err != nil {
		return nil, false, err
	}

	// The record element is usually a child of a container, but some service
	// responses make it the document root itself.
	if rootName(payload) == "dadosFuncionario" {
		var one Employee
		if err := xml.Unmarshal([]byte(payload), &one); err != nil {
			return nil, false, protoErr(ReasonNotXMLAfterDecode, "inner payload does not parse: %v", err)
		}
		return &one, false, nil
	}

	var doc struct {
		Records []Employee `xml:"dadosFuncionario"`
	}
	if err := xml.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, false, protoErr(ReasonNotXMLAfterDecode, "inner payload does not parse: %v", err)
	}

	switch len(doc.Records) {
	case 0:
		return nil, false, nil
	case 1:
		return &doc.Records[0], false, nil
	}
	for i := range doc.Records {
		if domain.OnlyDigits(doc.Records[i].CPF) == wantDigits {
			return &doc.Records[i], false, nil
		}
	}
	// No record matches the requested CPF. Legacy behavior: take the first.
	return &doc.Records[0], true, nil
}

// DecodeActiveEmployees recovers the full active-employee list from a raw
// full-list SOAP response body. An empty slice is returned only after a
// well-formed "no records" container parsed cleanly; every decode problem is
// a *ProtocolError, so an upstream outage can never read as zero employees.
func DecodeActiveEmployees(body string) ([]Employee, error) {
	payload, err := extractPayload(body, opActive)
	if err != nil {
		return nil, err
	}

	if rootName(payload) == "dadosFuncionarioAtivosCompleto" {
		var one Employee
		if err := xml.Unmarshal([]byte(payload), &one); err != nil {
			return nil, protoErr(ReasonNotXMLAfterDecode, "inner payload does not parse: %v", err)
		}
		return []Employee{one}, nil
	}

	var doc struct {
		Records []Employee `xml:"dadosFuncionarioAtivosCompleto"`
	}
	if err := xml.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, protoErr(ReasonNotXMLAfterDecode, "inner payload does not parse: %v", err)
	}
	return doc.Records, nil
}

// extractPayload runs the defensive part of the pipeline, in order and
// short-circuiting: HTML sniff, envelope walk (Body, Fault, the operation's
// Result node), auth-rejection marker, entity decode, base64 sniff. The
// returned string starts with '<' and is ready for the inner parse.
func extractPayload(body, operation string) (string, error) {
	if looksLikeHTML(body) {
		return "", protoErr(ReasonHTMLResponse, "body is an HTML document: %s", httpx.Snippet([]byte(body), 200))
	}

	result, err := extractResultText(body, operation)
	if err != nil {
		return "", err
	}

	s := strings.TrimSpace(result)
	if s == "" {
		return "", protoErr(ReasonEmptyResult, "%sResult is empty", operation)
	}
	if strings.Contains(strings.ToLower(s), loginRequiredMarker) {
		return "", protoErr(ReasonAuthRejected, "service answered %q (security header rejected)", httpx.Snippet([]byte(s), 120))
	}

	// The tokenizer already decoded one level of entities; a normally
	// escaped payload is plain XML by now. One more manual pass covers the
	// doubly-escaped responses the service sometimes produces.
	if strings.HasPrefix(s, "<") {
		return s, nil
	}
	decoded := strings.TrimSpace(decodeXMLEntities(s))
	if strings.HasPrefix(decoded, "<") {
		return decoded, nil
	}
	if looksLikeBase64(s) {
		return "", protoErr(ReasonSuspectedEncodedPayload, "result looks like base64 (%d chars); payload may be compressed or encrypted", len(s))
	}
	return "", protoErr(ReasonNotXMLAfterDecode, "result is not XML after entity decode: %s", httpx.Snippet([]byte(s), 200))
}

// extractResultText walks the outer envelope tokens and returns the text
// content of <operation>Response > <operation>Result.
func extractResultText(body, operation string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(body))
	// The legacy service is not a strict XML citizen; be lenient on the
	// outer document the same way the transport's consumers always were.
	dec.Strict = false

	var inBody, inResponse bool
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if !inBody {
				return "", protoErr(ReasonMissingBody, "no Body element in envelope")
			}
			return "", protoErr(ReasonEmptyResult, "%sResult node absent", operation)
		}
		if err != nil {
			return "", protoErr(ReasonMissingBody, "envelope does not parse: %v", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch {
		case !inBody && strings.EqualFold(start.Name.Local, "Body"):
			inBody = true
		case inBody && strings.EqualFold(start.Name.Local, "Fault"):
			return "", protoErr(ReasonSOAPFault, "%s", faultDetail(dec))
		case inBody && !inResponse && start.Name.Local == operation+"Response":
			inResponse = true
		case inResponse && start.Name.Local == operation+"Result":
			return readElementText(dec)
		}
	}
}

// readElementText collects the character data of the current element. A
// nested element means the result is not the plain string the contract
// promises, which is indistinguishable from a contract change.
func readElementText(dec *xml.Decoder) (string, error) {
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", protoErr(ReasonEmptyResult, "unterminated Result node: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return "", protoErr(ReasonEmptyResult, "Result node is not a plain string (contains <%s>)", t.Name.Local)
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			return b.String(), nil
		}
	}
}

// faultDetail flattens the Fault element's text for diagnostics.
func faultDetail(dec *xml.Decoder) string {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if s := strings.TrimSpace(string(t)); s != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(s)
			}
		}
	}
	if b.Len() == 0 {
		return "service returned a SOAP Fault"
	}
	return b.String()
}

// rootName returns the local name of the document's root element, or "" when
// no element can be read.
func rootName(payload string) string {
	dec := xml.NewDecoder(strings.NewReader(payload))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local
		}
	}
}

const loginRequiredMarker = "login necessário"

func looksLikeHTML(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(t, "<!doctype html") || strings.HasPrefix(t, "<html")
}

// looksLikeBase64 is a heuristic: only base64 alphabet characters and long
// enough that it is unlikely to be a short status message.
func looksLikeBase64(s string) bool {
	if len(s) < 40 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '+', r == '/', r == '=', r == '\r', r == '\n':
		default:
			return false
		}
	}
	return true
}

var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

// decodeXMLEntities undoes one level of XML entity escaping. &amp; is
// replaced last so "&amp;lt;" becomes "&lt;", not "<".
func decodeXMLEntities(s string) string {
	return entityReplacer.Replace(s)
}

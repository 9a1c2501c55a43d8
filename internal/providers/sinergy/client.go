package sinergy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"employee-sync/internal/domain"
	"employee-sync/internal/httpx"
)

// Client talks to the Sinergy HR SOAP service: raw envelope out, raw body
// back, then the defensive decoder. One outstanding call at a time; the only
// retries are the transport-level ones inside httpx.
type Client struct {
	Endpoint     string
	User         string
	Pass         string
	ActionByCPF  string
	ActionActive string
	HTTP         *http.Client
	Log          *zap.SugaredLogger

	// DebugDir, when set, receives the offending payload of every decode
	// failure for operator inspection.
	DebugDir string
}

func New(endpoint, user, pass string, log *zap.SugaredLogger) *Client {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		Endpoint:     endpoint,
		User:         user,
		Pass:         pass,
		ActionByCPF:  "http://tempuri.org/" + opByCPF,
		ActionActive: "http://tempuri.org/" + opActive,
		HTTP: &http.Client{
			Timeout: 2 * time.Minute,
		},
		Log: log,
	}
}

// EmployeeByCPF fetches and decodes the authoritative record for one CPF
// (digits-only input). A nil employee with nil error means the service
// answered cleanly with no record.
func (c *Client) EmployeeByCPF(ctx context.Context, cpfDigits string) (*Employee, error) {
	masked := domain.FormatCPFMask(cpfDigits)
	body, err := c.callSoap(ctx, envelopeByCPF(c.User, c.Pass, masked), c.ActionByCPF)
	if err != nil {
		return nil, err
	}

	emp, fellBack, err := DecodeEmployeeByCPF(body, cpfDigits)
	if err != nil {
		c.dumpPayload("sinergy_bycpf_payload.txt", body, err)
		return nil, err
	}
	if fellBack {
		// Known legacy behavior, kept observable: the list had records but
		// none matched the requested CPF.
		c.Log.Warnw("by-cpf lookup matched no record, using first record from list",
			"cpf", masked)
	}
	return emp, nil
}

// ActiveEmployees fetches and decodes the full active-employee list.
func (c *Client) ActiveEmployees(ctx context.Context) ([]Employee, error) {
	c.Log.Infow("fetching active employees from sinergy")
	body, err := c.callSoap(ctx, envelopeActive(c.User, c.Pass), c.ActionActive)
	if err != nil {
		return nil, err
	}

	emps, err := DecodeActiveEmployees(body)
	if err != nil {
		c.dumpPayload("sinergy_ativos_payload.txt", body, err)
		return nil, err
	}
	c.Log.Infow("active employees fetched", "count", len(emps))
	return emps, nil
}

// callSoap posts the envelope and returns the raw response body. No parsing
// here: HTTP-level success with a poisoned body is the decoder's problem.
func (c *Client) callSoap(ctx context.Context, envelope, action string) (string, error) {
	if c.Endpoint == "" {
		return "", errors.New("sinergy: endpoint not configured")
	}

	_, body, err := httpx.DoWithRetry(ctx, c.HTTP, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader([]byte(envelope)))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "text/xml; charset=utf-8")
		req.Header.Set("SOAPAction", action)
		req.Header.Set("Accept", "text/xml, application/xml, */*")
		req.Header.Set("User-Agent", "employee-sync/1.0")
		return req, nil
	}, httpx.DefaultRetryConfig())
	if err != nil {
		return "", fmt.Errorf("sinergy: soap call failed (action %s): %w", action, err)
	}
	return string(body), nil
}

func (c *Client) dumpPayload(name, content string, cause error) {
	if c.DebugDir == "" {
		return
	}
	if err := os.MkdirAll(c.DebugDir, 0o755); err != nil {
		c.Log.Debugw("cannot create debug dir", "dir", c.DebugDir, "err", err)
		return
	}
	path := filepath.Join(c.DebugDir, name)
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o644); err != nil {
		c.Log.Debugw("cannot write debug payload", "path", path, "err", err)
		return
	}
	c.Log.Warnw("decode failure payload saved", "path", path, "cause", cause)
}

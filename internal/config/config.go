package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Pipefy OAuth
	PipefyClientID     string
	PipefyClientSecret string
	PipefyTokenURL     string

	// Pipefy GraphQL
	PipefyEndpoint string
	PhaseActiveID  string
	PageSize       int
	PipeID         int

	// Snapshot
	CardsJSONFile string

	// Sinergy SOAP
	SinergyEndpoint  string
	SinergyUser      string
	SinergyPass      string
	SoapActionByCPF  string
	SoapActionActive string

	// Diagnostics
	Debug    bool
	DebugDir string
}

// MissingEnvError lists every required environment variable that was absent.
// It is fatal: nothing is processed until configuration is complete.
type MissingEnvError struct {
	Vars []string
}

func (e *MissingEnvError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Vars, ", ")
}

func Load() (Config, error) {
	var missing []string
	req := func(k string) string {
		v := os.Getenv(k)
		if v == "" {
			missing = append(missing, k)
		}
		return v
	}

	cfg := Config{
		// Pipefy OAuth
		PipefyClientID:     req("PIPEFY_CLIENT_ID"),
		PipefyClientSecret: req("PIPEFY_CLIENT_SECRET"),
		PipefyTokenURL:     getenv("PIPEFY_TOKEN_URL", "https://app.pipefy.com/oauth/token"),

		// Pipefy GraphQL
		PipefyEndpoint: getenv("PIPEFY_ENDPOINT", "https://api.pipefy.com/graphql"),
		PhaseActiveID:  req("PHASE_ATIVOS_ID"),
		PageSize:       getenvInt("PAGE_SIZE", 50),

		CardsJSONFile: getenv("CARDS_JSON_FILE", "cards_ativos_raw.json"),

		// Sinergy SOAP
		SinergyEndpoint:  req("SINERGY_ENDPOINT"),
		SinergyUser:      req("SINERGY_USER"),
		SinergyPass:      req("SINERGY_PASS"),
		SoapActionByCPF:  getenv("SINERGY_SOAP_ACTION_BY_CPF", "http://tempuri.org/getDadosFuncionariosPorCpf"),
		SoapActionActive: getenv("SINERGY_SOAP_ACTION_ATIVOS", "http://tempuri.org/GetDadosFuncionariosAtivosCompleto"),

		Debug:    getenvBool("DEBUG", false),
		DebugDir: getenv("DEBUG_DIR", ""),
	}

	pipeID := req("PIPE_ID")
	if pipeID != "" {
		n, err := strconv.Atoi(pipeID)
		if err != nil {
			return Config{}, fmt.Errorf("config: PIPE_ID must be numeric, got %q", pipeID)
		}
		cfg.PipeID = n
	}

	if len(missing) > 0 {
		return Config{}, &MissingEnvError{Vars: missing}
	}
	return cfg, nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v == "1" || strings.EqualFold(v, "true")
}

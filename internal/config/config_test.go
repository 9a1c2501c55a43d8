package config

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestGetenv(t *testing.T) {
	// Test with empty environment variable
	os.Unsetenv("TEST_GETENV")
	result := getenv("TEST_GETENV", "default")
	if result != "default" {
		t.Errorf("Expected default value 'default', got '%s'", result)
	}

	// Test with set environment variable
	os.Setenv("TEST_GETENV", "test-value")
	result = getenv("TEST_GETENV", "default")
	if result != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", result)
	}

	// Clean up
	os.Unsetenv("TEST_GETENV")
}

func TestGetenvInt(t *testing.T) {
	// Test with empty environment variable
	os.Unsetenv("TEST_GETENV_INT")
	result := getenvInt("TEST_GETENV_INT", 42)
	if result != 42 {
		t.Errorf("Expected default value 42, got %d", result)
	}

	// Test with valid integer
	os.Setenv("TEST_GETENV_INT", "100")
	result = getenvInt("TEST_GETENV_INT", 42)
	if result != 100 {
		t.Errorf("Expected 100, got %d", result)
	}

	// Test with invalid integer
	os.Setenv("TEST_GETENV_INT", "not-an-int")
	result = getenvInt("TEST_GETENV_INT", 42)
	if result != 42 {
		t.Errorf("Expected default value 42, got %d", result)
	}

	// Clean up
	os.Unsetenv("TEST_GETENV_INT")
}

func TestGetenvBool(t *testing.T) {
	// Test with empty environment variable
	os.Unsetenv("TEST_GETENV_BOOL")
	result := getenvBool("TEST_GETENV_BOOL", true)
	if result != true {
		t.Errorf("Expected default value true, got %v", result)
	}

	// Test with valid boolean (true)
	os.Setenv("TEST_GETENV_BOOL", "true")
	result = getenvBool("TEST_GETENV_BOOL", false)
	if result != true {
		t.Errorf("Expected true, got %v", result)
	}

	// Test with "1"
	os.Setenv("TEST_GETENV_BOOL", "1")
	result = getenvBool("TEST_GETENV_BOOL", false)
	if result != true {
		t.Errorf("Expected true for '1', got %v", result)
	}

	// Test with anything else
	os.Setenv("TEST_GETENV_BOOL", "not-a-bool")
	result = getenvBool("TEST_GETENV_BOOL", true)
	if result != false {
		t.Errorf("Expected false for an unrecognized value, got %v", result)
	}

	// Clean up
	os.Unsetenv("TEST_GETENV_BOOL")
}

var loadEnvVars = []string{
	"PIPEFY_CLIENT_ID", "PIPEFY_CLIENT_SECRET", "PIPEFY_TOKEN_URL",
	"PIPEFY_ENDPOINT", "PHASE_ATIVOS_ID", "PAGE_SIZE", "PIPE_ID",
	"CARDS_JSON_FILE", "SINERGY_ENDPOINT", "SINERGY_USER", "SINERGY_PASS",
	"SINERGY_SOAP_ACTION_BY_CPF", "SINERGY_SOAP_ACTION_ATIVOS",
	"DEBUG", "DEBUG_DIR",
}

func clearLoadEnv(t *testing.T) {
	t.Helper()
	for _, env := range loadEnvVars {
		if val, ok := os.LookupEnv(env); ok {
			t.Cleanup(func() { os.Setenv(env, val) })
			os.Unsetenv(env)
		}
	}
}

func setRequiredEnv() {
	os.Setenv("PIPEFY_CLIENT_ID", "client-id")
	os.Setenv("PIPEFY_CLIENT_SECRET", "client-secret")
	os.Setenv("PHASE_ATIVOS_ID", "306")
	os.Setenv("PIPE_ID", "12345")
	os.Setenv("SINERGY_ENDPOINT", "https://sinergy.test/ws.asmx")
	os.Setenv("SINERGY_USER", "soap-user")
	os.Setenv("SINERGY_PASS", "soap-pass")
}

func TestLoad(t *testing.T) {
	clearLoadEnv(t)
	setRequiredEnv()
	defer clearLoadEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.PipefyClientID != "client-id" {
		t.Errorf("Expected PipefyClientID 'client-id', got '%s'", cfg.PipefyClientID)
	}
	if cfg.PipeID != 12345 {
		t.Errorf("Expected PipeID 12345, got %d", cfg.PipeID)
	}
	if cfg.SinergyEndpoint != "https://sinergy.test/ws.asmx" {
		t.Errorf("Expected SinergyEndpoint to be set, got '%s'", cfg.SinergyEndpoint)
	}

	// Defaults
	if cfg.PipefyTokenURL != "https://app.pipefy.com/oauth/token" {
		t.Errorf("Unexpected default token URL: '%s'", cfg.PipefyTokenURL)
	}
	if cfg.PipefyEndpoint != "https://api.pipefy.com/graphql" {
		t.Errorf("Unexpected default GraphQL endpoint: '%s'", cfg.PipefyEndpoint)
	}
	if cfg.PageSize != 50 {
		t.Errorf("Expected default PageSize 50, got %d", cfg.PageSize)
	}
	if cfg.CardsJSONFile != "cards_ativos_raw.json" {
		t.Errorf("Unexpected default snapshot file: '%s'", cfg.CardsJSONFile)
	}
	if cfg.SoapActionByCPF != "http://tempuri.org/getDadosFuncionariosPorCpf" {
		t.Errorf("Unexpected default by-CPF SOAP action: '%s'", cfg.SoapActionByCPF)
	}
	if cfg.Debug {
		t.Error("Expected Debug to default to false")
	}
}

func TestLoadDebugAcceptsTrueAndOne(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1"} {
		clearLoadEnv(t)
		setRequiredEnv()
		os.Setenv("DEBUG", v)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		// Both the payload dumps and the logger choice key on this one flag.
		if !cfg.Debug {
			t.Errorf("Expected DEBUG=%s to enable debug mode", v)
		}
	}
	os.Unsetenv("DEBUG")
}

func TestLoadMissingVars(t *testing.T) {
	clearLoadEnv(t)
	os.Setenv("PIPEFY_CLIENT_ID", "client-id")
	defer os.Unsetenv("PIPEFY_CLIENT_ID")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected an error when required variables are missing")
	}

	var merr *MissingEnvError
	if !errors.As(err, &merr) {
		t.Fatalf("Expected MissingEnvError, got %v", err)
	}
	for _, want := range []string{"PIPEFY_CLIENT_SECRET", "PHASE_ATIVOS_ID", "SINERGY_ENDPOINT", "SINERGY_USER", "SINERGY_PASS", "PIPE_ID"} {
		found := false
		for _, v := range merr.Vars {
			if v == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected %s in missing vars, got %v", want, merr.Vars)
		}
	}
	if strings.Contains(strings.Join(merr.Vars, ","), "PIPEFY_CLIENT_ID") {
		t.Errorf("PIPEFY_CLIENT_ID was set and must not be reported missing: %v", merr.Vars)
	}
}

func TestLoadNonNumericPipeID(t *testing.T) {
	clearLoadEnv(t)
	setRequiredEnv()
	os.Setenv("PIPE_ID", "not-a-number")
	defer clearLoadEnv(t)

	if _, err := Load(); err == nil {
		t.Error("Expected an error for a non-numeric PIPE_ID")
	}
}

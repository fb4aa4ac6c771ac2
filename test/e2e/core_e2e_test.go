//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_Hello(t *testing.T) {
	for _, path := range []string{"/", "/api/v1/hello"} {
		code, body := get(t, path)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Hello, World!", body["message"])
	}
}

func TestE2E_UploadThenRedeemOnce(t *testing.T) {
	pdf := minimalPDF(
		"Jane Roe",
		"Experience",
		"- Developed payment APIs in Go for 200 merchants",
		"- Reduced p99 latency by 35%",
		"Education",
		"B.S. Computer Science",
		"Skills",
		"Go, PostgreSQL, Kubernetes",
	)
	code, body := upload(t, "resume.pdf", pdf, "Backend engineer: Go, Kubernetes, PostgreSQL. Bachelor degree required.")
	require.Equal(t, http.StatusOK, code, body)

	token, _ := body["request_id"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, false, body["education_warning"])
	for _, k := range []string{"score", "keyword_match_score", "action_verb_score", "quantified_score", "formatting_score", "section_coverage"} {
		v, ok := body[k].(float64)
		require.True(t, ok, k)
		assert.GreaterOrEqual(t, v, 0.0, k)
		assert.LessOrEqual(t, v, 100.0, k)
	}

	// The first redemption consumes the token whatever the LLM outcome.
	code, body = get(t, "/feedback/"+token)
	switch code {
	case http.StatusOK:
		assert.NotEmpty(t, body["llm_feedback"])
	case http.StatusBadGateway:
		t.Logf("LLM unavailable: %v", body["error"])
	default:
		t.Fatalf("unexpected feedback status %d: %v", code, body)
	}

	code, body = get(t, "/feedback/"+token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Invalid or expired request", body["error"])
}

func TestE2E_UnknownToken(t *testing.T) {
	code, body := get(t, "/feedback/00000000-0000-0000-0000-000000000000")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Invalid or expired request", body["error"])
}

func TestE2E_RejectsNonPDF(t *testing.T) {
	code, body := upload(t, "resume.pdf", []byte("definitely not a pdf"), "Go engineer")
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "EXTRACTION_FAILED", body["error"].(map[string]any)["code"])
}

func TestE2E_Readyz(t *testing.T) {
	code, body := get(t, "/readyz")
	require.Equal(t, http.StatusOK, code, body)
}

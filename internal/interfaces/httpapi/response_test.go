package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/nfl-draft-league/internal/usecase"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "2.0", body["apiVersion"])
	return body
}

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeEnvelope(t, rec)
	require.Contains(t, body, "data")
	require.NotContains(t, body, "error")
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: week must be between 1 and 18", usecase.ErrInvalidInput))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	errorObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error object, got %v", body)
	require.Equal(t, "INVALID_ARGUMENT", errorObj["status"])
	require.Contains(t, errorObj["message"], "week must be between 1 and 18")
}

func TestWriteError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("select standings: pq: password authentication failed"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("internal error detail leaked: %s", rec.Body.String())
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{"invalid input", fmt.Errorf("%w: week", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput"},
		{"not found", fmt.Errorf("%w: job", usecase.ErrNotFound), http.StatusNotFound, "notFound"},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"job locked", fmt.Errorf("sync-odds: %w", usecase.ErrJobLocked), http.StatusConflict, "jobLocked"},
		{"dependency unavailable", fmt.Errorf("%w: provider down", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "dependencyUnavailable"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internalError"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mapError(tc.err)
			if got.HTTPStatus != tc.status || got.Reason != tc.reason {
				t.Fatalf("unexpected mapping: %+v", got)
			}
		})
	}
}

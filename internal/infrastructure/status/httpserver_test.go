package status

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidesweep/internal/application/port/output"
	"sidesweep/internal/usecase/removal"
)

type stubSource struct {
	p removal.Progress
}

func (s stubSource) Progress() removal.Progress { return s.p }

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                          {}
func (nopLogger) Info(string, ...any)                           {}
func (nopLogger) Warn(string, ...any)                           {}
func (nopLogger) Error(string, ...any)                          {}
func (l nopLogger) WithField(string, any) output.LoggerPort     { return l }
func (l nopLogger) WithFields(map[string]any) output.LoggerPort { return l }
func (nopLogger) Close() error                                  { return nil }

func TestProgressEndpoint(t *testing.T) {
	src := stubSource{p: removal.Progress{
		JobID:     "job-1",
		Running:   true,
		Total:     5,
		Processed: 2,
		Succeeded: 1,
		Failed:    1,
		LastError: "E_MENU: menu did not open after retries (two)",
	}}
	srv := NewServer("127.0.0.1:0", src, nopLogger{})

	req := httptest.NewRequest("GET", "/progress", nil)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, 200, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got removal.Progress
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, src.p, got)
}

func TestHealthz(t *testing.T) {
	srv := NewServer("127.0.0.1:0", stubSource{}, nopLogger{})
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, 200, rr.Code)
}

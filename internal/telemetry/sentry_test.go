package telemetry

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
)

func TestInitSentry_DisabledWithoutDSN(t *testing.T) {
	err := InitSentry("", "test", "dev", 0.1, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NoError(t, err)
}

func TestScrubPII(t *testing.T) {
	event := &sentry.Event{
		User: sentry.User{Email: "ana@example.com", IPAddress: "10.0.0.1"},
		Request: &sentry.Request{Headers: map[string]string{
			"Authorization": "Bearer abc",
			"Content-Type":  "application/json",
		}},
	}

	got := scrubPII(event)

	assert.Equal(t, "[redacted]", got.User.Email)
	assert.Empty(t, got.User.IPAddress)
	assert.Equal(t, "[redacted]", got.Request.Headers["Authorization"])
	assert.Equal(t, "application/json", got.Request.Headers["Content-Type"])
	assert.Nil(t, scrubPII(nil))
}

func TestPanicReporter_RePanics(t *testing.T) {
	h := PanicReporter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	assert.PanicsWithValue(t, "boom", func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

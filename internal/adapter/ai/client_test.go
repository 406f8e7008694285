package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarensabesk/HireAI/internal/config"
	"github.com/sarensabesk/HireAI/internal/domain"
)

func testConfig(baseURL string) config.Config {
	return config.Config{
		AIAPIKey:    "test-key",
		AIBaseURL:   baseURL,
		AIModel:     "test/model",
		AITimeout:   2 * time.Second,
		AIMaxTokens: 64,
	}
}

func TestGenerateSuccess(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "test/model", req["model"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"model": "test/model",
			"choices": []map[string]any{
				{"message": map[string]string{"content": "hello"}},
			},
		})
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	out, err := c.Generate(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestGenerateMissingKey(t *testing.T) {
	t.Parallel()
	c := New(config.Config{AIBaseURL: "http://localhost:0"})
	_, err := c.Generate(context.Background(), "x")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestGenerateNon2xx(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"bad model"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	_, err := c.Generate(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestGenerateEmptyChoices(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL))
	_, err := c.Generate(context.Background(), "x")
	require.Error(t, err)
}

func TestGenerateTimeout(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.AITimeout = 50 * time.Millisecond
	c := New(cfg)
	_, err := c.Generate(context.Background(), "x")
	require.ErrorIs(t, err, domain.ErrUpstreamTimeout)
}

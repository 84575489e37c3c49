package omdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	// Mock OMDb API
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "The Matrix", r.URL.Query().Get("t"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Response": "True",
			"Title": "The Matrix",
			"Genre": "Action, Sci-Fi",
			"Plot": "A computer hacker learns the truth.",
			"Runtime": "136 min"
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	res, err := client.Fetch(context.Background(), "The Matrix")
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", res.Title)
	assert.Equal(t, []string{"Action", "Sci-Fi"}, res.Genres)
	assert.Equal(t, "A computer hacker learns the truth.", res.Plot)
	assert.Equal(t, 136, res.RuntimeMinutes)
}

func TestClient_Fetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// OMDb reports misses inside a 200 response
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	res, err := client.Fetch(context.Background(), "No Such Movie")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Fetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bad-key", WithBaseURL(server.URL))

	res, err := client.Fetch(context.Background(), "The Matrix")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClient_Fetch_Placeholders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"Response": "True",
			"Title": "Obscure Film",
			"Genre": "N/A",
			"Plot": "N/A",
			"Runtime": "N/A"
		}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	res, err := client.Fetch(context.Background(), "Obscure Film")
	require.NoError(t, err)
	assert.Empty(t, res.Genres, "N/A genre means no data")
	assert.Empty(t, res.Plot, "N/A plot means no data")
	assert.Zero(t, res.RuntimeMinutes, "N/A runtime means absent")
}

func TestParseRuntimeMinutes(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"127 min", 127},
		{"90", 90},
		{"N/A", 0},
		{"", 0},
		{"min 90", 0},
		{"-5 min", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseRuntimeMinutes(tt.value), "value %q", tt.value)
	}
}

func TestParseGenres(t *testing.T) {
	assert.Equal(t, []string{"Action", "Sci-Fi"}, parseGenres("Action, Sci-Fi"))
	assert.Equal(t, []string{"Drama"}, parseGenres(" Drama , "))
	assert.Nil(t, parseGenres("N/A"))
	assert.Nil(t, parseGenres(""))
}

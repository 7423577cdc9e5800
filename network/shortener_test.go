package network

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortener_Shorten(t *testing.T) {
	var gotBody shortenRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"id": "http://goo.gl/abc"})
	}))
	defer srv.Close()

	s := NewShortener(WithEndpoint(srv.URL), WithTimeout(time.Second))
	short, err := s.Shorten(context.Background(), "http://example.com/maps?id=very-long")

	require.NoError(t, err)
	assert.Equal(t, "http://goo.gl/abc", short)
	assert.Equal(t, "http://example.com/maps?id=very-long", gotBody.LongURL)
}

func TestShortener_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewShortener(WithEndpoint(srv.URL))
	_, err := s.Shorten(context.Background(), "http://example.com/")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestShortener_EmptyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	s := NewShortener(WithEndpoint(srv.URL))
	_, err := s.Shorten(context.Background(), "http://example.com/")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty id")
}

func TestShortener_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewShortener(WithEndpoint(srv.URL))
	_, err := s.Shorten(ctx, "http://example.com/")
	require.Error(t, err)
}

package lyrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/Daft%20Punk/Get%20Lucky", r.URL.EscapedPath())
		w.Write([]byte(`{"lyrics": "Like the legend of the phoenix..."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.Fetch(context.Background(), " Daft Punk ", "Get Lucky")
	require.NoError(t, err)
	assert.Equal(t, "Like the legend of the phoenix...", got)
}

func TestFetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Fetch(context.Background(), "Nobody", "Nothing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFetch_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Fetch(context.Background(), "Daft Punk", "Get Lucky")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

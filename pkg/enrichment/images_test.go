package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImageFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/media/123456/0/600/Hager-MCS316.jpg", r.URL.Path)
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	fetcher := NewImageFetcher(server.Client(), zap.NewNop())
	name, data, err := fetcher.Fetch(context.Background(), server.URL+"/media/123456/0/600/Hager-MCS316.jpg")
	require.NoError(t, err)

	assert.Equal(t, "Hager-MCS316.jpg", name)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestImageFetcher_Fetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := NewImageFetcher(server.Client(), zap.NewNop())
	_, _, err := fetcher.Fetch(context.Background(), server.URL+"/missing.jpg")
	assert.Error(t, err)
}

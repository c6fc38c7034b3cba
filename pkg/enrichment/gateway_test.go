package enrichment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// roundTripFunc lets a test serve canned responses for any URL, keeping the
// eager parameter fetches off the real shop hosts.
type roundTripFunc func(r *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func cannedResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestGateway(rt roundTripFunc) *gateway {
	return &gateway{
		client: &http.Client{Transport: rt},
		logger: zap.NewNop(),
	}
}

// noopGateway suits tests that never issue a request.
func noopGateway() *gateway {
	return newTestGateway(func(r *http.Request) (*http.Response, error) {
		return nil, fmt.Errorf("unexpected request to %s", r.URL)
	})
}

func TestGateway_Resolve(t *testing.T) {
	g := newTestGateway(func(r *http.Request) (*http.Response, error) {
		return cannedResponse(`{}`), nil
	})
	ctx := context.Background()

	tests := []struct {
		name     string
		supplier string
		want     any
	}{
		{name: "wuerth full legal name", supplier: "Adolf Würth GmbH & Co. KG", want: &wuerthWebsite{}},
		{name: "wuerth ascii spelling", supplier: "wuerth", want: &wuerthWebsite{}},
		{name: "zander full legal name", supplier: "J.W.Zander GmbH & Co.KG", want: &zanderWebsite{}},
		{name: "buerkle", supplier: "Alexander Bürkle GmbH & Co. KG", want: &buerkleWebsite{}},
		{name: "sonepar", supplier: "Sonepar Deutschland", want: &soneparWebsite{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := g.Resolve(ctx, tt.supplier, "12345")
			require.NotNil(t, site)
			assert.IsType(t, tt.want, site)
		})
	}
}

func TestGateway_Resolve_UnknownSupplier(t *testing.T) {
	g := newTestGateway(func(r *http.Request) (*http.Response, error) {
		t.Fatal("no request expected for an unknown supplier")
		return nil, nil
	})

	assert.Nil(t, g.Resolve(context.Background(), "Some Local Wholesaler", "12345"))
	assert.Nil(t, g.Resolve(context.Background(), "", "12345"))
}

func TestGateway_Resolve_SurvivesParameterFetchFailure(t *testing.T) {
	// The details endpoint answers garbage; the capability is still returned
	// and degrades to an empty image URL instead of failing the scan.
	g := newTestGateway(func(r *http.Request) (*http.Response, error) {
		return cannedResponse(`not json`), nil
	})

	site := g.Resolve(context.Background(), "ZANDER", "MCS316")
	require.NotNil(t, site)
	assert.Equal(t, "https://zander.online/artikel/MCS316", site.PartURL(""))
	assert.Empty(t, site.ImageURL(context.Background()))
}

package enrichment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"go.uber.org/zap"
)

// ImageFetcher downloads product images from supplier media URLs.
type ImageFetcher interface {
	// Fetch returns the image bytes and a filename derived from the URL path.
	Fetch(ctx context.Context, imageURL string) (filename string, data []byte, err error)
}

type imageFetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewImageFetcher creates an ImageFetcher using the given HTTP client. A nil
// client falls back to a 10s-timeout default.
func NewImageFetcher(client *http.Client, logger *zap.Logger) ImageFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &imageFetcher{client: client, logger: logger.Named("images")}
}

var _ ImageFetcher = (*imageFetcher)(nil)

func (f *imageFetcher) Fetch(ctx context.Context, imageURL string) (string, []byte, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", nil, fmt.Errorf("invalid image URL: %w", err)
	}
	name := path.Base(parsed.Path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("image download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("image download read failed: %w", err)
	}
	return name, data, nil
}

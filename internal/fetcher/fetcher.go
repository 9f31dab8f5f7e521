package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/TamerPlatform/frida-push/internal/domain"
)

type HTTPFetcher struct {
	client    *http.Client
	outputDir string
}

func New(outputDir string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		outputDir: outputDir,
	}
}

// Fetch downloads the compressed asset next to the cache so the later
// rename into the cache stays on one filesystem. The caller owns the
// downloaded file.
func (f *HTTPFetcher) Fetch(ctx context.Context, asset domain.Asset) domain.FetchResult {
	dst := filepath.Join(f.outputDir, asset.Filename+path.Ext(asset.DownloadURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.DownloadURL, nil)
	if err != nil {
		return domain.FetchResult{Asset: asset, Error: fmt.Errorf("%w: %v", domain.ErrDownload, err)}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.FetchResult{Asset: asset, Error: fmt.Errorf("%w: %v", domain.ErrDownload, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.FetchResult{
			Asset: asset,
			Error: fmt.Errorf("%w: unexpected status %d for %s", domain.ErrDownload, resp.StatusCode, asset.DownloadURL),
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return domain.FetchResult{Asset: asset, Error: fmt.Errorf("%w: %v", domain.ErrDownload, err)}
	}

	file, err := os.Create(dst)
	if err != nil {
		return domain.FetchResult{Asset: asset, Error: fmt.Errorf("%w: %v", domain.ErrDownload, err)}
	}
	defer file.Close()

	bar := progressbar.DefaultBytes(
		resp.ContentLength,
		fmt.Sprintf("Downloading %s", asset.Filename),
	)

	if _, err := io.Copy(io.MultiWriter(file, bar), resp.Body); err != nil {
		os.Remove(dst)
		return domain.FetchResult{Asset: asset, Error: fmt.Errorf("%w: %v", domain.ErrDownload, err)}
	}

	return domain.FetchResult{Asset: asset, Path: dst}
}

package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// GitHub answers "what is the newest published release" against the
// GitHub API. It is only consulted when neither the device nor the config
// pins a version.
type GitHub struct {
	client *http.Client
	base   string
	repo   string
}

func NewGitHub(base, repo string) *GitHub {
	return &GitHub{
		client: &http.Client{Timeout: 30 * time.Second},
		base:   strings.TrimRight(base, "/"),
		repo:   repo,
	}
}

func (g *GitHub) Latest(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", g.base, g.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("querying latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("querying latest release: unexpected status %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decoding release: %w", err)
	}

	if release.TagName == "" {
		return "", fmt.Errorf("release has no tag name")
	}

	return strings.TrimPrefix(release.TagName, "v"), nil
}

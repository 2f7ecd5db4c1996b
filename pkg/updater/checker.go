package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kpauljoseph/pdf2pptx/pkg/logger"
	"github.com/kpauljoseph/pdf2pptx/pkg/version"
)

const (
	DefaultReleaseURL = "https://api.github.com/repos/kpauljoseph/pdf2pptx/releases/latest"
	userAgent         = "pdf2pptx-updater"
)

type Checker struct {
	client         *http.Client
	logger         *logger.Logger
	releaseURL     string
	currentVersion string
}

type Option func(*Checker)

func WithReleaseURL(url string) Option {
	return func(c *Checker) {
		c.releaseURL = url
	}
}

func WithCurrentVersion(v string) Option {
	return func(c *Checker) {
		c.currentVersion = v
	}
}

func NewChecker(log *logger.Logger, opts ...Option) *Checker {
	c := &Checker{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:         log,
		releaseURL:     DefaultReleaseURL,
		currentVersion: version.Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckForUpdates compares the running version with the latest published
// release.
func (c *Checker) CheckForUpdates(ctx context.Context) (*UpdateInfo, error) {
	c.logger.Debug("Checking for updates at %s", c.releaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.releaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release endpoint returned status %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release: %w", err)
	}
	if release.TagName == "" {
		return nil, fmt.Errorf("release has no tag")
	}

	current := strings.TrimPrefix(c.currentVersion, "v")
	latest := strings.TrimPrefix(release.TagName, "v")

	return &UpdateInfo{
		CurrentVersion: current,
		LatestVersion:  latest,
		ReleaseNotes:   release.Body,
		DownloadURL:    release.HTMLURL,
		IsAvailable:    !release.Draft && !release.Prerelease && CompareVersions(current, latest) < 0,
	}, nil
}

// CompareVersions orders dotted versions numerically. Non-numeric parts
// compare as strings. It returns -1, 0 or 1.
func CompareVersions(v1, v2 string) int {
	parts1 := strings.Split(v1, ".")
	parts2 := strings.Split(v2, ".")

	for i := 0; i < len(parts1) && i < len(parts2); i++ {
		if c := comparePart(parts1[i], parts2[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(parts1) < len(parts2):
		return -1
	case len(parts1) > len(parts2):
		return 1
	}
	return 0
}

func comparePart(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

package version

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/asset_harbor/pkg/common"
)

var (
	// Version information, injected at build time via main package
	AppVersion   = "dev"
	AppGitCommit = "unknown"
	AppBuildTime = "unknown"

	// GitHub repository information
	GitHubOwner = "yi-nology"
	GitHubRepo  = "asset_harbor"
)

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
}

// GitHubReleaseInfo is the subset of release metadata exposed to clients.
type GitHubReleaseInfo struct {
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	PublishedAt string `json:"published_at"`
	HtmlUrl     string `json:"html_url"`
	Prerelease  bool   `json:"prerelease"`
	Body        string `json:"body"`
}

// githubRelease represents the GitHub API release response
type githubRelease struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
	Prerelease  bool      `json:"prerelease"`
	Body        string    `json:"body"`
}

// GetVersion .
// @router /api/v1/version [GET]
func GetVersion(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Msg:  "success",
		Data: &VersionInfo{
			Version:   AppVersion,
			GitCommit: AppGitCommit,
			BuildTime: AppBuildTime,
		},
	})
}

// GetLatestRelease .
// @router /api/v1/version/latest [GET]
func GetLatestRelease(ctx context.Context, c *app.RequestContext) {
	releaseInfo, err := fetchLatestGitHubRelease(ctx)
	if err != nil {
		c.JSON(consts.StatusOK, common.CommonResponse{
			Code:  consts.StatusInternalServerError,
			Msg:   "failed to fetch GitHub release",
			Error: err.Error(),
		})
		return
	}

	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Msg:  "success",
		Data: releaseInfo,
	})
}

func fetchLatestGitHubRelease(ctx context.Context) (*GitHubReleaseInfo, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", GitHubOwner, GitHubRepo)

	httpCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(httpCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "asset-harbor")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("GitHub API returned %d: %s", resp.StatusCode, string(body))
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &GitHubReleaseInfo{
		TagName:     release.TagName,
		Name:        release.Name,
		PublishedAt: release.PublishedAt.Format(time.RFC3339),
		HtmlUrl:     release.HTMLURL,
		Prerelease:  release.Prerelease,
		Body:        release.Body,
	}, nil
}

package repository

import (
	"context"
	"log/slog"
	"strings"
)

// Provider names for metadata enrichment.
const (
	ProviderGitHub = "github"
	ProviderGitLab = "gitlab"
	ProviderLocal  = "local"
)

// DetectProvider infers the hosting platform from a repository URL.
// Unknown hosts are fine: enrichment is best-effort.
func DetectProvider(repoURL string) string {
	if _, ok := localDir(repoURL); ok {
		return ProviderLocal
	}
	lower := strings.ToLower(repoURL)
	switch {
	case strings.Contains(lower, "github.com"):
		return ProviderGitHub
	case strings.Contains(lower, "gitlab.com"):
		return ProviderGitLab
	default:
		return ""
	}
}

// Describe fetches repository metadata (default branch, primary language,
// stars) from the hosting provider for inclusion in scan result metadata.
// Failures are logged and yield an empty map: enrichment never blocks a scan.
func Describe(ctx context.Context, repoURL, token string) map[string]string {
	provider := DetectProvider(repoURL)
	owner, repo := parseOwnerRepo(repoURL)

	meta := map[string]string{}
	if provider != "" {
		meta["provider"] = provider
	}
	if provider == ProviderLocal || owner == "" || repo == "" {
		return meta
	}

	var (
		described map[string]string
		err       error
	)
	switch provider {
	case ProviderGitHub:
		described, err = describeGitHub(ctx, owner, repo, token)
	case ProviderGitLab:
		described, err = describeGitLab(owner, repo, token)
	default:
		return meta
	}
	if err != nil {
		slog.Debug("Repository metadata lookup failed",
			"provider", provider, "repo", owner+"/"+repo, "error", err)
		return meta
	}
	for k, v := range described {
		if v != "" {
			meta[k] = v
		}
	}
	return meta
}

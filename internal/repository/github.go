package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	gogithub "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// describeGitHub looks up repository metadata via the GitHub API. An empty
// token means unauthenticated access, which works for public repositories.
func describeGitHub(ctx context.Context, owner, repo, token string) (map[string]string, error) {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	}
	client := gogithub.NewClient(hc)

	r, _, err := client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("getting GitHub repo %s/%s: %w", owner, repo, err)
	}

	return map[string]string{
		"default_branch": r.GetDefaultBranch(),
		"repo_language":  r.GetLanguage(),
		"stars":          strconv.Itoa(r.GetStargazersCount()),
	}, nil
}

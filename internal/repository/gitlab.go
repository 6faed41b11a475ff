package repository

import (
	"fmt"
	"strconv"

	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// describeGitLab looks up project metadata via the GitLab API.
func describeGitLab(owner, repo, token string) (map[string]string, error) {
	client, err := gitlab.NewClient(token)
	if err != nil {
		return nil, fmt.Errorf("creating GitLab client: %w", err)
	}

	nameWithNS := owner + "/" + repo
	proj, _, err := client.Projects.GetProject(nameWithNS, nil)
	if err != nil {
		return nil, fmt.Errorf("getting GitLab project %s: %w", nameWithNS, err)
	}

	return map[string]string{
		"default_branch": proj.DefaultBranch,
		"stars":          strconv.FormatInt(proj.StarCount, 10),
	}, nil
}

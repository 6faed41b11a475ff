// Package repository materialises the tree to be scanned. It is the
// ingestion collaborator in front of the engine: the engine only ever sees
// a root directory that this package has already put on disk.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// DefaultCloneTimeout bounds remote materialisation. The engine is never
// invoked when the clone fails or times out.
const DefaultCloneTimeout = 5 * time.Minute

// Checkout describes a materialised source tree.
type Checkout struct {
	Path   string
	Owner  string
	Repo   string
	Branch string
	Commit string
	// Local is true when the caller pointed us at an existing directory;
	// nothing was cloned and Cleanup is a no-op.
	Local  bool
	tmpDir bool
}

// Materializer clones remote repositories to temporary directories, or
// passes local directories through untouched.
type Materializer struct {
	timeout time.Duration
	token   string
}

// NewMaterializer creates a Materializer. timeout <= 0 uses the default;
// token authenticates HTTPS clones when set.
func NewMaterializer(timeout time.Duration, token string) *Materializer {
	if timeout <= 0 {
		timeout = DefaultCloneTimeout
	}
	return &Materializer{timeout: timeout, token: token}
}

// Materialize puts the repository behind repoURL on local disk. A repoURL
// that is an existing directory (or a file:// URL) is used in place.
func (m *Materializer) Materialize(ctx context.Context, repoURL, branch string) (*Checkout, error) {
	if dir, ok := localDir(repoURL); ok {
		owner, repo := parseOwnerRepo(dir)
		return &Checkout{Path: dir, Owner: owner, Repo: repo, Local: true}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "scansec-clone-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}

	cloneOpts := &gogit.CloneOptions{
		URL:   repoURL,
		Depth: 1, // shallow clone for speed
	}
	if m.token != "" {
		cloneOpts.Auth = &githttp.BasicAuth{
			Username: "scansec",
			Password: m.token,
		}
	}
	if branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		cloneOpts.SingleBranch = true
	}

	slog.Debug("Cloning repository",
		"url", repoURL,
		"branch", branch,
		"dest", tmpDir,
		"timeout", m.timeout,
	)

	repo, err := gogit.PlainCloneContext(ctx, tmpDir, false, cloneOpts)
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("cloning %s: %w", repoURL, err)
	}

	head, err := repo.Head()
	if err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	resolvedBranch := head.Name().Short()
	if resolvedBranch == "" {
		resolvedBranch = branch
	}

	owner, repoName := parseOwnerRepo(repoURL)
	return &Checkout{
		Path:   tmpDir,
		Owner:  owner,
		Repo:   repoName,
		Branch: resolvedBranch,
		Commit: head.Hash().String(),
		tmpDir: true,
	}, nil
}

// Cleanup removes the temporary clone directory, if one was created.
func (m *Materializer) Cleanup(co *Checkout) {
	if co == nil || !co.tmpDir {
		return
	}
	if err := os.RemoveAll(co.Path); err != nil {
		slog.Warn("Failed to clean up clone directory",
			"path", co.Path, "error", err)
	}
}

// localDir reports whether repoURL names an existing local directory.
func localDir(repoURL string) (string, bool) {
	dir := strings.TrimPrefix(repoURL, "file://")
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}

// parseOwnerRepo extracts the owner and repository name from a git URL.
// Supports HTTPS (https://github.com/owner/repo.git) and SSH
// (git@github.com:owner/repo.git); for local paths only the last segment
// is meaningful.
func parseOwnerRepo(repoURL string) (owner, repo string) {
	u := strings.TrimSuffix(strings.TrimRight(repoURL, "/"), ".git")

	if strings.Contains(u, "://") {
		parts := strings.Split(u, "/")
		if len(parts) >= 2 {
			return parts[len(parts)-2], parts[len(parts)-1]
		}
	}

	// SSH format: git@host:owner/repo
	if idx := strings.Index(u, ":"); idx != -1 && !strings.Contains(u[:idx], "/") {
		parts := strings.SplitN(u[idx+1:], "/", 2)
		if len(parts) == 2 {
			return parts[0], parts[1]
		}
	}

	if idx := strings.LastIndex(u, "/"); idx != -1 {
		return "", u[idx+1:]
	}
	return "", u
}

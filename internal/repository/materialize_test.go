package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMaterializeLocalDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.py"), []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	m := NewMaterializer(0, "")
	co, err := m.Materialize(context.Background(), dir, "")
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	if !co.Local || co.Path != dir {
		t.Fatalf("expected in-place local checkout, got %+v", co)
	}

	// Cleanup must never touch a directory we did not create.
	m.Cleanup(co)
	if _, err := os.Stat(filepath.Join(dir, "main.py")); err != nil {
		t.Fatalf("cleanup removed a local directory: %v", err)
	}
}

func TestMaterializeFileURL(t *testing.T) {
	dir := t.TempDir()
	m := NewMaterializer(time.Minute, "")

	co, err := m.Materialize(context.Background(), "file://"+dir, "")
	if err != nil {
		t.Fatalf("materialize file url: %v", err)
	}
	if !co.Local || co.Path != dir {
		t.Fatalf("expected file:// to resolve in place, got %+v", co)
	}
}

func TestMaterializeMissingPathFails(t *testing.T) {
	m := NewMaterializer(5*time.Second, "")
	missing := filepath.Join(t.TempDir(), "absent")

	if _, err := m.Materialize(context.Background(), missing, ""); err == nil {
		t.Fatalf("expected error for nonexistent repository path")
	}
}

func TestParseOwnerRepo(t *testing.T) {
	cases := []struct {
		url   string
		owner string
		repo  string
	}{
		{"https://github.com/acme/shop", "acme", "shop"},
		{"https://github.com/acme/shop.git", "acme", "shop"},
		{"https://gitlab.com/group/project/", "group", "project"},
		{"git@github.com:acme/shop.git", "acme", "shop"},
		{"/srv/repos/shop", "", "shop"},
		{"shop", "", "shop"},
	}
	for _, tc := range cases {
		owner, repo := parseOwnerRepo(tc.url)
		if owner != tc.owner || repo != tc.repo {
			t.Fatalf("parseOwnerRepo(%q) = %q/%q, want %q/%q",
				tc.url, owner, repo, tc.owner, tc.repo)
		}
	}
}

func TestDetectProvider(t *testing.T) {
	local := t.TempDir()
	cases := map[string]string{
		"https://github.com/acme/shop":   ProviderGitHub,
		"git@GitHub.com:acme/shop.git":   ProviderGitHub,
		"https://gitlab.com/group/proj":  ProviderGitLab,
		"https://example.com/random.git": "",
		local:                            ProviderLocal,
	}
	for url, want := range cases {
		if got := DetectProvider(url); got != want {
			t.Fatalf("DetectProvider(%q) = %q, want %q", url, got, want)
		}
	}
}

func TestDescribeLocalIsOffline(t *testing.T) {
	local := t.TempDir()
	meta := Describe(context.Background(), local, "")
	if meta["provider"] != ProviderLocal {
		t.Fatalf("expected local provider, got %+v", meta)
	}
	if len(meta) != 1 {
		t.Fatalf("local describe must not add remote metadata: %+v", meta)
	}
}

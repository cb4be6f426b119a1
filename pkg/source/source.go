// Package source resolves the AlanFL program text the CLI should run,
// either from a local file or by cloning a small remote git repository —
// the same go-git-backed fetch the teacher's dependency installer uses,
// minus any package-manager semantics (there's no dependency graph here,
// just one file to read out of a checkout).
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	gitmemfs "github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Local reads the AlanFL source at path.
func Local(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading source %s: %w", path, err)
	}
	return string(data), nil
}

// Git clones url at ref into an in-memory worktree and returns the text of
// entryPath inside it. It never touches the local filesystem beyond the
// caller's own working directory.
func Git(url, ref, entryPath string) (string, error) {
	fs := gitmemfs.New()
	repo, err := git.Clone(memory.NewStorage(), fs, &git.CloneOptions{
		URL:           url,
		ReferenceName: plumbing.NewBranchReferenceName(ref),
		Depth:         1,
		SingleBranch:  true,
	})
	if err != nil {
		return "", fmt.Errorf("cloning %s@%s: %w", url, ref, err)
	}
	_ = repo

	f, err := fs.Open(filepath.Clean(entryPath))
	if err != nil {
		return "", fmt.Errorf("opening %s in %s@%s: %w", entryPath, url, ref, err)
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("reading %s in %s@%s: %w", entryPath, url, ref, err)
	}
	return string(buf), nil
}

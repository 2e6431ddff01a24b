package gitinfo

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/openkraft/localelint/internal/domain"
)

// GitInfoAdapter implements domain.ChangeDetector using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func open(projectPath string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%s is not a git repository: %w", projectPath, err)
	}
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}
	return repo, nil
}

func (g *GitInfoAdapter) CommitHash(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// ChangedFiles returns the names of documents directly inside dir that were
// added or modified between since and HEAD. Names are relative to dir and sorted.
func (g *GitInfoAdapter) ChangedFiles(projectPath, since, dir string, extensions []string) ([]string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return nil, err
	}

	relDir, err := dirInWorktree(repo, projectPath, dir)
	if err != nil {
		return nil, err
	}

	fromTree, err := treeAt(repo, plumbing.Revision(since))
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", since, err)
	}
	toTree, err := treeAt(repo, plumbing.Revision(plumbing.HEAD))
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	changes, err := object.DiffTree(fromTree, toTree)
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}

	var names []string
	for _, ch := range changes {
		action, err := ch.Action()
		if err != nil {
			return nil, err
		}
		if action == merkletrie.Delete {
			continue
		}
		name := ch.To.Name
		if path.Dir(name) != relDir || !domain.IsRecognizedExtension(name, extensions) {
			continue
		}
		names = append(names, path.Base(name))
	}
	sort.Strings(names)
	return names, nil
}

func treeAt(repo *git.Repository, rev plumbing.Revision) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(rev)
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}

// dirInWorktree expresses projectPath/dir as a slash path relative to the
// worktree root, which is how tree entries are named.
func dirInWorktree(repo *git.Repository, projectPath, dir string) (string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("opening worktree: %w", err)
	}
	root, err := resolve(wt.Filesystem.Root())
	if err != nil {
		return "", err
	}
	target, err := resolve(filepath.Join(projectPath, dir))
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", fmt.Errorf("locating %s in worktree: %w", dir, err)
	}
	return filepath.ToSlash(rel), nil
}

func resolve(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}

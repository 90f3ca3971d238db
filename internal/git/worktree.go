package git

import (
	"context"
	"fmt"
	"strings"
)

// HasStagedChanges checks if there are staged changes
func HasStagedChanges(ctx context.Context) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "diff", "--cached", "--shortstat")
	if err != nil {
		return false, fmt.Errorf("failed to check staged changes: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// HasUnstagedChanges checks if there are unstaged changes to tracked files
func HasUnstagedChanges(ctx context.Context) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "diff", "--name-only")
	if err != nil {
		return false, fmt.Errorf("failed to check unstaged changes: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// HasUntrackedFiles checks if there are untracked files
func HasUntrackedFiles(ctx context.Context) (bool, error) {
	output, err := RunGitCommandWithContext(ctx, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return false, fmt.Errorf("failed to check untracked files: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// IsWorktreeDirty reports whether the working tree differs from HEAD in any
// way a fix commit would capture: staged changes, unstaged changes to tracked
// files, or untracked files.
func IsWorktreeDirty(ctx context.Context) (bool, error) {
	staged, err := HasStagedChanges(ctx)
	if err != nil {
		return false, err
	}
	if staged {
		return true, nil
	}

	unstaged, err := HasUnstagedChanges(ctx)
	if err != nil {
		return false, err
	}
	if unstaged {
		return true, nil
	}

	return HasUntrackedFiles(ctx)
}

// ChangedFiles returns the paths of modified tracked files and untracked
// files, relative to the repository root.
func ChangedFiles(ctx context.Context) ([]string, error) {
	modified, err := RunGitCommandLinesWithContext(ctx, "diff", "--name-only", "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to list modified files: %w", err)
	}

	untracked, err := RunGitCommandLinesWithContext(ctx, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("failed to list untracked files: %w", err)
	}

	seen := make(map[string]bool, len(modified)+len(untracked))
	var files []string
	for _, f := range append(modified, untracked...) {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		files = append(files, f)
	}
	return files, nil
}

package git

import (
	"context"
	"fmt"
	"strings"
)

// GetRemoteURL returns the URL configured for a remote
func GetRemoteURL(ctx context.Context, remote string) (string, error) {
	url, err := RunGitCommandWithContext(ctx, "config", "--get", "remote."+remote+".url")
	if err != nil {
		return "", fmt.Errorf("failed to get URL for remote %s: %w", remote, err)
	}
	return url, nil
}

// HasRemote reports whether the repository has the named remote configured.
func HasRemote(ctx context.Context, remote string) bool {
	_, err := RunGitCommandWithContext(ctx, "config", "--get", "remote."+remote+".url")
	return err == nil
}

// ParseOwnerRepo extracts the owner and repository name from a remote URL.
// Handles both https and ssh formats:
//
//	https://github.com/owner/repo.git
//	git@github.com:owner/repo.git
func ParseOwnerRepo(url string) (string, string, error) {
	url = strings.TrimSuffix(url, ".git")
	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("invalid remote URL %q", url)
	}

	repoName := parts[len(parts)-1]
	var owner string
	if strings.Contains(url, "@") {
		// SSH format: git@github.com:owner/repo
		sshParts := strings.Split(url, ":")
		if len(sshParts) < 2 {
			return "", "", fmt.Errorf("invalid SSH remote URL %q", url)
		}
		pathParts := strings.Split(sshParts[1], "/")
		if len(pathParts) < 2 {
			return "", "", fmt.Errorf("invalid SSH remote URL %q", url)
		}
		owner = pathParts[0]
	} else {
		// HTTPS format: https://github.com/owner/repo
		owner = parts[len(parts)-2]
	}

	return owner, repoName, nil
}

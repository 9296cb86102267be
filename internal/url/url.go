// Package url derives project information from git source URLs.
package url

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// SourceInfo contains the parsed parts of a project's source URL.
type SourceInfo struct {
	Host string // e.g., "github.com"; empty for local paths
	Path string // e.g., "user1/myapp", without a .git suffix
	Name string // last path component, the default project name
}

// Parse extracts host, path, and a default project name from a git source
// URL. It accepts HTTP(S) URLs, SSH and scp-like forms, and local paths.
func Parse(sourceURL string) (*SourceInfo, error) {
	if sourceURL == "" {
		return nil, fmt.Errorf("source URL must not be empty")
	}

	if isLocalPath(sourceURL) {
		name := strings.TrimSuffix(filepath.Base(filepath.Clean(sourceURL)), ".git")
		if name == "" || name == "." || name == string(filepath.Separator) {
			return nil, fmt.Errorf("cannot derive a project name from %s", sourceURL)
		}
		return &SourceInfo{Path: name, Name: name}, nil
	}

	normalized := normalizeURL(sourceURL)
	parsed, err := url.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source URL: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("no host found in URL: %s", sourceURL)
	}

	repoPath := strings.TrimSuffix(strings.Trim(parsed.Path, "/"), ".git")
	if repoPath == "" {
		return nil, fmt.Errorf("no repository path in URL: %s", sourceURL)
	}

	parts := strings.Split(repoPath, "/")
	name := parts[len(parts)-1]
	if name == "" {
		return nil, fmt.Errorf("cannot derive a project name from %s", sourceURL)
	}

	return &SourceInfo{
		Host: parsed.Host,
		Path: repoPath,
		Name: name,
	}, nil
}

// ProjectName derives the default project name from a source URL: the last
// path component with any .git suffix removed.
func ProjectName(sourceURL string) (string, error) {
	info, err := Parse(sourceURL)
	if err != nil {
		return "", err
	}
	return info.Name, nil
}

// normalizeURL converts SSH and scp-like git URL forms to a standard
// HTTP(S) form for parsing.
func normalizeURL(sourceURL string) string {
	if strings.HasPrefix(sourceURL, "git@") {
		// git@github.com:user/repo.git -> https://github.com/user/repo.git
		parts := strings.SplitN(sourceURL, ":", 2)
		if len(parts) == 2 {
			host := strings.TrimPrefix(parts[0], "git@")
			sourceURL = fmt.Sprintf("https://%s/%s", host, parts[1])
		}
	} else if strings.HasPrefix(sourceURL, "ssh://") {
		// ssh://git@github.com/user/repo.git -> https://github.com/user/repo.git
		trimmed := strings.TrimPrefix(sourceURL, "ssh://")
		trimmed = strings.TrimPrefix(trimmed, "git@")
		trimmed = strings.Replace(trimmed, ":", "/", 1)
		sourceURL = "https://" + trimmed
	}

	if !strings.HasPrefix(sourceURL, "http://") && !strings.HasPrefix(sourceURL, "https://") {
		sourceURL = "https://" + sourceURL
	}

	return sourceURL
}

// isLocalPath reports whether the source points at the local file system
// rather than a remote.
func isLocalPath(sourceURL string) bool {
	return strings.HasPrefix(sourceURL, "/") ||
		strings.HasPrefix(sourceURL, "./") ||
		strings.HasPrefix(sourceURL, "../") ||
		strings.HasPrefix(sourceURL, "~/")
}

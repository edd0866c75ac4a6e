// Package upload defines the remote-storage boundary: a small provider
// interface, destination path sanitization, and the Azure Blob
// implementation.
package upload

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
)

var (
	ErrNotConfigured    = errors.New("remote storage is not configured: set connection string and container")
	ErrBadContainerName = errors.New("invalid container name")
	ErrUnknownProvider  = errors.New("unknown storage provider")
)

// Provider uploads arbitrary byte payloads to a destination path. Content
// type may be empty when unknown.
type Provider interface {
	Upload(ctx context.Context, data []byte, destination, contentType string) error
}

// Target names an upload destination: a provider, a container within it,
// and an optional path prefix.
type Target struct {
	Provider  string
	Container string
	Prefix    string
}

// Settings is the slice of configuration the provider factory needs. The
// config store satisfies it.
type Settings interface {
	ConnectionString() string
	Container() string
	DefaultPrefix() string
}

// Build validates the target against configuration and constructs the
// provider plus the normalized prefix. Configuration problems are fatal to
// the requested operation and surface before any work starts.
func Build(cfg Settings, target Target) (Provider, string, error) {
	if target.Provider == "" {
		target.Provider = "azure"
	}
	if target.Provider != "azure" {
		return nil, "", fmt.Errorf("%w: %q (only azure is supported)", ErrUnknownProvider, target.Provider)
	}

	container := target.Container
	if container == "" {
		container = cfg.Container()
	}
	connectionString := cfg.ConnectionString()
	if connectionString == "" || container == "" {
		return nil, "", ErrNotConfigured
	}
	if err := ValidateContainerName(container); err != nil {
		return nil, "", err
	}

	provider, err := NewAzure(connectionString, container)
	if err != nil {
		return nil, "", err
	}

	prefix := target.Prefix
	if prefix == "" {
		prefix = cfg.DefaultPrefix()
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return provider, prefix, nil
}

var containerNameRE = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateContainerName enforces Azure's container naming rules up front so
// a malformed identifier fails the command instead of the first blob.
func ValidateContainerName(name string) error {
	trimmed := strings.Trim(strings.TrimSpace(name), `"'`)
	if trimmed != name {
		return fmt.Errorf("%w: %q appears quoted; remove the quotes (e.g. --container mycontainer)", ErrBadContainerName, name)
	}
	if len(name) < 3 || len(name) > 63 {
		return fmt.Errorf("%w: must be between 3 and 63 characters", ErrBadContainerName)
	}
	if !containerNameRE.MatchString(name) {
		return fmt.Errorf("%w: only lowercase letters, numbers, and hyphens are allowed", ErrBadContainerName)
	}
	if name[0] == '-' || name[len(name)-1] == '-' {
		return fmt.Errorf("%w: must start and end with a letter or number", ErrBadContainerName)
	}
	return nil
}

var segmentRE = regexp.MustCompile(`[^A-Za-z0-9 ._\-()]`)

// SanitizePath cleans every segment of a destination path: disallowed
// characters become underscores, trailing dots and spaces are stripped, and
// overlong segments are capped.
func SanitizePath(p string) string {
	parts := strings.Split(strings.ReplaceAll(p, `\`, "/"), "/")
	safe := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		safe = append(safe, sanitizeSegment(part))
	}
	return strings.Join(safe, "/")
}

func sanitizeSegment(segment string) string {
	cleaned := strings.TrimSpace(segment)
	if cleaned == "" {
		return "_"
	}
	cleaned = segmentRE.ReplaceAllString(cleaned, "_")
	cleaned = strings.TrimRight(cleaned, " .")
	if cleaned == "" {
		return "_"
	}
	if len(cleaned) > 255 {
		cleaned = cleaned[:255]
	}
	return cleaned
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".heic": "image/heic",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".wmv":  "video/x-ms-wmv",
	".m4v":  "video/x-m4v",
	".mpg":  "video/mpeg",
	".mpeg": "video/mpeg",
	".json": "application/json",
}

// ContentType returns the MIME type for a filename, or "" when unknown.
func ContentType(name string) string {
	return contentTypes[strings.ToLower(path.Ext(name))]
}

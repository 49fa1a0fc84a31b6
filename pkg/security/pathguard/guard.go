// Package pathguard validates the filesystem paths handed to the
// document-conversion pipeline. Conversion requests name arbitrary local
// files, so sources and outputs are resolved to absolute paths and
// checked against denied system-directory prefixes and configurable glob
// deny patterns before anything is read or written.
package pathguard

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// systemPrefixes are directories conversion must never touch, regardless
// of configuration.
var systemPrefixes = []string{
	"/etc",
	"/bin",
	"/sbin",
	"/usr/bin",
	"/usr/sbin",
	"/System",
	"/Library/Security",
	"/private/etc",
	"/private/var/root",
}

// Guard resolves and validates conversion paths.
type Guard struct {
	baseDir        string // resolves relative paths; absolute
	allowedGlobs   []glob.Glob
	deniedGlobs    []glob.Glob
	deniedPatterns []string // kept for error messages
}

// New creates a guard rooted at baseDir. Relative request paths resolve
// against it. Denied patterns take precedence over allowed patterns; an
// empty allowed list permits everything not denied.
func New(baseDir string, allowed, denied []string) (*Guard, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory cannot be empty")
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	g := &Guard{baseDir: absBase, deniedPatterns: denied}

	for _, pattern := range allowed {
		compiled, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed pattern %q: %w", pattern, err)
		}
		g.allowedGlobs = append(g.allowedGlobs, compiled)
	}
	for _, pattern := range denied {
		compiled, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid denied pattern %q: %w", pattern, err)
		}
		g.deniedGlobs = append(g.deniedGlobs, compiled)
	}

	return g, nil
}

// Resolve converts a request path to a cleaned absolute path and
// validates it. The returned path is safe to hand to the converter.
func (g *Guard) Resolve(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(g.baseDir, path)
	}
	resolved := filepath.Clean(path)

	for _, prefix := range systemPrefixes {
		if resolved == prefix || strings.HasPrefix(resolved, prefix+string(filepath.Separator)) {
			return "", fmt.Errorf("access denied to system directory: %s", prefix)
		}
	}

	for i, denied := range g.deniedGlobs {
		if denied.Match(resolved) {
			return "", fmt.Errorf("path %q matches denied pattern %q", resolved, g.deniedPatterns[i])
		}
	}

	if len(g.allowedGlobs) > 0 {
		for _, allowed := range g.allowedGlobs {
			if allowed.Match(resolved) {
				return resolved, nil
			}
		}
		return "", fmt.Errorf("path %q does not match any allowed pattern", resolved)
	}

	return resolved, nil
}

// BaseDir returns the directory relative paths resolve against.
func (g *Guard) BaseDir() string {
	return g.baseDir
}

// Package agent connects a reasoning loop to the tool catalogue. The
// model-backed loop is an external collaborator; this package defines
// the direct runner, a deterministic stand-in that executes tool
// commands verbatim so the full stack can run without a model attached.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/alcovehq/alcove/pkg/agent/tools"
	"github.com/alcovehq/alcove/pkg/logging"
)

// DirectRunner executes messages as tool commands: the first
// whitespace-separated token names a tool, the remainder is passed to it
// as the single-string input. Unknown commands return the catalogue so
// the caller can discover what is available.
type DirectRunner struct {
	registry *tools.Registry
	logger   *logging.Logger
}

// NewDirectRunner builds a runner over the registry.
func NewDirectRunner(registry *tools.Registry, logger *logging.Logger) *DirectRunner {
	return &DirectRunner{registry: registry, logger: logger}
}

// Run executes one turn. It never returns an error for a failed tool
// call; the tool layer renders failures as text.
func (r *DirectRunner) Run(ctx context.Context, message string) (string, error) {
	name, input := splitCommand(message)

	if _, ok := r.registry.Get(name); !ok {
		return r.catalogueHelp(name), nil
	}

	r.logger.Infof("invoking tool %s", name)
	return r.registry.Invoke(ctx, name, input), nil
}

// splitCommand separates the tool name from its input.
func splitCommand(message string) (name, input string) {
	message = strings.TrimSpace(message)
	if i := strings.IndexAny(message, " \t\n"); i >= 0 {
		return message[:i], strings.TrimSpace(message[i+1:])
	}
	return message, ""
}

func (r *DirectRunner) catalogueHelp(name string) string {
	var b strings.Builder
	if name == "" {
		b.WriteString("No command given. Available tools:\n")
	} else {
		fmt.Fprintf(&b, "Unknown tool %q. Available tools:\n", name)
	}
	for _, entry := range r.registry.Catalogue() {
		fmt.Fprintf(&b, "- %s: %s\n", entry.Name, entry.Description)
	}
	return b.String()
}

package tools

import (
	"context"
	"fmt"
	"strings"
)

// Registry is the exhaustive catalogue of operations the reasoning loop
// may invoke. It is built once at startup; duplicate registration is a
// configuration error detected then, not at call time. After startup the
// registry is read-only and safe for concurrent invocation.
type Registry struct {
	specs map[string]Spec
	order []string // registration order, for a deterministic catalogue
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[string]Spec)}
}

// Register adds a tool spec. It fails on an empty or duplicate name and
// on a malformed handler variant.
func (r *Registry) Register(spec Spec) error {
	if spec.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if _, exists := r.specs[spec.Name]; exists {
		return fmt.Errorf("duplicate tool name: %s", spec.Name)
	}
	if spec.Handler.arity() < 0 {
		return fmt.Errorf("tool %s: handler must set exactly one of Nullary, Unary, Binary", spec.Name)
	}

	r.specs[spec.Name] = spec
	r.order = append(r.order, spec.Name)
	return nil
}

// MustRegister registers each spec and panics on configuration errors.
// Intended for startup wiring, where a bad catalogue should abort.
func (r *Registry) MustRegister(specs ...Spec) {
	for _, spec := range specs {
		if err := r.Register(spec); err != nil {
			panic(err)
		}
	}
}

// Get returns the spec registered under name.
func (r *Registry) Get(name string) (Spec, bool) {
	spec, ok := r.specs[name]
	return spec, ok
}

// Names returns the tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Invoke resolves name and calls the tool through the single-input
// adapter. Like the adapter itself it always returns a string; an unknown
// name yields a "tool invocation failed" message.
//
// Schema defaults fill positions the input leaves empty: a binary tool
// whose second field declares a default accepts a bare first argument,
// and a missing first argument falls back to its field default too.
func (r *Registry) Invoke(ctx context.Context, name, input string) string {
	spec, ok := r.specs[name]
	if !ok {
		return fmt.Sprintf("tool invocation failed: unknown tool %q", name)
	}
	return Invoke(ctx, spec.Handler, applyDefaults(spec, input))
}

// applyDefaults re-encodes the input with schema defaults filled in where
// the caller omitted optional positions.
func applyDefaults(spec Spec, input string) string {
	if spec.Handler.Binary == nil || len(spec.Fields) != 2 {
		return input
	}

	args := decode(input)
	if len(args) != 1 {
		return input
	}

	first, second := args[0], spec.Fields[1].Default
	if first == "" {
		first = spec.Fields[0].Default
	}
	if first == "" || second == "" {
		return input
	}
	return first + "|" + second
}

// CatalogueEntry is one tool as presented to the reasoning loop.
type CatalogueEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalogue renders every registered tool in registration order. The
// output is deterministic so prompts referencing tool names and
// descriptions remain stable across restarts.
func (r *Registry) Catalogue() []CatalogueEntry {
	entries := make([]CatalogueEntry, 0, len(r.order))
	for _, name := range r.order {
		spec := r.specs[name]
		entries = append(entries, CatalogueEntry{
			Name:        spec.Name,
			Description: describeSpec(spec),
		})
	}
	return entries
}

// describeSpec combines the free-form description with a rendering of the
// input schema, including the pipe encoding for two-field tools.
func describeSpec(spec Spec) string {
	var b strings.Builder
	b.WriteString(spec.Description)

	switch len(spec.Fields) {
	case 0:
		b.WriteString(" Takes no input.")
	case 1:
		f := spec.Fields[0]
		fmt.Fprintf(&b, " Input: %s (%s%s)%s.", f.Name, f.Type, optionalSuffix(f), defaultSuffix(f))
	default:
		// The single-input protocol carries at most two positional
		// arguments, pipe-separated.
		first, second := spec.Fields[0], spec.Fields[1]
		fmt.Fprintf(&b, " Input: %q where %s is %s%s and %s is %s%s.",
			first.Name+"|"+second.Name,
			first.Name, first.Type, defaultSuffix(first),
			second.Name, second.Type, defaultSuffix(second))
	}
	return b.String()
}

func optionalSuffix(f Field) string {
	if f.Required {
		return ""
	}
	return ", optional"
}

func defaultSuffix(f Field) string {
	if f.Default == "" {
		return ""
	}
	return fmt.Sprintf(" (default %s)", f.Default)
}

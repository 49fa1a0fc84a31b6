package tools

import (
	"context"
	"fmt"
	"strings"
)

// Invoke bridges reasoning loops that pass one opaque string per tool
// call to handlers taking zero, one, or two positional arguments.
//
// Decoding is deterministic:
//
//  1. A nullary handler ignores the input entirely.
//  2. If the input contains a pipe, it is split; when exactly two
//     segments result and both are non-empty after trimming, the handler
//     is called positionally with the pair.
//  3. Otherwise the handler is called with the single trimmed input.
//
// This is a best-effort protocol: there is no escape for a literal pipe
// inside one logical argument, and no support for more than two
// positional arguments. That is a known constraint of the surrounding
// reasoning-loop ecosystem, preserved here for compatibility.
//
// Invoke never propagates a failure to its caller: arity mismatches and
// handler panics are converted to a "tool invocation failed: ..." string.
func Invoke(ctx context.Context, h Handler, input string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("tool invocation failed: %v", r)
		}
	}()

	if h.Nullary != nil {
		return h.Nullary(ctx)
	}

	args := decode(input)
	switch {
	case len(args) == 1 && h.Unary != nil:
		return h.Unary(ctx, args[0])
	case len(args) == 2 && h.Binary != nil:
		return h.Binary(ctx, args[0], args[1])
	case h.Unary != nil:
		return fmt.Sprintf("tool invocation failed: expected 1 argument, got %d", len(args))
	case h.Binary != nil:
		return fmt.Sprintf("tool invocation failed: expected 2 arguments separated by %q, got %d", "|", len(args))
	default:
		return "tool invocation failed: misconfigured handler"
	}
}

// decode splits the raw input into one or two positional arguments per
// the pipe convention. Only an input with exactly one pipe — two
// segments, both non-empty after trimming — decodes to a pair; anything
// else is a single argument.
func decode(input string) []string {
	if strings.Contains(input, "|") {
		parts := strings.Split(input, "|")
		if len(parts) == 2 {
			first := strings.TrimSpace(parts[0])
			second := strings.TrimSpace(parts[1])
			if first != "" && second != "" {
				return []string{first, second}
			}
		}
	}
	return []string{strings.TrimSpace(input)}
}

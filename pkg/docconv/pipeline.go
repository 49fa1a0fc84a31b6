// Package docconv converts local documents (PDF, Office formats, HTML,
// images, plain text) into markdown or plain text. Conversion runs a
// primary converter and falls back once to a more general converter on
// failure, bounded by a single overall timeout that covers both
// attempts.
package docconv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Format selects the output representation of a conversion.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// DefaultTimeout bounds a whole conversion attempt including fallback.
const DefaultTimeout = 120 * time.Second

// previewLimit caps the content echoed back when a conversion is
// persisted to disk.
const previewLimit = 1000

// supportedExtensions is the closed set of source types conversion
// accepts. Anything else fails before a converter runs.
var supportedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".doc":  {},
	".xlsx": {},
	".xls":  {},
	".pptx": {},
	".ppt":  {},
	".txt":  {},
	".md":   {},
	".html": {},
	".htm":  {},
	".jpg":  {},
	".png":  {},
}

// SupportedExtensions returns the accepted source extensions, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Request describes one conversion.
type Request struct {
	SourcePath string
	Format     Format
	OutputPath string // optional; when set, content is written there
}

// Result carries the converted content. When the request named an
// output path, Content holds a preview truncated to the first 1000
// characters and OutputPath names where the full content was written;
// otherwise Content is the full untruncated output.
type Result struct {
	Content    string
	OutputPath string
}

// Converter turns a source file into markdown.
type Converter interface {
	Convert(ctx context.Context, path string) (string, error)
}

// Pipeline runs conversions through a primary converter with a one-shot
// fallback.
type Pipeline struct {
	primary  Converter
	fallback Converter
	timeout  time.Duration
}

// NewPipeline builds a pipeline. A non-positive timeout selects
// DefaultTimeout.
func NewPipeline(primary, fallback Converter, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pipeline{primary: primary, fallback: fallback, timeout: timeout}
}

// Convert validates the request, runs the converter chain under the
// pipeline timeout, applies the requested output format, and persists
// the result when an output path was given.
func (p *Pipeline) Convert(ctx context.Context, req Request) (*Result, error) {
	info, err := os.Stat(req.SourcePath)
	if err != nil || info.IsDir() {
		return nil, &NotFoundError{Path: req.SourcePath}
	}

	ext := strings.ToLower(filepath.Ext(req.SourcePath))
	if _, ok := supportedExtensions[ext]; !ok {
		return nil, &UnsupportedTypeError{Path: req.SourcePath, Ext: ext}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	content, err := p.run(ctx, req.SourcePath)
	if err != nil {
		return nil, err
	}

	if req.Format == FormatText {
		content = StripMarkdown(content)
	}

	if req.OutputPath == "" {
		return &Result{Content: content}, nil
	}

	if dir := filepath.Dir(req.OutputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(req.OutputPath, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}

	preview := content
	if len(preview) > previewLimit {
		preview = preview[:previewLimit] + "..."
	}
	return &Result{Content: preview, OutputPath: req.OutputPath}, nil
}

// run executes the converter chain in its own goroutine so a slow
// converter cannot block the caller, and races it against the pipeline
// deadline. Once the deadline fires the attempt is abandoned without
// trying the fallback; the budget is for the whole request, not per
// stage.
func (p *Pipeline) run(ctx context.Context, path string) (string, error) {
	type outcome struct {
		content string
		err     error
	}
	done := make(chan outcome, 1)

	go func() {
		content, err := p.attempt(ctx, path)
		done <- outcome{content: content, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ctx.Err()
	case out := <-done:
		if out.err != nil && errors.Is(out.err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return out.content, out.err
	}
}

// attempt runs the primary converter, then the fallback at most once on
// a non-timeout failure. When both fail, a missing-dependency failure
// from the primary wins over the fallback's error so the caller learns
// which component to install.
func (p *Pipeline) attempt(ctx context.Context, path string) (string, error) {
	content, primaryErr := p.primary.Convert(ctx, path)
	if primaryErr == nil {
		return content, nil
	}
	if errors.Is(primaryErr, context.DeadlineExceeded) || ctx.Err() != nil {
		return "", primaryErr
	}
	if p.fallback == nil {
		return "", primaryErr
	}

	content, fallbackErr := p.fallback.Convert(ctx, path)
	if fallbackErr == nil {
		return content, nil
	}

	var missing *MissingDependencyError
	if errors.As(primaryErr, &missing) {
		return "", primaryErr
	}
	return "", fallbackErr
}

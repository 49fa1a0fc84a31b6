package agent

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alcovehq/alcove/pkg/agent/tools"
	"github.com/alcovehq/alcove/pkg/logging"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "alcove-agent-logs")
	if err != nil {
		panic(err)
	}
	os.Setenv("ALCOVE_LOG_DIR", dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func newTestRunner(t *testing.T) *DirectRunner {
	t.Helper()

	logger, err := logging.NewLogger("runner-test")
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })

	registry := tools.NewRegistry()
	registry.MustRegister(tools.Spec{
		Name:        "greet",
		Description: "greets the given name",
		Fields:      []tools.Field{{Name: "name", Type: "string", Required: true}},
		Handler: tools.Handler{Unary: func(_ context.Context, name string) string {
			return "hello " + name
		}},
	})
	return NewDirectRunner(registry, logger)
}

func TestRunInvokesTool(t *testing.T) {
	runner := newTestRunner(t)

	got, err := runner.Run(context.Background(), "greet world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
}

func TestRunUnknownCommandListsCatalogue(t *testing.T) {
	runner := newTestRunner(t)

	got, err := runner.Run(context.Background(), "frobnicate stuff")
	require.NoError(t, err)
	assert.Contains(t, got, `Unknown tool "frobnicate"`)
	assert.Contains(t, got, "- greet: greets the given name")
}

func TestRunEmptyMessage(t *testing.T) {
	runner := newTestRunner(t)

	got, err := runner.Run(context.Background(), "  ")
	require.NoError(t, err)
	assert.Contains(t, got, "No command given")
}

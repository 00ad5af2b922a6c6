package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWithLoggerRoundTrip(t *testing.T) {
	t.Parallel()

	attached := discardLogger()
	ctx := WithLogger(context.Background(), attached)

	assert.Same(t, attached, FromContext(ctx))
	assert.Same(t, attached, FromContextOrDefault(ctx, discardLogger()), "attached logger wins over the fallback")
}

func TestFromContext_DefaultWhenAbsent(t *testing.T) {
	t.Parallel()

	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestFromContextOrDefault_Fallbacks(t *testing.T) {
	t.Parallel()

	fallback := discardLogger()
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
}

package ctxlog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-binarytrack/internal/ctxlog"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	ctxlog.FromContext(ctx).Info("hello", "track", "a.h5")
	assert.Contains(t, buf.String(), "track=a.h5")
}

func TestFromContextWithoutLogger(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		ctxlog.FromContext(context.Background()).Info("dropped")
	})
}

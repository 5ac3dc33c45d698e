package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/alloy/internal/adapters/telemetry"
	"go.trai.ch/alloy/internal/core/domain"
	"go.trai.ch/alloy/internal/core/ports"
)

func TestNew(t *testing.T) {
	recorder := telemetry.New()
	assert.NotNil(t, recorder)
}

func TestRecorder_Integration(t *testing.T) {
	recorder := telemetry.New()

	ctx, vertex := recorder.Record(context.Background(), "zlib@1.3")

	// The vertex rides on the context so the executor can stream into it.
	attached, ok := ports.VertexFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, vertex, attached)

	if _, err := vertex.Stdout().Write([]byte("checking for gcc... yes\n")); err != nil {
		t.Errorf("failed to write to stdout: %v", err)
	}
	vertex.Log(domain.LogLevelDebug, "debug msg")
	vertex.Complete(nil)

	if err := recorder.Close(); err != nil {
		t.Errorf("failed to close recorder: %v", err)
	}
}

func TestNoOp(t *testing.T) {
	recorder := telemetry.NewNoOp()

	ctx, vertex := recorder.Record(context.Background(), "zlib@1.3")

	// NoOp leaves the context untouched.
	_, ok := ports.VertexFromContext(ctx)
	assert.False(t, ok)

	_, err := vertex.Stdout().Write([]byte("discarded"))
	assert.NoError(t, err)
	vertex.Cached()
	vertex.Complete(nil)
	assert.NoError(t, recorder.Close())
}

package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupTracing_NoEndpoint(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "")
	require.NoError(t, err)

	_, span := Tracer.Start(context.Background(), "test.span")
	require.True(t, span.SpanContext().IsValid(), "expected SDK provider to produce valid span contexts")
	span.End()

	require.NoError(t, shutdown(context.Background()))
}

package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), "nearzy-test", false)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_Enabled(t *testing.T) {
	previous := otel.GetTracerProvider()
	defer otel.SetTracerProvider(previous)

	shutdown, err := Init(context.Background(), "nearzy-test", true)
	require.NoError(t, err)

	ctx, span := Start(context.Background(), "orders", "Checkout", attribute.String("method", "cod"))
	assert.NotNil(t, ctx)
	assert.True(t, span.SpanContext().IsValid())
	End(span, errors.New("boom"))

	assert.NoError(t, shutdown(context.Background()))
}

func TestStart_NoopProvider(t *testing.T) {
	_, span := Start(context.Background(), "cart", "SetQuantity")
	End(span, nil)
}

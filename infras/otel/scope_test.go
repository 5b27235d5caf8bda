package otel_test

import (
	"context"
	"errors"
	"testing"

	"nutrisur/infras/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recorder() (*tracetest.SpanRecorder, otel.Otel) {
	rec := tracetest.NewSpanRecorder()

	return rec, otel.NewWithProvider(trace.NewTracerProvider(trace.WithSpanProcessor(rec)))
}

func confirm(ctx context.Context, ot otel.Otel, fail bool) (err error) {
	_, scope := ot.NewScope(ctx, "service", "service.appointment.Confirm")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{"appointment.id": "appt-1", "attempt": 2, "price": 12.5})

	if fail {
		return errors.New("appointment is cancelled")
	}

	return nil
}

func TestScope_TraceIfErrorSeesReturnedError(t *testing.T) {
	rec, ot := recorder()

	require.Error(t, confirm(context.Background(), ot, true))
	require.NoError(t, confirm(context.Background(), ot, false))

	spans := rec.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "service.appointment.Confirm", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "appointment is cancelled", spans[0].Status().Description)
	assert.Equal(t, codes.Unset, spans[1].Status().Code)
}

func TestScope_Attributes(t *testing.T) {
	rec, ot := recorder()

	require.NoError(t, confirm(context.Background(), ot, false))

	attrs := rec.Ended()[0].Attributes()

	assert.Contains(t, attrs, attribute.String("appointment.id", "appt-1"))
	assert.Contains(t, attrs, attribute.Int("attempt", 2))
	assert.Contains(t, attrs, attribute.Float64("price", 12.5))
}

package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestSetupExportsSpans(t *testing.T) {
	previous := otel.GetTracerProvider()
	defer otel.SetTracerProvider(previous)

	var buf bytes.Buffer
	shutdown, err := Setup(context.Background(), Config{Enabled: true, ServiceName: "rally-claim-test", Writer: &buf}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	_, span := Tracer("test").Start(context.Background(), "claim.submit")
	span.End()

	if err := shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "claim.submit") {
		t.Fatalf("exported output missing span: %s", buf.String())
	}
}

func TestSetupOTLPExporter(t *testing.T) {
	previous := otel.GetTracerProvider()
	defer otel.SetTracerProvider(previous)

	// the exporter connects lazily, so an unreachable endpoint still sets up
	shutdown, err := Setup(context.Background(), Config{
		Enabled:      true,
		ServiceName:  "rally-claim-test",
		OTLPEndpoint: "127.0.0.1:1",
		OTLPInsecure: true,
	}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = shutdown(ctx)
}

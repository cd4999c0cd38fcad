package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hamed0406/rpcmon/internal/domain"
)

func TestConsole_EndpointLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, 0.95, false)
	for _, e := range sampleRun().Endpoints {
		c.Endpoint(e)
	}
	out := buf.String()

	wants := []string{
		"Service: http://localhost:8080/database",
		"[ OK ]",
		"Returned {Name: db, Disponibility: 0.99}",
		"[FAIL]",
		"ERROR: Service refused the connection.",
		"ERROR: got an error response from http://localhost:8080/link",
		"Code: -32601 (method not found)",
		"Message: method not found",
	}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Fatalf("missing %q in:\n%s", w, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("escape sequences written with color disabled")
	}
}

func TestConsole_InvalidAndParseFailure(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, 0.95, false)
	c.Endpoint(domain.EndpointReport{Endpoint: "http://a", Status: domain.StatusInvalid, Reason: `"id" is 2, expected 1`})
	c.Endpoint(domain.EndpointReport{Endpoint: "http://b", Status: domain.StatusParseFailure, Reason: "bad json"})
	out := buf.String()

	if !strings.Contains(out, "invalid response message from http://a") || !strings.Contains(out, `Reason: "id" is 2, expected 1`) {
		t.Fatalf("invalid reply not reported:\n%s", out)
	}
	if !strings.Contains(out, "failed to parse response from http://b") {
		t.Fatalf("parse failure not reported:\n%s", out)
	}
}

func TestConsole_Summary(t *testing.T) {
	var buf bytes.Buffer
	if err := NewConsole(&buf, 0.95, false).Summary(context.Background(), sampleRun()); err != nil {
		t.Fatalf("summary: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "2 out of 4 services responded.") {
		t.Fatalf("count line missing:\n%s", out)
	}
	if !strings.Contains(out, "The disponibility of the service is: 0.940500") {
		t.Fatalf("composite line missing:\n%s", out)
	}
	if !strings.Contains(out, "0.9900") || !strings.Contains(out, "transport_failure") {
		t.Fatalf("table missing rows:\n%s", out)
	}
}

func TestConsole_SummaryNotComputable(t *testing.T) {
	var buf bytes.Buffer
	run := domain.RunReport{Total: 2}
	_ = NewConsole(&buf, 0.95, false).Summary(context.Background(), run)
	out := buf.String()
	if !strings.Contains(out, "0 out of 2 services responded.") ||
		!strings.Contains(out, "Cannot calculate the disponibility of the service.") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
}

func TestConsole_Banner(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, 0.95, false).Banner("services.txt")
	out := buf.String()
	if !strings.Contains(out, "Reading service URLs from services.txt") || !strings.Contains(out, "Contacting services:") {
		t.Fatalf("banner incomplete:\n%s", out)
	}
}

func TestConsole_CustomCodeHasNoLabel(t *testing.T) {
	var buf bytes.Buffer
	code := 42
	NewConsole(&buf, 0.95, false).Endpoint(domain.EndpointReport{
		Endpoint: "http://a", Status: domain.StatusServiceError, ErrorCode: &code, ErrorMessage: "busy",
	})
	if !strings.Contains(buf.String(), "Code: 42\n") {
		t.Fatalf("unexpected code line:\n%s", buf.String())
	}
}

func TestConsole_SummaryThresholdBoundary(t *testing.T) {
	v := 0.95
	run := domain.RunReport{Responded: 1, Total: 1, Composite: &v}
	var buf bytes.Buffer
	_ = NewConsole(&buf, 0.95, false).Summary(context.Background(), run)
	if !strings.Contains(buf.String(), "The disponibility of the service is: 0.950000") {
		t.Fatalf("unexpected summary:\n%s", buf.String())
	}

	c := NewConsole(&buf, 0.95, false)
	if c.compositeColor(0.95) != c.green || c.compositeColor(0.9499) != c.blue {
		t.Fatalf("threshold colour wrong")
	}
}

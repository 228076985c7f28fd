package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestTimeLogsRequestIDAndError(t *testing.T) {
	buf := captureLog(t)
	ctx := WithRequestID(context.Background(), "abc-123")

	err := errors.New("boom")
	Time(ctx, "test.op")(&err)

	line := buf.String()
	for _, want := range []string{"req_id=abc-123", "op=test.op", "err=boom"} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %q", line, want)
		}
	}
}

func TestRequestIDDefault(t *testing.T) {
	if got := RequestID(context.Background()); got != "-" {
		t.Fatalf("RequestID = %q, want -", got)
	}
}

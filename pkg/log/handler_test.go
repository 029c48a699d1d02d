package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestWithStacktracesAddsStacktraceAttr(t *testing.T) {
	var buf bytes.Buffer
	handler := WithStacktraces(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	err := errors.New("boom")
	logger.Error("operation failed", ErrAttr(err))

	var record map[string]any
	if jsonErr := json.Unmarshal(buf.Bytes(), &record); jsonErr != nil {
		t.Fatalf("log output is not JSON: %v", jsonErr)
	}
	if _, ok := record[StacktraceAttrKey]; !ok {
		t.Errorf("expected %q attribute in record: %s", StacktraceAttrKey, buf.String())
	}
	if record[ErrAttrKey] != "boom" {
		t.Errorf("error attribute = %v, want boom", record[ErrAttrKey])
	}
}

func TestWithStacktracesPassthrough(t *testing.T) {
	var buf bytes.Buffer
	handler := WithStacktraces(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	logger.Info("no error here", "k", "v")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if _, ok := record[StacktraceAttrKey]; ok {
		t.Error("stacktrace attribute must not appear without an error")
	}
	if record["k"] != "v" {
		t.Errorf("k = %v, want v", record["k"])
	}
}

func TestToLogLevel(t *testing.T) {
	if ToLogLevel("debug") != slog.LevelDebug {
		t.Error("debug level mismatch")
	}
	if ToLogLevel("error") != slog.LevelError {
		t.Error("error level mismatch")
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic on unknown level")
		}
	}()
	ToLogLevel("loud")
}

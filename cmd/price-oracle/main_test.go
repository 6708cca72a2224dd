package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/boxdancer/go-price-oracle/internal/config"
	"github.com/boxdancer/go-price-oracle/internal/price"
	"github.com/boxdancer/go-price-oracle/internal/testutil"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no args"},
		{name: "extra args ignored", args: []string{"--verbose", "eth", "usd"}},
		{name: "empty arg", args: []string{""}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tc.args, &stdout, &stderr)

			if code != 0 {
				t.Fatalf("exit code: want 0 got %d (stderr=%q)", code, stderr.String())
			}
			if stdout.String() != "{\"price\": 130000}\n" {
				t.Fatalf("wrong stdout: %q", stdout.String())
			}
			if stderr.Len() != 0 {
				t.Fatalf("expected quiet stderr, got %q", stderr.String())
			}
		})
	}
}

func TestRun_ByteIdentical(t *testing.T) {
	var first, second bytes.Buffer
	if code := run(nil, &first, &bytes.Buffer{}); code != 0 {
		t.Fatalf("first run exit %d", code)
	}
	if code := run(nil, &second, &bytes.Buffer{}); code != 0 {
		t.Fatalf("second run exit %d", code)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("runs differ: %q vs %q", first.String(), second.String())
	}
}

func TestRun_StdoutFailure(t *testing.T) {
	var stderr bytes.Buffer
	code := run(nil, testutil.FailingWriter{Err: errors.New("closed")}, &stderr)
	if code != 1 {
		t.Fatalf("exit code: want 1 got %d", code)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("report failed")) {
		t.Fatalf("expected error log on stderr, got %q", stderr.String())
	}
}

func TestRun_PrintsStubPrice(t *testing.T) {
	var stdout bytes.Buffer
	if code := run(nil, &stdout, &bytes.Buffer{}); code != 0 {
		t.Fatalf("exit code: want 0 got %d", code)
	}
	want := fmt.Sprintf("{\"price\": %d}\n", price.LatestPrice())
	if stdout.String() != want {
		t.Fatalf("stdout: want %q got %q", want, stdout.String())
	}
}

func TestRunWithConfig_FixedPrice(t *testing.T) {
	cfg := mustConfig(t)
	cfg.Price.Value = 7

	var stdout bytes.Buffer
	if code := runWithConfig(cfg, nil, &stdout, &bytes.Buffer{}); code != 0 {
		t.Fatalf("exit code: want 0 got %d", code)
	}
	if stdout.String() != "{\"price\": 7}\n" {
		t.Fatalf("wrong stdout: %q", stdout.String())
	}
}

func TestRunWithConfig_DebugMetrics(t *testing.T) {
	tests := []struct {
		name        string
		stdout      io.Writer
		wantCode    int
		wantWritten float64
	}{
		{name: "success", stdout: &bytes.Buffer{}, wantCode: 0, wantWritten: 1},
		{name: "stdout failure", stdout: testutil.FailingWriter{Err: errors.New("closed")}, wantCode: 1, wantWritten: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := mustConfig(t)
			cfg.Log.Level = "debug"

			var stderr bytes.Buffer
			if code := runWithConfig(cfg, nil, tc.stdout, &stderr); code != tc.wantCode {
				t.Fatalf("exit code: want %d got %d", tc.wantCode, code)
			}

			entry := findLogEntry(t, stderr.Bytes(), "run metrics")
			if got := entry["oracle_source_duration_seconds_count"]; got != float64(1) {
				t.Fatalf("source calls: want 1 got %v (entry=%v)", got, entry)
			}
			if got := entry["oracle_source_errors_total"]; got != float64(0) {
				t.Fatalf("source errors: want 0 got %v", got)
			}
			if got := entry["oracle_quotes_written_total"]; got != tc.wantWritten {
				t.Fatalf("quotes written: want %v got %v", tc.wantWritten, got)
			}
		})
	}
}

func mustConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

// findLogEntry ищет JSON-строку лога с заданным msg.
func findLogEntry(t *testing.T, logs []byte, msg string) map[string]any {
	t.Helper()
	for _, line := range bytes.Split(bytes.TrimSpace(logs), []byte("\n")) {
		var entry map[string]any
		if err := json.Unmarshal(line, &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		if entry["msg"] == msg {
			return entry
		}
	}
	t.Fatalf("no %q entry in logs: %s", msg, logs)
	return nil
}

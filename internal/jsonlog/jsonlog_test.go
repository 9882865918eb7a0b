package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

type logEntry struct {
	Level      string            `json:"level"`
	Time       string            `json:"time"`
	Message    string            `json:"message"`
	Properties map[string]string `json:"properties"`
	Trace      string            `json:"trace"`
}

func TestLoggerPrintInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.PrintInfo("starting server", map[string]string{"addr": ":4000"})

	var entry logEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("want level INFO; got %s", entry.Level)
	}
	if entry.Message != "starting server" {
		t.Errorf("want message %q; got %q", "starting server", entry.Message)
	}
	if entry.Properties["addr"] != ":4000" {
		t.Errorf("want addr property %q; got %q", ":4000", entry.Properties["addr"])
	}
	if entry.Trace != "" {
		t.Error("INFO entries should not carry a stack trace")
	}
}

func TestLoggerPrintErrorIncludesTrace(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.PrintError(errors.New("database connection lost"), nil)

	var entry logEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry.Level != "ERROR" {
		t.Errorf("want level ERROR; got %s", entry.Level)
	}
	if entry.Trace == "" {
		t.Error("ERROR entries should carry a stack trace")
	}
}

func TestLoggerMinLevelSuppressesEntries(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError)

	l.PrintInfo("below threshold", nil)

	if buf.Len() != 0 {
		t.Errorf("expected no output below min level; got %q", buf.String())
	}
}

func TestLoggerWriteLogsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	if _, err := l.Write([]byte("http: proxy error")); err != nil {
		t.Fatal(err)
	}

	var entry logEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not valid JSON: %v", err)
	}
	if entry.Level != "ERROR" {
		t.Errorf("want level ERROR; got %s", entry.Level)
	}
}

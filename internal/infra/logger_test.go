package infra

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production")
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("unexpected level %v", logger.GetLevel())
	}
	logger.Debug().Msg("hidden")
	logger.Info().Str("sql", "abc").Msg("query")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "query" || entry["service"] != "donorboard" || entry["sql"] != "abc" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
}

func TestNewLoggerDevelopmentIsVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "development")
	if logger.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("unexpected level %v", logger.GetLevel())
	}
	logger.Debug().Msg("visible")
	if !bytes.Contains(buf.Bytes(), []byte("visible")) {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}

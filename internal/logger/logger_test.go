package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raseed.log")

	err := Setup(LogConfig{Level: "info", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	l := WithComponent("test")
	l.Info().Str("invoice_number", "000124").Msg("derived")
	log.Debug().Msg("hidden")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, `"component":"test"`) {
		t.Errorf("missing component field: %s", out)
	}
	if !strings.Contains(out, `"invoice_number":"000124"`) {
		t.Errorf("missing invoice_number field: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be filtered at info level: %s", out)
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if err := Setup(LogConfig{Level: "loud", Output: "stderr"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestToFile(t *testing.T) {
	tests := map[string]bool{
		"":                false,
		"stderr":          false,
		"stdout":          false,
		"/tmp/raseed.log": true,
	}
	for output, want := range tests {
		if got := (LogConfig{Output: output}).ToFile(); got != want {
			t.Errorf("ToFile(%q) = %v, want %v", output, got, want)
		}
	}
}

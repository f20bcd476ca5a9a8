package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

func TestNewBuildsForEachEnvironment(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		logger, err := New(env)
		if err != nil {
			t.Fatalf("env %q: failed to create logger: %v", env, err)
		}
		if logger == nil {
			t.Fatalf("env %q: logger should not be nil", env)
		}
	}
}

func TestProductionConfigIsJSON(t *testing.T) {
	if enc := buildConfig("production").Encoding; enc != "json" {
		t.Errorf("expected json encoding in production, got %s", enc)
	}
	if enc := buildConfig("development").Encoding; enc != "console" {
		t.Errorf("expected console encoding in development, got %s", enc)
	}
}

func TestProperty_FileLogsAreStructured(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every entry written to the log file is JSON with level and message", prop.ForAll(
		func(message string, detail string) bool {
			path := filepath.Join(t.TempDir(), "api.log")
			logger, err := NewWithOptions(Options{Env: "production", File: path})
			if err != nil {
				t.Logf("FAIL: build: %v", err)
				return false
			}

			logger.Warn(message, zap.String("detail", detail))
			_ = logger.Sync()

			f, err := os.Open(path)
			if err != nil {
				t.Logf("FAIL: open: %v", err)
				return false
			}
			defer f.Close()

			scanner := bufio.NewScanner(f)
			if !scanner.Scan() {
				return false
			}

			var entry map[string]interface{}
			if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
				t.Logf("FAIL: not JSON: %s", scanner.Text())
				return false
			}
			return entry["level"] == "warn" && entry["msg"] == message && entry["detail"] == detail
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestOrDefault(t *testing.T) {
	if orDefault(0, 64) != 64 || orDefault(-1, 7) != 7 || orDefault(3, 7) != 3 {
		t.Error("unexpected orDefault result")
	}
}

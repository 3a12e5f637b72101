package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestResolveLogFilePathDefaultFilename(t *testing.T) {
	tmpDir := t.TempDir()

	got, err := resolveLogFilePath(Options{Dir: tmpDir})
	if err != nil {
		t.Fatalf("resolve log path failed: %v", err)
	}
	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
	if _, err := os.Stat(got); err != nil {
		t.Fatalf("expected log file to be created: %v", err)
	}
}

func TestNewWritesToConfiguredFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New(Options{
		Production: true,
		Dir:        tmpDir,
		Filename:   "site.log",
	})
	log.Info("site-log-test")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "site.log"))
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	if !strings.Contains(string(content), "site-log-test") {
		t.Fatalf("expected log content to contain message, got=%s", string(content))
	}
}

func TestNewWithoutDirDoesNotWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	log := New(Options{Filename: "stdout-only.log"})
	log.Info("stdout-log-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "stdout-only.log")); !os.IsNotExist(err) {
		t.Fatalf("logger without dir should not create a log file")
	}
}

func TestResolveLogFilePathRequiresDir(t *testing.T) {
	if _, err := resolveLogFilePath(Options{Filename: "x.log"}); err == nil {
		t.Fatalf("expected error without log dir")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"WARN":  zapcore.WarnLevel,
		"":      zapcore.InfoLevel,
		"bogus": zapcore.InfoLevel,
	}
	for raw, want := range cases {
		if got := parseLevel(raw); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

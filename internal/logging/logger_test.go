package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestLoggerWritesModuleLineToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debuglocale.log")
	root, err := NewRoot(Options{FilePath: logPath, MaxSizeMB: 5, RetentionDays: 7, MaxBackupFiles: 5, Console: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("NewRoot error: %v", err)
	}

	logger := root.Module("locale")
	logger.Infof("locale override applied from=%s to=%s", "en-US", "fr")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file error: %v", err)
	}
	line := strings.TrimSpace(string(data))
	re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} \| INFO \| locale \| locale override applied from=en-US to=fr$`)
	if !re.MatchString(line) {
		t.Fatalf("line format mismatch: %q", line)
	}
}

func TestMuteConsoleKeepsFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debuglocale.log")
	var console bytes.Buffer
	root, err := NewRoot(Options{FilePath: logPath, Console: &console})
	if err != nil {
		t.Fatalf("NewRoot error: %v", err)
	}
	child := root.Module("app")
	root.MuteConsole()
	child.Infof("quiet please")

	if console.Len() != 0 {
		t.Fatalf("console got %q after mute", console.String())
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file error: %v", err)
	}
	if !strings.Contains(string(data), "quiet please") {
		t.Fatalf("file missing muted line: %q", data)
	}
}

func TestDebugOnlyWhenEnabled(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debuglocale.log")
	root, err := NewRoot(Options{FilePath: logPath, Console: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("NewRoot error: %v", err)
	}
	root.Module("locale").Debugf("captured device locale en-US")
	data, _ := os.ReadFile(logPath)
	if strings.Contains(string(data), "captured") {
		t.Fatalf("debug line written without Debug option")
	}
}

func TestLoggerRotationAndCleanup(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "debuglocale.log")
	root, err := NewRoot(Options{FilePath: logPath, MaxSizeMB: 1, RetentionDays: 30, MaxBackupFiles: 1, Console: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("NewRoot error: %v", err)
	}

	logger := root.Module("rotate")
	big := strings.Repeat("x", 1100000)
	for i := 0; i < 4; i++ {
		logger.Infof(big)
	}

	files, err := filepath.Glob(logPath + ".*")
	if err != nil {
		t.Fatalf("glob error: %v", err)
	}
	if len(files) > 1 {
		t.Fatalf("backup files = %d, want <= 1", len(files))
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNop().Module("x")
	l.Infof("nothing")
	l.MuteConsole()
}

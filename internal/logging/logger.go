package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	FilePath       string
	MaxSizeMB      int
	RetentionDays  int
	MaxBackupFiles int
	// Console defaults to stdout.
	Console io.Writer
	Debug   bool
}

type Logger struct {
	zap     *zap.SugaredLogger
	console *zap.AtomicLevel
}

func NewRoot(opts Options) (*Logger, error) {
	if strings.TrimSpace(opts.FilePath) == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
		return nil, err
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if opts.RetentionDays <= 0 {
		opts.RetentionDays = 7
	}
	if opts.MaxBackupFiles <= 0 {
		opts.MaxBackupFiles = 5
	}

	var console zapcore.WriteSyncer = zapcore.Lock(os.Stdout)
	colored := isTTY(os.Stdout)
	if opts.Console != nil {
		console = zapcore.AddSync(opts.Console)
		colored = false
	}

	consoleEncoderCfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "module",
		MessageKey:       "msg",
		EncodeTime:       shortTimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " | ",
	}
	if colored {
		consoleEncoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		consoleEncoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	fileEncoderCfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "module",
		MessageKey:       "msg",
		EncodeTime:       longTimeEncoder,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " | ",
	}

	fileLevel := zapcore.InfoLevel
	if opts.Debug {
		fileLevel = zapcore.DebugLevel
	}
	consoleLevel := zap.NewAtomicLevelAt(zapcore.InfoLevel)

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderCfg),
		console,
		consoleLevel,
	)

	roller := &lumberjack.Logger{
		Filename:   opts.FilePath,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackupFiles,
		MaxAge:     opts.RetentionDays,
		Compress:   false,
	}
	fileCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(fileEncoderCfg),
		zapcore.AddSync(roller),
		fileLevel,
	)

	base := zap.New(zapcore.NewTee(consoleCore, fileCore), zap.AddCallerSkip(1))
	return &Logger{zap: base.Sugar(), console: &consoleLevel}, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return &Logger{zap: zap.NewNop().Sugar()}
}

func (l *Logger) Module(module string) *Logger {
	m := strings.TrimSpace(module)
	if m == "" {
		m = "app"
	}
	return &Logger{zap: l.zap.Named(m), console: l.console}
}

// MuteConsole stops console output below error level for this logger and
// every logger derived from the same root. The file keeps everything.
func (l *Logger) MuteConsole() {
	if l.console != nil {
		l.console.SetLevel(zapcore.ErrorLevel)
	}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.zap.Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.zap.Infof(format, args...)
}

func (l *Logger) Okf(format string, args ...any) {
	l.zap.Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.zap.Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.zap.Errorf(format, args...)
}

func (l *Logger) Fatalf(format string, args ...any) {
	l.zap.Fatalf(format, args...)
}

func (l *Logger) Sync() error {
	return l.zap.Sync()
}

func shortTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("01-02 15:04"))
}

func longTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05"))
}

func isTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	st, err := f.Stat()
	if err != nil {
		return false
	}
	return (st.Mode() & os.ModeCharDevice) != 0
}

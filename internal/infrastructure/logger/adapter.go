package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sidesweep/internal/application/port/output"
)

var _ output.LoggerPort = (*ZapAdapter)(nil)

// ZapAdapter backs the logger port with a zap sugared logger writing JSON
// lines to a per-run file under ./log/ plus stderr.
type ZapAdapter struct {
	s *zap.SugaredLogger
}

func NewZapAdapter(runName string, debug bool) (*ZapAdapter, error) {
	safeName := sanitize(runName)
	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02_15-04-05"), safeName)

	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join("log", filename), "stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &ZapAdapter{s: l.Sugar()}, nil
}

func (l *ZapAdapter) Debug(msg string, args ...any) { l.s.Debugw(msg, args...) }
func (l *ZapAdapter) Info(msg string, args ...any)  { l.s.Infow(msg, args...) }
func (l *ZapAdapter) Warn(msg string, args ...any)  { l.s.Warnw(msg, args...) }
func (l *ZapAdapter) Error(msg string, args ...any) { l.s.Errorw(msg, args...) }

func (l *ZapAdapter) WithField(key string, value any) output.LoggerPort {
	return &ZapAdapter{s: l.s.With(key, value)}
}

func (l *ZapAdapter) WithFields(fields map[string]any) output.LoggerPort {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &ZapAdapter{s: l.s.With(args...)}
}

func (l *ZapAdapter) Close() error {
	// stderr sync fails on some platforms; the file sink is what matters.
	_ = l.s.Sync()
	return nil
}

func sanitize(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			result = append(result, r)
		} else {
			result = append(result, '_')
		}
	}
	s = string(result)
	if s == "" {
		return "run"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}

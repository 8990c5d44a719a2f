package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DebugLogger はデバッグ出力を管理します。
// 無効な場合も警告以上のメッセージは出力されます。
type DebugLogger struct {
	enabled bool
	logger  *slog.Logger
}

// NewDebugLogger は標準エラー出力に書き込む新しいDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return NewDebugLoggerWithWriter(enabled, os.Stderr)
}

// NewDebugLoggerWithWriter は出力先を指定してDebugLoggerを作成します
func NewDebugLoggerWithWriter(enabled bool, w io.Writer) *DebugLogger {
	level := slog.LevelWarn
	if enabled {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// 時刻は出力しない
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})

	return &DebugLogger{enabled: enabled, logger: slog.New(handler)}
}

// With は属性を追加したDebugLoggerを返します
func (d *DebugLogger) With(args ...any) *DebugLogger {
	return &DebugLogger{enabled: d.enabled, logger: d.logger.With(args...)}
}

// Enabled はデバッグモードが有効かどうかを返します
func (d *DebugLogger) Enabled() bool {
	return d.enabled
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		d.logger.Debug(strings.TrimRight(fmt.Sprintf(format, a...), "\n"))
	}
}

// Debug は属性付きのデバッグメッセージを出力します
func (d *DebugLogger) Debug(msg string, args ...any) {
	d.logger.Debug(msg, args...)
}

// Warn は警告メッセージを出力します
func (d *DebugLogger) Warn(msg string, args ...any) {
	d.logger.Warn(msg, args...)
}

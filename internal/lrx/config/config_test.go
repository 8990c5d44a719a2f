package config

import (
	"bytes"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "引数なしはparse",
			args: []string{},
			want: Config{Command: CommandParse, OutputDir: ".", Format: FormatJSON, Encoding: "auto"},
		},
		{
			name: "ファイルだけ指定",
			args: []string{"song.lrx"},
			want: Config{Command: CommandParse, InputPath: "song.lrx", OutputDir: ".", Format: FormatJSON, Encoding: "auto"},
		},
		{
			name: "parseにフラグを指定",
			args: []string{"parse", "song.lrx.xz", "-o", "/tmp", "-d", "--format", "text", "--comments"},
			want: Config{
				Command: CommandParse, InputPath: "song.lrx.xz", OutputDir: "/tmp", Format: FormatText,
				Encoding: "auto", AllowComments: true, DebugMode: true,
			},
		},
		{
			name: "check",
			args: []string{"check", "song.lrx", "--strict", "-n"},
			want: Config{
				Command: CommandCheck, InputPath: "song.lrx", OutputDir: ".", Format: FormatJSON,
				Encoding: "auto", Strict: true, DryRun: true,
			},
		},
		{
			name: "fmtと文字コード",
			args: []string{"fmt", "-e", "koi8-r"},
			want: Config{Command: CommandFmt, OutputDir: ".", Format: FormatJSON, Encoding: "koi8-r"},
		},
		{
			name: "rule",
			args: []string{"rule", "Chord", "Bm/D"},
			want: Config{
				Command: CommandRule, RuleName: "Chord", RuleInput: "Bm/D",
				OutputDir: ".", Format: FormatJSON, Encoding: "auto",
			},
		},
		{
			name: "versionコマンド",
			args: []string{"version"},
			want: Config{Command: CommandVersion, OutputDir: ".", Format: FormatJSON, Encoding: "auto", ShowVersion: true},
		},
		{
			name: "versionフラグ",
			args: []string{"-v"},
			want: Config{Command: CommandParse, OutputDir: ".", Format: FormatJSON, Encoding: "auto", ShowVersion: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%v) failed: %v", tt.args, err)
			}
			if *cfg != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, *cfg)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "不正な出力形式", args: []string{"parse", "--format", "yaml"}},
		{name: "ruleの入力がない", args: []string{"rule", "Chord"}},
		{name: "不明なフラグ", args: []string{"--unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.args); err == nil {
				t.Errorf("Expected an error for %v", tt.args)
			}
		})
	}
}

func TestCommandOf(t *testing.T) {
	tests := map[string]Command{
		"":                    CommandParse,
		"parse":               CommandParse,
		"check <file>":        CommandCheck,
		"rule <rule> <input>": CommandRule,
	}
	for input, want := range tests {
		if got := commandOf(input); got != want {
			t.Errorf("commandOf(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDebugLogger(t *testing.T) {
	var buf bytes.Buffer

	// デバッグモード有効
	logger := NewDebugLoggerWithWriter(true, &buf).With("run_id", "abc")
	logger.Printf("test message %d\n", 123)
	logger.Debug("loaded", "size", "1.2 kB")

	output := buf.String()
	if !strings.Contains(output, `msg="test message 123"`) {
		t.Errorf("Expected debug output to contain the message, got %q", output)
	}
	if !strings.Contains(output, "run_id=abc") {
		t.Errorf("Expected debug output to contain run_id, got %q", output)
	}
	if !strings.Contains(output, `size="1.2 kB"`) {
		t.Errorf("Expected debug output to contain size, got %q", output)
	}
	if strings.Contains(output, "time=") {
		t.Errorf("Time should not be printed, got %q", output)
	}
	if !logger.Enabled() {
		t.Error("Expected logger to be enabled")
	}

	// デバッグモード無効
	buf.Reset()
	logger = NewDebugLoggerWithWriter(false, &buf)
	logger.Printf("should not appear\n")
	logger.Debug("should not appear either")
	logger.Warn("fallback encoding", "encoding", "windows-1251")

	output = buf.String()
	if strings.Contains(output, "should not appear") {
		t.Error("Debug output should not appear when debug mode is disabled")
	}
	if !strings.Contains(output, "level=WARN") || !strings.Contains(output, "encoding=windows-1251") {
		t.Errorf("Expected warning output, got %q", output)
	}
}

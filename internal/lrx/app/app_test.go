package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding/charmap"

	"github.com/shiroemons/go-lrx/internal/lrx/config"
	lrxerrors "github.com/shiroemons/go-lrx/internal/lrx/errors"
	"github.com/shiroemons/go-lrx/internal/lrx/fileutil"
	"github.com/shiroemons/go-lrx/internal/lrx/mocks"
	"github.com/shiroemons/go-lrx/internal/lrx/models"
	"github.com/shiroemons/go-lrx/pkg/lrx"
)

const testSong = "Song\n\n[1 Verse]\n    Am    Dm\nLorem ipsum~1+2\n===\n\n~1 check\n"

// newTestConfig はテスト用の設定を作成します
func newTestConfig(command config.Command, inputPath string) *config.Config {
	return &config.Config{
		Command:   command,
		InputPath: inputPath,
		OutputDir: "/out",
		Format:    config.FormatJSON,
		Encoding:  fileutil.AutoEncoding,
	}
}

// newTestApp はモックのファイルシステムと出力バッファを使うAppを作成します
func newTestApp(cfg *config.Config, fs *mocks.MockFileSystem, opts Options) (*App, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	opts.FileSystem = fs
	opts.Stdout = &stdout
	opts.Stderr = &stderr
	if opts.RunID == "" {
		opts.RunID = "run-1"
	}
	return NewWithOptions(cfg, opts), &stdout, &stderr
}

type exportJSON struct {
	RunID       string         `json:"runId"`
	Source      string         `json:"source"`
	Fingerprint string         `json:"fingerprint"`
	Summary     models.Summary `json:"summary"`
	Document    struct {
		Title struct {
			Text string `json:"text"`
		} `json:"title"`
		Blocks []struct {
			Header struct {
				Title string `json:"title"`
			} `json:"header"`
			Lines []map[string]any `json:"lines"`
		} `json:"blocks"`
		Report struct {
			Lines []struct {
				ID   string `json:"id"`
				Text string `json:"text"`
			} `json:"lines"`
		} `json:"report"`
	} `json:"document"`
}

func TestApp_Run_ParseJSON(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Files["/test/dir/song.lrx"] = []byte(testSong)

	app, stdout, _ := newTestApp(newTestConfig(config.CommandParse, "/test/dir/song.lrx"), fs, Options{})
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	saved, ok := fs.Files["/out/song.json"]
	if !ok {
		t.Fatal("Expected /out/song.json to be written")
	}
	if stdout.String() != string(saved) {
		t.Error("Expected stdout to match the saved file")
	}

	var got exportJSON
	if err := json.Unmarshal(saved, &got); err != nil {
		t.Fatalf("Invalid JSON: %v\n%s", err, saved)
	}

	if got.RunID != "run-1" {
		t.Errorf("Expected runId 'run-1', got %q", got.RunID)
	}
	if got.Source != "/test/dir/song.lrx" {
		t.Errorf("Expected source path, got %q", got.Source)
	}
	if want := (models.Source{Text: testSong}).Fingerprint(); got.Fingerprint != want {
		t.Errorf("Expected fingerprint %s, got %s", want, got.Fingerprint)
	}
	if got.Summary.Bookmarks != 1 || strings.Join(got.Summary.Chords, " ") != "Am Dm" {
		t.Errorf("Unexpected summary: %+v", got.Summary)
	}
	if got.Document.Title.Text != "Song" {
		t.Errorf("Expected title 'Song', got %q", got.Document.Title.Text)
	}
	if len(got.Document.Blocks) != 1 || got.Document.Blocks[0].Header.Title != "1 Verse" {
		t.Fatalf("Unexpected blocks: %+v", got.Document.Blocks)
	}

	lines := got.Document.Blocks[0].Lines
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0]["type"] != "CHORDS_LINE" || lines[1]["type"] != "LINE" {
		t.Errorf("Unexpected line types: %v, %v", lines[0]["type"], lines[1]["type"])
	}
	if lines[1]["avgRate"] != 2.0 {
		t.Errorf("Expected avgRate 2, got %v", lines[1]["avgRate"])
	}
	if len(got.Document.Report.Lines) != 1 || got.Document.Report.Lines[0].ID != "1" {
		t.Errorf("Unexpected report: %+v", got.Document.Report)
	}
}

func TestApp_Run_ParseText(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Files["/test/dir/song.lrx"] = []byte(testSong)

	cfg := newTestConfig(config.CommandParse, "/test/dir/song.lrx")
	cfg.Format = config.FormatText
	app, stdout, _ := newTestApp(cfg, fs, Options{})
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	saved := fs.Files["/out/song.txt"]
	if !bytes.HasPrefix(saved, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("Expected text output to start with a BOM")
	}

	output := stdout.String()
	for _, want := range []string{
		"#「Song」\n",
		"#コード: Am Dm\n",
		"[1 Verse]\n",
		"   4  CHORDS  Am@5 Dm@11\n",
		"   5  LINE    Lorem ipsum  (~1+2, avg 2.00)\n",
		"   8  ~1 check\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestApp_Run_Sources(t *testing.T) {
	var compressed bytes.Buffer
	w, err := xz.NewWriter(&compressed)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte(testSong))
	w.Close()

	cp1251, err := charmap.Windows1251.NewEncoder().String("[Припев]\nМы эхо~1+1\n")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		setup      func(*mocks.MockFileSystem)
		inputPath  string
		finder     *mocks.MockFileFinder
		encoding   string
		wantFile   string
		wantHeader string
		wantErr    error
	}{
		{
			name:       "xz圧縮された入力",
			setup:      func(fs *mocks.MockFileSystem) { fs.Files["/test/dir/song.lrx.xz"] = compressed.Bytes() },
			inputPath:  "/test/dir/song.lrx.xz",
			wantFile:   "/out/song.json",
			wantHeader: "1 Verse",
		},
		{
			name:       "Windows-1251の入力",
			setup:      func(fs *mocks.MockFileSystem) { fs.Files["/test/dir/ru.lrx"] = []byte(cp1251) },
			inputPath:  "/test/dir/ru.lrx",
			wantFile:   "/out/ru.json",
			wantHeader: "Припев",
		},
		{
			name:       "文字コードを指定",
			setup:      func(fs *mocks.MockFileSystem) { fs.Files["/test/dir/ru.lrx"] = []byte(cp1251) },
			inputPath:  "/test/dir/ru.lrx",
			encoding:   "windows-1251",
			wantFile:   "/out/ru.json",
			wantHeader: "Припев",
		},
		{
			name:       "自動検出",
			setup:      func(fs *mocks.MockFileSystem) { fs.Files["/test/dir/auto.lrx"] = []byte(testSong) },
			finder:     &mocks.MockFileFinder{FoundFile: "/test/dir/auto.lrx"},
			wantFile:   "/out/auto.json",
			wantHeader: "1 Verse",
		},
		{
			name:    "自動検出で見つからない",
			setup:   func(fs *mocks.MockFileSystem) {},
			finder:  &mocks.MockFileFinder{},
			wantErr: lrxerrors.ErrNoSource,
		},
		{
			name:    "自動検出で複数見つかる",
			setup:   func(fs *mocks.MockFileSystem) {},
			finder:  &mocks.MockFileFinder{Error: fileutil.ErrMultipleLRXFiles},
			wantErr: fileutil.ErrMultipleLRXFiles,
		},
		{
			name:      "存在しないファイル",
			setup:     func(fs *mocks.MockFileSystem) {},
			inputPath: "/test/dir/missing.lrx",
			wantErr:   lrxerrors.ErrFileNotFound,
		},
		{
			name:      "不明な文字コード",
			setup:     func(fs *mocks.MockFileSystem) { fs.Files["/test/dir/song.lrx"] = []byte(testSong) },
			inputPath: "/test/dir/song.lrx",
			encoding:  "no-such-encoding",
			wantErr:   fileutil.ErrUnknownEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewMockFileSystem()
			tt.setup(fs)

			cfg := newTestConfig(config.CommandParse, tt.inputPath)
			if tt.encoding != "" {
				cfg.Encoding = tt.encoding
			}
			opts := Options{}
			if tt.finder != nil {
				opts.FileFinder = tt.finder
			}

			app, _, _ := newTestApp(cfg, fs, opts)
			err := app.Run(context.Background())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			var got exportJSON
			if err := json.Unmarshal(fs.Files[tt.wantFile], &got); err != nil {
				t.Fatalf("Invalid JSON in %s: %v", tt.wantFile, err)
			}
			if len(got.Document.Blocks) == 0 || got.Document.Blocks[0].Header.Title != tt.wantHeader {
				t.Errorf("Expected first header %q, got %+v", tt.wantHeader, got.Document.Blocks)
			}
			if tt.finder != nil && tt.finder.CallCount != 1 {
				t.Errorf("Expected finder to be called once, got %d", tt.finder.CallCount)
			}
		})
	}
}

func TestApp_Run_ParseErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     error
		wantSnippet string
	}{
		{
			name:        "構文エラー",
			input:       "[Verse]\nla\n===\n\n~x bad\n",
			wantErr:     lrx.ErrSyntax,
			wantSnippet: "~x bad",
		},
		{
			name:        "範囲の上下が逆",
			input:       "[Verse]\nla~3..1+1\n",
			wantErr:     lrx.ErrIDRange,
			wantSnippet: "la~3..1+1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewMockFileSystem()
			fs.Files["/test/dir/song.lrx"] = []byte(tt.input)

			app, stdout, stderr := newTestApp(newTestConfig(config.CommandParse, "/test/dir/song.lrx"), fs, Options{})
			err := app.Run(context.Background())

			if !errors.Is(err, lrxerrors.ErrParseFailure) || !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected parse failure wrapping %v, got %v", tt.wantErr, err)
			}
			var pe *lrxerrors.ParseError
			if !errors.As(err, &pe) || pe.File != "song.lrx" {
				t.Errorf("Expected ParseError for song.lrx, got %v", err)
			}
			if !strings.Contains(stderr.String(), tt.wantSnippet) {
				t.Errorf("Expected snippet containing %q, got %q", tt.wantSnippet, stderr.String())
			}
			if stdout.Len() != 0 {
				t.Errorf("Expected no output, got %q", stdout.String())
			}
			if _, ok := fs.Files["/out/song.json"]; ok {
				t.Error("Output should not be written when parsing fails")
			}
		})
	}
}

func TestApp_Run_Comments(t *testing.T) {
	src := "[Verse]\n// capo 2\nla\n"

	for _, allow := range []bool{true, false} {
		fs := mocks.NewMockFileSystem()
		fs.Files["/test/dir/song.lrx"] = []byte(src)

		cfg := newTestConfig(config.CommandParse, "/test/dir/song.lrx")
		cfg.AllowComments = allow
		app, _, _ := newTestApp(cfg, fs, Options{})
		if err := app.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		var got exportJSON
		if err := json.Unmarshal(fs.Files["/out/song.json"], &got); err != nil {
			t.Fatal(err)
		}
		want := 2
		if allow {
			want = 1
		}
		if got.Summary.LyricsLines != want {
			t.Errorf("AllowComments=%v: expected %d lyrics lines, got %d", allow, want, got.Summary.LyricsLines)
		}
	}
}

func TestApp_Run_Check(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		format     string
		strict     bool
		wantErr    bool
		wantFile   string
		wantOutput string
	}{
		{
			name:       "問題なし",
			input:      testSong,
			wantFile:   "/out/song.check.json",
			wantOutput: `"issues": []`,
		},
		{
			name:       "IDの重複はエラー",
			input:      "[Verse]\nla~1+1\nna~1+1\n",
			wantErr:    true,
			wantFile:   "/out/song.check.json",
			wantOutput: `"code": "duplicate-bookmark"`,
		},
		{
			name:       "警告だけなら成功",
			input:      "[Verse]\nla~2+1 na~1+1\n",
			format:     config.FormatText,
			wantFile:   "/out/song.check.txt",
			wantOutput: "/test/dir/song.lrx:2:10: warning:",
		},
		{
			name:       "strictでは警告も失敗",
			input:      "[Verse]\nla~2+1 na~1+1\n",
			format:     config.FormatText,
			strict:     true,
			wantErr:    true,
			wantFile:   "/out/song.check.txt",
			wantOutput: "#エラー 0件、警告 1件、情報 0件",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewMockFileSystem()
			fs.Files["/test/dir/song.lrx"] = []byte(tt.input)

			cfg := newTestConfig(config.CommandCheck, "/test/dir/song.lrx")
			cfg.Strict = tt.strict
			if tt.format != "" {
				cfg.Format = tt.format
			}
			app, stdout, _ := newTestApp(cfg, fs, Options{})
			err := app.Run(context.Background())

			if tt.wantErr {
				if !errors.Is(err, lrxerrors.ErrValidationFailed) {
					t.Fatalf("Expected ErrValidationFailed, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if _, ok := fs.Files[tt.wantFile]; !ok {
				t.Errorf("Expected %s to be written", tt.wantFile)
			}
			if !strings.Contains(stdout.String(), tt.wantOutput) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.wantOutput, stdout.String())
			}
		})
	}
}

func TestApp_Run_Fmt(t *testing.T) {
	src := "Song\r\n\r\n\r\n[1 Verse]\r\nAm\r\nla~1+1\r\n===\r\n\r\n~1    ok\r\n"

	fs := mocks.NewMockFileSystem()
	fs.Files["/test/dir/song.lrx"] = []byte(src)

	app, stdout, _ := newTestApp(newTestConfig(config.CommandFmt, "/test/dir/song.lrx"), fs, Options{})
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := "Song\n\n[1 Verse]\nAm\nla~1+1\n===\n\n~1 ok\n"
	if got := string(fs.Files["/out/song.fmt.lrx"]); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if stdout.String() != want {
		t.Errorf("Expected stdout %q, got %q", want, stdout.String())
	}
}

func TestApp_Run_DryRun(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Files["/test/dir/song.lrx"] = []byte(testSong)

	cfg := newTestConfig(config.CommandParse, "/test/dir/song.lrx")
	cfg.DryRun = true
	cfg.DebugMode = true
	app, stdout, stderr := newTestApp(cfg, fs, Options{})
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(fs.Files) != 1 || fs.Dirs["/out"] {
		t.Errorf("Dry run should not write anything, files: %d", len(fs.Files))
	}
	if stdout.Len() == 0 {
		t.Error("Expected output on stdout")
	}
	if !strings.Contains(stderr.String(), "run_id=run-1") {
		t.Errorf("Expected debug log with run_id, got %q", stderr.String())
	}
}

func TestApp_Run_SaveError(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Files["/test/dir/song.lrx"] = []byte(testSong)
	fs.WriteError = errors.New("disk full")

	app, _, _ := newTestApp(newTestConfig(config.CommandFmt, "/test/dir/song.lrx"), fs, Options{})
	err := app.Run(context.Background())
	if !errors.Is(err, ErrSaveFile) || !errors.Is(err, fileutil.ErrWriteFile) {
		t.Errorf("Expected ErrSaveFile, got %v", err)
	}
}

func TestApp_Run_WithParser(t *testing.T) {
	fs := mocks.NewMockFileSystem()
	fs.Files["/test/dir/song.lrx"] = append([]byte{0xEF, 0xBB, 0xBF}, "anything"...)

	t.Run("差し替えたパーサーを使う", func(t *testing.T) {
		parser := &mocks.MockDocumentParser{
			Document: &lrx.Document{Title: &lrx.DocumentTitle{Text: "Mock"}},
		}
		app, stdout, _ := newTestApp(newTestConfig(config.CommandFmt, "/test/dir/song.lrx"), fs, Options{Parser: parser})
		if err := app.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if len(parser.Inputs) != 1 || parser.Inputs[0] != "anything" {
			t.Errorf("Expected decoded input without BOM, got %q", parser.Inputs)
		}
		if stdout.String() != "Mock\n\n" {
			t.Errorf("Expected %q, got %q", "Mock\n\n", stdout.String())
		}
	})

	t.Run("パーサーのエラー", func(t *testing.T) {
		parser := &mocks.MockDocumentParser{Error: errors.New("boom")}
		app, _, stderr := newTestApp(newTestConfig(config.CommandParse, "/test/dir/song.lrx"), fs, Options{Parser: parser})
		err := app.Run(context.Background())
		if !errors.Is(err, lrxerrors.ErrParseFailure) {
			t.Errorf("Expected ErrParseFailure, got %v", err)
		}
		if stderr.Len() != 0 {
			t.Errorf("Expected no snippet for a plain error, got %q", stderr.String())
		}
	})
}

func TestApp_Run_Rule(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		cfg := newTestConfig(config.CommandRule, "")
		cfg.RuleName = "Chord"
		cfg.RuleInput = "Bm/D"
		app, stdout, _ := newTestApp(cfg, mocks.NewMockFileSystem(), Options{})
		if err := app.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		var got struct {
			Rule string `json:"rule"`
			Type string `json:"type"`
			Node struct {
				Note   string `json:"note"`
				Suffix string `json:"suffix"`
				Bass   *struct {
					Note string `json:"note"`
				} `json:"bass"`
			} `json:"node"`
		}
		if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
			t.Fatalf("Invalid JSON: %v\n%s", err, stdout.String())
		}
		if got.Rule != "Chord" || got.Type != "CHORD" || got.Node.Note != "B" || got.Node.Suffix != "m" {
			t.Errorf("Unexpected result: %+v", got)
		}
		if got.Node.Bass == nil || got.Node.Bass.Note != "D" {
			t.Errorf("Expected bass D, got %+v", got.Node.Bass)
		}
	})

	t.Run("テキストとエスケープ", func(t *testing.T) {
		cfg := newTestConfig(config.CommandRule, "")
		cfg.Format = config.FormatText
		cfg.RuleName = "NL"
		cfg.RuleInput = `\r\n`
		app, stdout, _ := newTestApp(cfg, mocks.NewMockFileSystem(), Options{})
		if err := app.Run(context.Background()); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if !strings.HasPrefix(stdout.String(), "NL\t") {
			t.Errorf("Expected NL node, got %q", stdout.String())
		}
	})

	t.Run("不明な規則", func(t *testing.T) {
		cfg := newTestConfig(config.CommandRule, "")
		cfg.RuleName = "Nope"
		cfg.RuleInput = "x"
		app, _, _ := newTestApp(cfg, mocks.NewMockFileSystem(), Options{})
		err := app.Run(context.Background())
		if !errors.Is(err, ErrRule) || !errors.Is(err, lrx.ErrUnknownRule) {
			t.Errorf("Expected ErrUnknownRule, got %v", err)
		}
	})

	t.Run("意味エラー", func(t *testing.T) {
		cfg := newTestConfig(config.CommandRule, "")
		cfg.RuleName = "Time"
		cfg.RuleInput = "03:75"
		app, _, stderr := newTestApp(cfg, mocks.NewMockFileSystem(), Options{})
		err := app.Run(context.Background())
		if !errors.Is(err, lrx.ErrSecondsRange) {
			t.Errorf("Expected ErrSecondsRange, got %v", err)
		}
		if !strings.Contains(stderr.String(), "03:75") {
			t.Errorf("Expected snippet, got %q", stderr.String())
		}
	})
}

func TestApp_Run_Version(t *testing.T) {
	app, stdout, _ := newTestApp(newTestConfig(config.CommandVersion, ""), mocks.NewMockFileSystem(), Options{})
	if err := app.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stdout.String() != "lrx version "+config.Version+"\n" {
		t.Errorf("Unexpected version output: %q", stdout.String())
	}
}

func TestUnescapeInput(t *testing.T) {
	tests := map[string]string{
		"Am":    "Am",
		`la\n`:  "la\n",
		`\r\n`:  "\r\n",
		`\t A`:  "\t A",
		`bad\q`: `bad\q`,
	}
	for input, want := range tests {
		if got := unescapeInput(input); got != want {
			t.Errorf("unescapeInput(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	app := New(&config.Config{Command: config.CommandParse})
	if app.runID == "" {
		t.Error("Expected a generated run id")
	}
	if _, ok := app.fs.(*fileutil.OSFileSystem); !ok {
		t.Errorf("Expected OSFileSystem, got %T", app.fs)
	}
	if _, ok := app.finder.(*fileutil.LRXFileFinder); !ok {
		t.Errorf("Expected LRXFileFinder, got %T", app.finder)
	}
	if New(&config.Config{}).runID == app.runID {
		t.Error("Run ids should differ between apps")
	}
}

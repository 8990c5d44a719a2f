// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/shiroemons/go-lrx/internal/lrx/config"
	lrxerrors "github.com/shiroemons/go-lrx/internal/lrx/errors"
	"github.com/shiroemons/go-lrx/internal/lrx/fileutil"
	"github.com/shiroemons/go-lrx/internal/lrx/interfaces"
	"github.com/shiroemons/go-lrx/internal/lrx/models"
	"github.com/shiroemons/go-lrx/internal/lrx/validator"
	"github.com/shiroemons/go-lrx/pkg/lrx"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config    *config.Config
	logger    *config.DebugLogger
	parser    interfaces.DocumentParser
	validator *validator.Validator
	finder    interfaces.FileFinder
	fs        interfaces.FileSystem
	stdout    io.Writer
	stderr    io.Writer
	runID     string
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	FileFinder interfaces.FileFinder
	Parser     interfaces.DocumentParser
	Stdout     io.Writer
	Stderr     io.Writer
	RunID      string
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	finder := opts.FileFinder
	if finder == nil {
		finder = fileutil.NewLRXFileFinder(fs)
	}

	parser := opts.Parser
	if parser == nil {
		parser = &documentParser{opts: lrx.Options{AllowComments: cfg.AllowComments}}
	}

	return &App{
		config:    cfg,
		logger:    config.NewDebugLoggerWithWriter(cfg.DebugMode, stderr).With("run_id", runID),
		parser:    parser,
		validator: validator.New(),
		finder:    finder,
		fs:        fs,
		stdout:    stdout,
		stderr:    stderr,
		runID:     runID,
	}
}

// documentParser はpkg/lrxのパーサーをDocumentParserとして使うためのアダプタです
type documentParser struct {
	opts lrx.Options
}

func (p *documentParser) Parse(text string) (*lrx.Document, error) {
	return lrx.ParseWithOptions(text, p.opts)
}

// Run はアプリケーションを実行します
func (a *App) Run(ctx context.Context) error {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	switch a.config.Command {
	case config.CommandVersion:
		fmt.Fprintf(a.stdout, "lrx version %s\n", config.Version)
		return nil
	case config.CommandRule:
		return a.processRule(ctx)
	}

	// データソースの決定と読み込み
	var (
		src models.Source
		err error
	)
	if a.config.InputPath != "" {
		src, err = a.processFile(ctx, a.config.InputPath)
	} else {
		src, err = a.processAutoDetect(ctx)
	}
	if err != nil {
		return err
	}

	doc, err := a.parseSource(src)
	if err != nil {
		return err
	}

	switch a.config.Command {
	case config.CommandCheck:
		return a.processCheck(ctx, src, doc)
	case config.CommandFmt:
		return a.processFmt(ctx, src, doc)
	default:
		return a.processParse(ctx, src, doc)
	}
}

// processAutoDetect は.lrxファイルを自動検出して読み込みます
func (a *App) processAutoDetect(ctx context.Context) (models.Source, error) {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return models.Source{}, ctx.Err()
	default:
	}

	path, err := a.finder.Find()
	if err != nil {
		return models.Source{}, lrxerrors.NewSourceError("検出", "", err)
	}
	if path == "" {
		return models.Source{}, lrxerrors.ErrNoSource
	}

	a.logger.Printf("自動検出したファイル %s からデータを読み込みます...", filepath.Base(path))
	return a.processFile(ctx, path)
}

// processFile はファイルを読み込み、UTF-8の本文に変換します
func (a *App) processFile(ctx context.Context, path string) (models.Source, error) {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return models.Source{}, ctx.Err()
	default:
	}

	info, err := a.fs.Stat(path)
	if err != nil {
		return models.Source{}, lrxerrors.NewSourceError("読み込み", path, fmt.Errorf("%w: %w", lrxerrors.ErrFileNotFound, err))
	}
	if info.IsDir() {
		return models.Source{}, lrxerrors.NewSourceError("読み込み", path, lrxerrors.ErrFileNotFound)
	}

	data, err := fileutil.ReadSource(a.fs, path)
	if err != nil {
		return models.Source{}, lrxerrors.NewSourceError("読み込み", path, err)
	}

	text, err := fileutil.DecodeText(data, a.config.Encoding)
	if err != nil {
		return models.Source{}, lrxerrors.NewSourceError("文字コード変換", path, err)
	}
	if strings.ContainsRune(text, '\uFFFD') {
		a.logger.Warn("変換できない文字が置換文字になりました", "path", path, "encoding", a.config.Encoding)
	}

	a.logger.Debug("ファイルを読み込みました",
		"path", path,
		"size", humanize.Bytes(uint64(info.Size())),
		"decoded", humanize.Bytes(uint64(len(text))),
		"compressed", fileutil.IsCompressed(path),
	)

	return models.Source{Path: path, Size: info.Size(), Text: text}, nil
}

// parseSource は本文を解析します。失敗した場合は該当箇所を標準エラー出力に表示します。
func (a *App) parseSource(src models.Source) (*lrx.Document, error) {
	start := time.Now()
	doc, err := a.parser.Parse(src.Text)
	if err != nil {
		a.printSnippet(src.Text, err)
		return nil, lrxerrors.NewParseError(filepath.Base(src.Path), err)
	}

	a.logger.Debug("解析しました",
		"blocks", len(doc.Blocks),
		"bookmarks", len(doc.Bookmarks()),
		"elapsed", time.Since(start),
	)
	return doc, nil
}

// printSnippet は構文エラー・意味エラーの該当行を表示します
func (a *App) printSnippet(text string, err error) {
	var s interface{ Snippet(src string) string }
	if stderrors.As(err, &s) {
		fmt.Fprintln(a.stderr, s.Snippet(text))
	}
}

// processParse は解析結果をJSONまたはテキストで出力します
func (a *App) processParse(ctx context.Context, src models.Source, doc *lrx.Document) error {
	summary := models.Summarize(doc)

	var (
		output string
		suffix string
	)
	switch a.config.Format {
	case config.FormatText:
		output = renderDocumentText(doc, summary)
		suffix = ".txt"
	default:
		export := models.Export{
			RunID:       a.runID,
			Source:      src.Path,
			Fingerprint: src.Fingerprint(),
			Summary:     summary,
			Document:    doc,
		}
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRenderOutput, err)
		}
		output = string(data) + "\n"
		suffix = ".json"
	}

	if err := a.save(ctx, fileutil.GenerateOutputFilename(src.Path, suffix), output, suffix == ".txt"); err != nil {
		return err
	}

	// 標準出力にも表示
	fmt.Fprint(a.stdout, output)
	return nil
}

// processCheck はブックマークとレポートを検証して結果を出力します
func (a *App) processCheck(ctx context.Context, src models.Source, doc *lrx.Document) error {
	report := models.CheckReport{
		RunID:       a.runID,
		Source:      src.Path,
		Fingerprint: src.Fingerprint(),
		Issues:      a.validator.Validate(doc),
	}

	var (
		output string
		suffix string
	)
	switch a.config.Format {
	case config.FormatText:
		output = renderIssuesText(report)
		suffix = ".check.txt"
	default:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRenderOutput, err)
		}
		output = string(data) + "\n"
		suffix = ".check.json"
	}

	if err := a.save(ctx, fileutil.GenerateOutputFilename(src.Path, suffix), output, suffix == ".check.txt"); err != nil {
		return err
	}
	fmt.Fprint(a.stdout, output)

	errCount := report.Count(models.SeverityError)
	warnCount := report.Count(models.SeverityWarning)
	if errCount > 0 || (a.config.Strict && warnCount > 0) {
		return fmt.Errorf("%w: エラー %d件、警告 %d件", lrxerrors.ErrValidationFailed, errCount, warnCount)
	}
	return nil
}

// processFmt は整形した文書を出力します
func (a *App) processFmt(ctx context.Context, src models.Source, doc *lrx.Document) error {
	output := lrx.Format(doc)

	if err := a.save(ctx, fileutil.GenerateOutputFilename(src.Path, ".fmt.lrx"), output, false); err != nil {
		return err
	}
	fmt.Fprint(a.stdout, output)
	return nil
}

// processRule は単一の文法規則で入力を解析し、結果のノードをJSONで表示します
func (a *App) processRule(ctx context.Context) error {
	// コンテキストのキャンセルチェック
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	input := unescapeInput(a.config.RuleInput)
	a.logger.Debug("規則で解析します", "rule", a.config.RuleName, "input", input)

	node, err := lrx.ParseRuleWithOptions(lrx.Rule(a.config.RuleName), input, lrx.Options{AllowComments: a.config.AllowComments})
	if err != nil {
		a.printSnippet(input, err)
		return fmt.Errorf("%w: %s: %w", ErrRule, a.config.RuleName, err)
	}

	if a.config.Format == config.FormatText {
		fmt.Fprintf(a.stdout, "%s\t%v\n", node.Type(), node)
		return nil
	}

	data, err := json.MarshalIndent(struct {
		Rule string   `json:"rule"`
		Type string   `json:"type"`
		Node lrx.Node `json:"node"`
	}{a.config.RuleName, string(node.Type()), node}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRenderOutput, err)
	}
	fmt.Fprintln(a.stdout, string(data))
	return nil
}

// unescapeInput は "\n" などのエスケープを解釈します。解釈できない場合はそのまま返します。
func unescapeInput(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	if u, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return u
	}
	return s
}

// save は出力ファイルを保存します。ドライランの場合は何もしません。
func (a *App) save(ctx context.Context, filename, content string, withBOM bool) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	outputPath := filepath.Join(a.config.OutputDir, filename)
	if a.config.DryRun {
		a.logger.Printf("ドライランのため %s には保存しません", outputPath)
		return nil
	}

	save := fileutil.SaveToFile
	if withBOM {
		save = fileutil.SaveToFileWithBOM
	}
	if err := save(a.fs, outputPath, content); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFile, err)
	}

	a.logger.Debug("データを保存しました", "path", outputPath, "size", humanize.Bytes(uint64(len(content))))
	return nil
}

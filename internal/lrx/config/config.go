// Package config はlrxコマンドの設定管理を行います
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

const Version = "0.1.0"

// Command は実行するサブコマンドです
type Command string

const (
	CommandParse   Command = "parse"   // 文書を解析してJSONまたはテキストで出力
	CommandCheck   Command = "check"   // ブックマークとレポートの整合性を検証
	CommandFmt     Command = "fmt"     // 文書を整形して出力
	CommandRule    Command = "rule"    // 単一の文法規則で入力を解析
	CommandVersion Command = "version" // バージョン表示
)

// 出力形式
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config はアプリケーションの設定を保持します
type Config struct {
	Command       Command
	InputPath     string
	RuleName      string
	RuleInput     string
	OutputDir     string
	Format        string
	Encoding      string
	AllowComments bool
	Strict        bool
	DebugMode     bool
	DryRun        bool
	ShowVersion   bool
}

// cli はkongに渡すコマンドライン定義です
type cli struct {
	Output   string `short:"o" default:"." help:"output directory for the generated files"`
	Encoding string `short:"e" default:"auto" help:"source text encoding (auto, utf-8, windows-1251, koi8-r, ...)"`
	Format   string `short:"f" enum:"json,text" default:"json" help:"output format (json or text)"`
	Comments bool   `help:"allow // comment lines inside blocks and the report"`
	Debug    bool   `short:"d" help:"enable debug output"`
	DryRun   bool   `short:"n" help:"perform a dry run without writing output files"`
	Version  bool   `short:"v" help:"show version information"`

	Parse   parseCmd   `cmd:"" default:"withargs" help:"Parse an LRX document (default command)"`
	Check   checkCmd   `cmd:"" help:"Check bookmarks against the report section"`
	Fmt     fmtCmd     `cmd:"" help:"Print the normalised LRX document"`
	Rule    ruleCmd    `cmd:"" help:"Parse INPUT with a single grammar rule"`
	Release versionCmd `cmd:"" name:"version" help:"Print version information"`
}

type parseCmd struct {
	File string `arg:"" optional:"" help:"path to .lrx or .lrx.xz file (auto-detected when omitted)"`
}

type checkCmd struct {
	File   string `arg:"" optional:"" help:"path to .lrx or .lrx.xz file (auto-detected when omitted)"`
	Strict bool   `help:"treat warnings as failures"`
}

type fmtCmd struct {
	File string `arg:"" optional:"" help:"path to .lrx or .lrx.xz file (auto-detected when omitted)"`
}

type ruleCmd struct {
	Name  string `arg:"" name:"rule" help:"grammar rule name (e.g. Chord, LineBookmark, Time)"`
	Input string `arg:"" help:"input text (escape sequences are interpreted)"`
}

type versionCmd struct{}

// Parse はコマンドライン引数（プログラム名を除く）を解析して設定を返します
func Parse(args []string) (*Config, error) {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("lrx"),
		kong.Description("LRX song notation parser"),
		kong.UsageOnError(),
	)
	if err != nil {
		return nil, err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Command:       commandOf(kctx.Command()),
		OutputDir:     c.Output,
		Format:        c.Format,
		Encoding:      c.Encoding,
		AllowComments: c.Comments,
		DebugMode:     c.Debug,
		DryRun:        c.DryRun,
		ShowVersion:   c.Version,
	}

	switch config.Command {
	case CommandParse:
		config.InputPath = c.Parse.File
	case CommandCheck:
		config.InputPath = c.Check.File
		config.Strict = c.Check.Strict
	case CommandFmt:
		config.InputPath = c.Fmt.File
	case CommandRule:
		config.RuleName = c.Rule.Name
		config.RuleInput = c.Rule.Input
	case CommandVersion:
		config.ShowVersion = true
	}

	return config, nil
}

// commandOf は "check <file>" のようなkongのコマンド表記からサブコマンドを取り出します
func commandOf(command string) Command {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return CommandParse
	}
	return Command(fields[0])
}

// ParseFlags はos.Argsを解析して設定を返します。解析に失敗した場合は終了します。
func ParseFlags() *Config {
	config, err := Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "lrx: %v\n", err)
		os.Exit(2)
	}
	return config
}

// HandleVersion はバージョン表示を処理します
func HandleVersion(showVersion bool) {
	if showVersion {
		fmt.Printf("lrx version %s\n", Version)
		os.Exit(0)
	}
}

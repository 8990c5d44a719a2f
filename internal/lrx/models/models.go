// Package models はlrxコマンドで使用するデータモデルを定義します
package models

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/shiroemons/go-lrx/pkg/lrx"
)

// Source は読み込んだ入力ファイルを表します
type Source struct {
	Path string // 入力ファイルのパス
	Size int64  // ファイルサイズ（圧縮されている場合は圧縮後のサイズ）
	Text string // UTF-8に変換した本文
}

// Fingerprint は本文のBLAKE3-256ハッシュを16進文字列で返します
func (s Source) Fingerprint() string {
	sum := blake3.Sum256([]byte(s.Text))
	return hex.EncodeToString(sum[:])
}

// Export はparseコマンドのJSON出力です
type Export struct {
	RunID       string        `json:"runId"`
	Source      string        `json:"source"`
	Fingerprint string        `json:"fingerprint"`
	Summary     Summary       `json:"summary"`
	Document    *lrx.Document `json:"document"`
}

// Summary は文書の集計です
type Summary struct {
	Title       string   `json:"title,omitempty"`
	Blocks      int      `json:"blocks"`
	EmptyLines  int      `json:"emptyLines"`
	ChordsLines int      `json:"chordsLines"`
	LyricsLines int      `json:"lyricsLines"`
	Bookmarks   int      `json:"bookmarks"`
	ReportLines int      `json:"reportLines"`
	Chords      []string `json:"chords"` // 初出順、重複なし
}

// Summarize は文書を集計します
func Summarize(doc *lrx.Document) Summary {
	s := Summary{Blocks: len(doc.Blocks), Chords: []string{}}
	if doc.Title != nil {
		s.Title = doc.Title.Text
	}

	seen := make(map[string]bool)
	for _, b := range doc.Blocks {
		for _, l := range b.Lines {
			switch l := l.(type) {
			case *lrx.EmptyLine:
				s.EmptyLines++
			case *lrx.ChordsLine:
				s.ChordsLines++
				for _, c := range l.Chords {
					name := c.String()
					if !seen[name] {
						seen[name] = true
						s.Chords = append(s.Chords, name)
					}
				}
			case *lrx.LyricsLine:
				s.LyricsLines++
				s.Bookmarks += len(l.Bookmarks)
			}
		}
	}
	if doc.Report != nil {
		s.ReportLines = len(doc.Report.Lines)
	}

	return s
}

// Severity は検証結果の重要度です
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue は検証で見つかった問題です
type Issue struct {
	Severity Severity     `json:"severity"`
	Code     string       `json:"code"`
	ID       string       `json:"id,omitempty"`
	Pos      lrx.Position `json:"pos"`
	Message  string       `json:"message"`
}

// CheckReport はcheckコマンドの出力です
type CheckReport struct {
	RunID       string  `json:"runId"`
	Source      string  `json:"source"`
	Fingerprint string  `json:"fingerprint"`
	Issues      []Issue `json:"issues"`
}

// Count は指定した重要度の問題の数を返します
func (r CheckReport) Count(severity Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

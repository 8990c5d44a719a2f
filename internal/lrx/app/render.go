package app

import (
	"fmt"
	"strings"

	"github.com/shiroemons/go-lrx/internal/lrx/models"
	"github.com/shiroemons/go-lrx/pkg/lrx"
)

// renderDocumentText は文書を人が読むための一覧形式にします
func renderDocumentText(doc *lrx.Document, summary models.Summary) string {
	var builder strings.Builder

	// ヘッダー情報
	if summary.Title != "" {
		builder.WriteString(fmt.Sprintf("#「%s」\n", summary.Title))
	}
	builder.WriteString(fmt.Sprintf("#ブロック %d、歌詞行 %d、コード行 %d、空行 %d、ブックマーク %d、レポート行 %d\n",
		summary.Blocks, summary.LyricsLines, summary.ChordsLines, summary.EmptyLines, summary.Bookmarks, summary.ReportLines))
	if len(summary.Chords) > 0 {
		builder.WriteString(fmt.Sprintf("#コード: %s\n", strings.Join(summary.Chords, " ")))
	}

	for _, b := range doc.Blocks {
		builder.WriteString("\n")
		if b.Header != nil {
			builder.WriteString(fmt.Sprintf("[%s]\n", b.Header.Title))
		}
		for _, l := range b.Lines {
			builder.WriteString(renderLine(l))
		}
	}

	if doc.Report != nil {
		builder.WriteString("\n===\n")
		for _, rl := range doc.Report.Lines {
			builder.WriteString(fmt.Sprintf("%4d  ~%s %s\n", rl.Pos.Line, rl.ID, rl.Text))
		}
	}

	return builder.String()
}

// renderLine は1行を「行番号 種別 内容」の形式にします
func renderLine(l lrx.Line) string {
	line := l.Position().Line
	switch l := l.(type) {
	case *lrx.EmptyLine:
		return fmt.Sprintf("%4d  EMPTY\n", line)
	case *lrx.ChordsLine:
		chords := make([]string, len(l.Chords))
		for i, c := range l.Chords {
			chords[i] = fmt.Sprintf("%s@%d", c, c.Pos.Column)
		}
		return fmt.Sprintf("%4d  CHORDS  %s\n", line, strings.Join(chords, " "))
	case *lrx.LyricsLine:
		if len(l.Bookmarks) == 0 {
			return fmt.Sprintf("%4d  LINE    %s\n", line, l.Text)
		}
		marks := make([]string, len(l.Bookmarks))
		for i, bm := range l.Bookmarks {
			marks[i] = bm.Text
		}
		return fmt.Sprintf("%4d  LINE    %s  (%s, avg %.2f)\n", line, l.PlainLyrics(), strings.Join(marks, " "), l.AvgRate)
	default:
		return fmt.Sprintf("%4d  %s\n", line, l.Type())
	}
}

// renderIssuesText は検証結果を "ファイル:行:列: 重要度: メッセージ [コード]" の形式にします
func renderIssuesText(report models.CheckReport) string {
	var builder strings.Builder

	for _, issue := range report.Issues {
		builder.WriteString(fmt.Sprintf("%s:%d:%d: %s: %s [%s]\n",
			report.Source, issue.Pos.Line, issue.Pos.Column, issue.Severity, issue.Message, issue.Code))
	}
	builder.WriteString(fmt.Sprintf("#エラー %d件、警告 %d件、情報 %d件\n",
		report.Count(models.SeverityError), report.Count(models.SeverityWarning), report.Count(models.SeverityInfo)))

	return builder.String()
}

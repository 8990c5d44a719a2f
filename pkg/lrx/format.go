package lrx

import (
	"fmt"
	"strings"
)

// Format は文書をLRX形式のテキストに戻します。
// 改行は "\n" に統一され、タイトル直後の空行は1行に（タイトルが "===" の場合は空行なし）、
// レポート行のIDとコメントの間の空白は1つにまとめられます。
// Format の出力を再び解析すると同じ構造の文書になります。
func Format(doc *Document) string {
	var sb strings.Builder

	if doc.Title != nil {
		sb.WriteString(doc.Title.Text)
		sb.WriteByte('\n')
		// "===" のタイトルの後に空行を置くと区切り行になってしまう
		if !isSeparatorText(doc.Title.Text) {
			sb.WriteByte('\n')
		}
	}

	for _, b := range doc.Blocks {
		if b.Header != nil {
			fmt.Fprintf(&sb, "[%s]\n", b.Header.Title)
		}
		for _, l := range b.Lines {
			sb.WriteString(LineText(l))
			sb.WriteByte('\n')
		}
	}

	if doc.Report != nil {
		sb.WriteString("===\n\n")
		for _, rl := range doc.Report.Lines {
			fmt.Fprintf(&sb, "~%s %s\n", rl.ID, rl.Text)
		}
	}
	return sb.String()
}

// isSeparatorText は s が "===" と末尾の空白だけからなるかを返します
func isSeparatorText(s string) bool {
	rest, ok := strings.CutPrefix(s, "===")
	return ok && strings.TrimRight(rest, " \t") == ""
}

// LineText は行の原文を返します
func LineText(l Line) string {
	switch l := l.(type) {
	case *EmptyLine:
		return ""
	case *ChordsLine:
		return l.Text
	case *LyricsLine:
		return l.Text
	default:
		panic(fmt.Sprintf("lrx: unknown line type %T", l))
	}
}

// PlainLyrics はブックマークを取り除いた歌詞の文字列を返します
func (l *LyricsLine) PlainLyrics() string {
	if len(l.Bookmarks) == 0 {
		return l.Text
	}
	var sb strings.Builder
	rest := 0
	for _, b := range l.Bookmarks {
		start := b.Pos.Offset - l.Pos.Offset
		sb.WriteString(l.Text[rest:start])
		rest = start + len(b.Text)
	}
	sb.WriteString(l.Text[rest:])
	return sb.String()
}

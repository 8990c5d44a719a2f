// Package lrx はLRX形式の歌詞・コード譜テキストを解析するためのパッケージです。
//
// LRX文書は次の要素で構成されます:
//   - タイトル行（省略可）
//   - ブロック（[1 Verse] のような見出しと、空行・コード行・歌詞行の並び）
//   - レポート（=== 区切り行の後に続く ~<id> <コメント> の並び、省略可）
//
// 歌詞行には ~<id>+<rate> 形式のブックマークを埋め込むことができます。
//
// 基本的な使い方:
//
//	doc, err := lrx.Parse(text)
//	if err != nil {
//	    var se *lrx.SyntaxError
//	    if errors.As(err, &se) {
//	        fmt.Println(se.Snippet(text))
//	    }
//	    return err
//	}
//	for _, block := range doc.Blocks {
//	    for _, line := range block.Lines {
//	        switch l := line.(type) {
//	        case *lrx.ChordsLine:
//	            // コード行
//	        case *lrx.LyricsLine:
//	            // 歌詞行
//	        case *lrx.EmptyLine:
//	            // 空行
//	        }
//	    }
//	}
package lrx

// NodeType は構文ノードの種別を表します
type NodeType string

// ノード種別
const (
	TypeDocument         NodeType = "DOCUMENT"
	TypeDocumentTitle    NodeType = "DOCUMENT_TITLE"
	TypeBlock            NodeType = "BLOCK"
	TypeBlockHeader      NodeType = "BLOCK_HEADER"
	TypeEmptyLine        NodeType = "EMPTY_LINE"
	TypeLine             NodeType = "LINE"
	TypeChordsLine       NodeType = "CHORDS_LINE"
	TypeChord            NodeType = "CHORD"
	TypeChordBass        NodeType = "CHORD_BASS"
	TypeChordSuffix      NodeType = "CHORD_SUFFIX"
	TypeLineBookmark     NodeType = "LINE_BOOKMARK"
	TypeLineBookmarkRate NodeType = "LINE_BOOKMARK_RATE"
	TypeBookmarkID       NodeType = "BOOKMARK_ID"
	TypeReport           NodeType = "REPORT"
	TypeReportLine       NodeType = "REPORT_LINE"
	TypeSeparator        NodeType = "SEPARATOR"
	TypeTime             NodeType = "TIME"
	TypeWhiteSpace       NodeType = "WHITESPACE"
	TypeNewline          NodeType = "NL"
	TypeEOF              NodeType = "EOF"
	TypeComment          NodeType = "COMMENT"
	TypeInteger          NodeType = "INTEGER"
	TypeNote             NodeType = "NOTE"
)

// Node は解析結果のノードが実装するインターフェース
type Node interface {
	Type() NodeType
}

// Position はソース上の位置を表します
type Position struct {
	Offset int `json:"offset"` // 先頭からのバイトオフセット
	Line   int `json:"line"`   // 1始まりの行番号
	Column int `json:"column"` // 1始まりの列番号（ルーン単位）
}

// Lexeme は字句規則（空白、改行、整数など）の解析結果です
type Lexeme struct {
	Kind NodeType `json:"type"`
	Text string   `json:"text"`
}

// Type はノード種別を返します
func (l Lexeme) Type() NodeType { return l.Kind }

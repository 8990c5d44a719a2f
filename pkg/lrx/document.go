package lrx

// Document はLRX文書全体の解析結果です。解析後に変更されることはありません。
type Document struct {
	Title  *DocumentTitle `json:"title,omitempty"`
	Blocks []*Block       `json:"blocks"`
	Report *Report        `json:"report,omitempty"`
}

// Type はノード種別を返します
func (d *Document) Type() NodeType { return TypeDocument }

// Bookmarks は文書中のすべてのブックマークを出現順に返します
func (d *Document) Bookmarks() []Bookmark {
	var out []Bookmark
	for _, b := range d.Blocks {
		for _, l := range b.Lines {
			if ly, ok := l.(*LyricsLine); ok {
				out = append(out, ly.Bookmarks...)
			}
		}
	}
	return out
}

// DocumentTitle は文書のタイトル行です
type DocumentTitle struct {
	Text string   `json:"text"`
	Pos  Position `json:"pos"`
}

// Type はノード種別を返します
func (t *DocumentTitle) Type() NodeType { return TypeDocumentTitle }

// Block は見出し（省略可）と行の並びです
type Block struct {
	Header *BlockHeader `json:"header,omitempty"`
	Lines  []Line       `json:"lines"`
}

// Type はノード種別を返します
func (b *Block) Type() NodeType { return TypeBlock }

// BlockHeader は [...] 形式のブロック見出しです。
// Title は括弧内の文字列をそのまま保持します（前後の空白も削りません）。
type BlockHeader struct {
	Title string   `json:"title"`
	Pos   Position `json:"pos"`
}

// Type はノード種別を返します
func (h *BlockHeader) Type() NodeType { return TypeBlockHeader }

// Separator はブロック部とレポート部を区切る === 行です
type Separator struct {
	Pos Position `json:"pos"`
}

// Type はノード種別を返します
func (s *Separator) Type() NodeType { return TypeSeparator }

// Report はブックマークIDとコメントを対応付けるレポート部です
type Report struct {
	Lines []ReportLine `json:"lines"`
}

// Type はノード種別を返します
func (r *Report) Type() NodeType { return TypeReport }

// ReportLine は ~<id> <コメント> 形式のレポート行です
type ReportLine struct {
	ID   BookmarkID `json:"id"`
	Text string     `json:"text"`
	Pos  Position   `json:"pos"`
}

// Type はノード種別を返します
func (r ReportLine) Type() NodeType { return TypeReportLine }

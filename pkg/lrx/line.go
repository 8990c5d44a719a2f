package lrx

import "encoding/json"

// Line は1行分の解析結果です。実装は *EmptyLine, *ChordsLine, *LyricsLine のいずれかです。
type Line interface {
	Node
	Position() Position
	isLine()
}

// EmptyLine は空行です
type EmptyLine struct {
	Pos Position `json:"pos"`
}

// ChordsLine は空白区切りのコードだけからなる行です
type ChordsLine struct {
	Text   string   `json:"text"` // 行の原文（整形の再現用）
	Chords []Chord  `json:"chords"`
	Pos    Position `json:"pos"`
}

// LyricsLine は歌詞行です。Text はブックマークを含む行全体の原文です。
type LyricsLine struct {
	Text      string     `json:"text"`
	Bookmarks []Bookmark `json:"bookmarks"`
	AvgRate   float64    `json:"avgRate"` // ブックマークのレートの平均。なければ0
	Pos       Position   `json:"pos"`
}

// Type はノード種別を返します
func (l *EmptyLine) Type() NodeType { return TypeEmptyLine }

// Type はノード種別を返します
func (l *ChordsLine) Type() NodeType { return TypeChordsLine }

// Type はノード種別を返します
func (l *LyricsLine) Type() NodeType { return TypeLine }

// Position は行の開始位置を返します
func (l *EmptyLine) Position() Position { return l.Pos }

// Position は行の開始位置を返します
func (l *ChordsLine) Position() Position { return l.Pos }

// Position は行の開始位置を返します
func (l *LyricsLine) Position() Position { return l.Pos }

func (*EmptyLine) isLine()  {}
func (*ChordsLine) isLine() {}
func (*LyricsLine) isLine() {}

// MarshalJSON は種別を "type" に含めて出力します
func (l *EmptyLine) MarshalJSON() ([]byte, error) {
	type alias EmptyLine
	return json.Marshal(struct {
		Type NodeType `json:"type"`
		*alias
	}{l.Type(), (*alias)(l)})
}

// MarshalJSON は種別を "type" に含めて出力します
func (l *ChordsLine) MarshalJSON() ([]byte, error) {
	type alias ChordsLine
	return json.Marshal(struct {
		Type NodeType `json:"type"`
		*alias
	}{l.Type(), (*alias)(l)})
}

// MarshalJSON は種別を "type" に含めて出力します
func (l *LyricsLine) MarshalJSON() ([]byte, error) {
	type alias LyricsLine
	return json.Marshal(struct {
		Type NodeType `json:"type"`
		*alias
	}{l.Type(), (*alias)(l)})
}

// line: EmptyLine / ChordsLine / LyricsLine
// コード行の試行は行全体が覆われた場合だけ成功し、失敗すれば歌詞行として読み直します。
func (p *parser) line(pos int) result[Line] {
	if e := p.emptyLine(pos); e.ok {
		return success[Line](e.val, e.end)
	}
	if c := p.chordsLine(pos); c.ok {
		return success[Line](c.val, c.end)
	}
	if l := p.lyricsLine(pos); l.ok {
		return success[Line](l.val, l.end)
	}
	return failure[Line]()
}

// emptyLine: NL | EOF
func (p *parser) emptyLine(pos int) result[*EmptyLine] {
	le := p.lineEnd(pos)
	if !le.ok {
		return failure[*EmptyLine]()
	}
	return success(&EmptyLine{Pos: p.src.position(pos)}, le.end)
}

// chordsLine: WhiteSpaces? Chord (WhiteSpaces Chord)* WhiteSpaces? (NL | EOF)
// 各トークンがコードとして最後まで一致しなければ行全体が失敗します。
func (p *parser) chordsLine(pos int) result[*ChordsLine] {
	end := p.lineContentEnd(pos)
	var chords []Chord

	i := p.optionalWhiteSpaces(pos)
	for i < end {
		c := p.chord(i)
		if !c.ok {
			return failure[*ChordsLine]()
		}
		if c.end < end && !isWhiteSpace(p.text[c.end]) {
			p.fail(c.end, "whitespace")
			return failure[*ChordsLine]()
		}
		chords = append(chords, c.val)
		i = p.optionalWhiteSpaces(c.end)
	}

	if len(chords) == 0 {
		p.fail(i, "chord")
		return failure[*ChordsLine]()
	}
	le := p.lineEnd(end)
	return success(&ChordsLine{
		Text:   p.text[pos:end],
		Chords: chords,
		Pos:    p.src.position(pos),
	}, le.end)
}

// lyricsLine は空でない行全体を受理し、その中のブックマークを左から順に集めます。
// ブックマークの部分文字列は Text から取り除きません。
func (p *parser) lyricsLine(pos int) result[*LyricsLine] {
	end := p.lineContentEnd(pos)
	if end == pos {
		p.fail(pos, "lyrics")
		return failure[*LyricsLine]()
	}

	bookmarks := []Bookmark{}
	for i := pos; i < end; {
		if p.text[i] == '~' {
			b := p.lineBookmark(i)
			if p.aborted() {
				return failure[*LyricsLine]()
			}
			if b.ok {
				bookmarks = append(bookmarks, b.val)
				i = b.end
				continue
			}
		}
		i++
	}

	le := p.lineEnd(end)
	return success(&LyricsLine{
		Text:      p.text[pos:end],
		Bookmarks: bookmarks,
		AvgRate:   averageRate(bookmarks),
		Pos:       p.src.position(pos),
	}, le.end)
}

// averageRate はレートの算術平均を返します。ブックマークがなければ0です
func averageRate(bookmarks []Bookmark) float64 {
	if len(bookmarks) == 0 {
		return 0
	}
	var sum float64
	for _, b := range bookmarks {
		sum += float64(b.Rate)
	}
	return sum / float64(len(bookmarks))
}

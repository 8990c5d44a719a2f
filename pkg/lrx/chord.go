package lrx

import "strings"

// Chord はコード（根音、臨時記号、サフィックス、分数コードのベース音）を表します
type Chord struct {
	Note       string     `json:"note"`                 // A〜G
	Accidental string     `json:"accidental,omitempty"` // "#" または空
	Suffix     string     `json:"suffix"`               // m, sus4, M7 など（空はメジャー）
	Bass       *ChordBass `json:"bass,omitempty"`
	Pos        Position   `json:"pos"`
}

// Type はノード種別を返します
func (c Chord) Type() NodeType { return TypeChord }

// Root は臨時記号を含む根音を返します（例: "C#"）
func (c Chord) Root() string {
	return c.Note + c.Accidental
}

// String はコードを元の表記に戻します
func (c Chord) String() string {
	var sb strings.Builder
	sb.WriteString(c.Root())
	sb.WriteString(c.Suffix)
	if c.Bass != nil {
		sb.WriteString(c.Bass.String())
	}
	return sb.String()
}

// ChordBass は分数コードのベース音を表します
type ChordBass struct {
	Note       string `json:"note"`
	Accidental string `json:"accidental,omitempty"`
}

// Type はノード種別を返します
func (b ChordBass) Type() NodeType { return TypeChordBass }

// String はベース音を "/" 付きの表記に戻します
func (b ChordBass) String() string {
	return "/" + b.Note + b.Accidental
}

// isSuffixChar はサフィックスに使える文字（ASCIIの英数字）かを返します。
// "/" は含まないため、サフィックスはベース音の手前で必ず止まります。
func isSuffixChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || isDigit(c)
}

// chordBass: "/" Note Accidental?
func (p *parser) chordBass(pos int) result[ChordBass] {
	if pos >= len(p.text) || p.text[pos] != '/' {
		p.fail(pos, `"/"`)
		return failure[ChordBass]()
	}
	n := p.note(pos + 1)
	if !n.ok {
		return failure[ChordBass]()
	}
	acc, end := p.accidental(n.end)
	return success(ChordBass{Note: n.val, Accidental: acc}, end)
}

// chordSuffix は英数字の最長の並びを返します。空でも成功します。
func (p *parser) chordSuffix(pos int) result[string] {
	end := pos
	for end < len(p.text) && isSuffixChar(p.text[end]) {
		end++
	}
	return success(p.text[pos:end], end)
}

// chord: Note Accidental? ChordSuffix ChordBass?
func (p *parser) chord(pos int) result[Chord] {
	n := p.note(pos)
	if !n.ok {
		return failure[Chord]()
	}
	c := Chord{Note: n.val, Pos: p.src.position(pos)}

	var end int
	c.Accidental, end = p.accidental(n.end)

	s := p.chordSuffix(end)
	c.Suffix, end = s.val, s.end

	if b := p.chordBass(end); b.ok {
		c.Bass = &b.val
		end = b.end
	}
	return success(c, end)
}

package lrx

// 字句規則。いずれもASCIIの文字だけを判定するため、
// UTF-8のマルチバイト列の途中で分割することはありません。

func isWhiteSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isNewline(c byte) bool {
	return c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isNoteLetter(c byte) bool {
	return 'A' <= c && c <= 'G'
}

// whiteSpace: " " | "\t"
func (p *parser) whiteSpace(pos int) result[string] {
	if pos < len(p.text) && isWhiteSpace(p.text[pos]) {
		return success(p.text[pos:pos+1], pos+1)
	}
	p.fail(pos, "whitespace")
	return failure[string]()
}

// whiteSpaces: WhiteSpace+
func (p *parser) whiteSpaces(pos int) result[string] {
	end := p.optionalWhiteSpaces(pos)
	if end == pos {
		p.fail(pos, "whitespace")
		return failure[string]()
	}
	return success(p.text[pos:end], end)
}

// optionalWhiteSpaces は空白を読み飛ばした位置を返します
func (p *parser) optionalWhiteSpaces(pos int) int {
	for pos < len(p.text) && isWhiteSpace(p.text[pos]) {
		pos++
	}
	return pos
}

// newline: "\r\n" | "\n" | "\r"
func (p *parser) newline(pos int) result[string] {
	if hasPrefixAt(p.text, pos, "\r\n") {
		return success("\r\n", pos+2)
	}
	if pos < len(p.text) && isNewline(p.text[pos]) {
		return success(p.text[pos:pos+1], pos+1)
	}
	p.fail(pos, "newline")
	return failure[string]()
}

// eof は入力の終端でのみ成功し、何も消費しません
func (p *parser) eof(pos int) result[string] {
	if pos >= len(p.text) {
		return success("", pos)
	}
	p.fail(pos, "end of input")
	return failure[string]()
}

// lineEnd: NL | EOF
func (p *parser) lineEnd(pos int) result[string] {
	if nl := p.newline(pos); nl.ok {
		return nl
	}
	return p.eof(pos)
}

// comment: "//" 改行以外の文字*
func (p *parser) comment(pos int) result[string] {
	if !hasPrefixAt(p.text, pos, "//") {
		p.fail(pos, `"//"`)
		return failure[string]()
	}
	end := p.lineContentEnd(pos + 2)
	return success(p.text[pos:end], end)
}

// integer: [0-9]+
// 先頭の0や桁数を保つため、数値には変換せず文字列のまま返します。
func (p *parser) integer(pos int) result[string] {
	end := pos
	for end < len(p.text) && isDigit(p.text[end]) {
		end++
	}
	if end == pos {
		p.fail(pos, "integer")
		return failure[string]()
	}
	return success(p.text[pos:end], end)
}

// note: [A-G]
func (p *parser) note(pos int) result[string] {
	if pos < len(p.text) && isNoteLetter(p.text[pos]) {
		return success(p.text[pos:pos+1], pos+1)
	}
	p.fail(pos, "note (A-G)")
	return failure[string]()
}

// accidental: "#"?
func (p *parser) accidental(pos int) (string, int) {
	if pos < len(p.text) && p.text[pos] == '#' {
		return "#", pos + 1
	}
	return "", pos
}

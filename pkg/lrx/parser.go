package lrx

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// Options は解析時の挙動を指定します
type Options struct {
	// AllowComments が true の場合、// で始まる行をブロック・レポート内で読み飛ばします
	AllowComments bool
}

// result は規則の試行結果です。
// 成功時は値と次のカーソル位置を持ち、失敗時の情報は parser 側に記録されます。
type result[T any] struct {
	val T
	end int
	ok  bool
}

func success[T any](val T, end int) result[T] {
	return result[T]{val: val, end: end, ok: true}
}

func failure[T any]() result[T] {
	return result[T]{}
}

// parser は1回の解析呼び出しの状態を保持します。
// 呼び出し間で共有されることはありません。
type parser struct {
	src  *source
	text string
	opts Options

	// 最も先まで到達した失敗位置と、そこで期待された要素
	failPos  int
	expected []string

	// 意味エラー。設定されると解析全体を中断します
	err error
}

func newParser(text string, opts Options) *parser {
	return &parser{
		src:     newSource(text),
		text:    text,
		opts:    opts,
		failPos: -1,
	}
}

// fail は pos で what が期待されていたことを記録します
func (p *parser) fail(pos int, what string) {
	switch {
	case pos > p.failPos:
		p.failPos = pos
		p.expected = append(p.expected[:0], what)
	case pos == p.failPos:
		if !slices.Contains(p.expected, what) {
			p.expected = append(p.expected, what)
		}
	}
}

// abort は意味エラーを記録します。最初のエラーだけが残ります
func (p *parser) abort(pos int, literal string, err error) {
	if p.err != nil {
		return
	}
	p.err = &SemanticError{
		Pos:     p.src.position(pos),
		Literal: literal,
		Err:     err,
	}
}

func (p *parser) aborted() bool {
	return p.err != nil
}

func (p *parser) syntaxError() *SyntaxError {
	pos := max(p.failPos, 0)
	found := "end of input"
	if pos < len(p.text) {
		r, _ := utf8.DecodeRuneInString(p.text[pos:])
		found = fmt.Sprintf("%q", r)
	}
	return &SyntaxError{
		Pos:      p.src.position(pos),
		Expected: slices.Clone(p.expected),
		Found:    found,
	}
}

// run は規則 f を入力全体に適用します。入力がすべて消費されなければ失敗です
func run[T any](text string, opts Options, f func(*parser, int) result[T]) (T, error) {
	var zero T
	p := newParser(text, opts)
	r := f(p, 0)
	if p.aborted() {
		return zero, p.err
	}
	if r.ok {
		if r.end == len(text) {
			return r.val, nil
		}
		p.fail(r.end, "end of input")
	}
	return zero, p.syntaxError()
}

// Parse はLRX文書全体を解析します
func Parse(text string) (*Document, error) {
	return ParseWithOptions(text, Options{})
}

// ParseWithOptions はオプションを指定してLRX文書全体を解析します
func ParseWithOptions(text string, opts Options) (*Document, error) {
	return run(text, opts, (*parser).document)
}

// document: [DocumentTitle] Block* [Separator Report] EOF
func (p *parser) document(pos int) result[*Document] {
	doc := &Document{Blocks: []*Block{}}
	i := p.skipBlankLines(pos)

	if t := p.documentTitle(i); t.ok {
		doc.Title = t.val
		i = p.skipBlankLines(t.end)
	}
	if p.aborted() {
		return failure[*Document]()
	}

	for i < len(p.text) {
		if p.separator(i).ok {
			break
		}
		b := p.block(i)
		if !b.ok {
			break
		}
		doc.Blocks = append(doc.Blocks, b.val)
		i = b.end
	}
	if p.aborted() {
		return failure[*Document]()
	}

	if p.separator(i).ok {
		r := p.report(i)
		if !r.ok {
			return failure[*Document]()
		}
		doc.Report = r.val
		i = r.end
	}

	if !p.eof(i).ok {
		return failure[*Document]()
	}
	return success(doc, i)
}

// skipBlankLines は空白だけの行を読み飛ばします
func (p *parser) skipBlankLines(pos int) int {
	for {
		r := p.blankLine(pos)
		if !r.ok {
			return pos
		}
		pos = r.end
	}
}

// documentTitle は文書先頭の空でない行をタイトルとして受理します。
// ブロック見出し、区切り行、コード行はタイトルになりません。
func (p *parser) documentTitle(pos int) result[*DocumentTitle] {
	end := p.lineContentEnd(pos)
	if end == pos || p.atBoundary(pos) || p.chordsLine(pos).ok || p.blankLine(pos).ok {
		p.fail(pos, "title")
		return failure[*DocumentTitle]()
	}
	le := p.lineEnd(end)
	return success(&DocumentTitle{Text: p.text[pos:end], Pos: p.src.position(pos)}, le.end)
}

// atBoundary は pos から次のブロック見出しまたは区切り行が始まるかを返します
func (p *parser) atBoundary(pos int) bool {
	return p.blockHeader(pos).ok || p.separator(pos).ok
}

// block: [BlockHeader] Line*
// 行の並びは次のブロック見出し、区切り行、入力の終わりのいずれかで終わります。
func (p *parser) block(pos int) result[*Block] {
	b := &Block{Lines: []Line{}}
	i := pos

	if h := p.blockHeader(i); h.ok {
		b.Header = h.val
		i = h.end
	}

	for i < len(p.text) && !p.atBoundary(i) {
		if p.opts.AllowComments {
			if c := p.commentLine(i); c.ok {
				i = c.end
				continue
			}
		}
		l := p.line(i)
		if !l.ok {
			return failure[*Block]()
		}
		b.Lines = append(b.Lines, l.val)
		i = l.end
	}

	if b.Header == nil && len(b.Lines) == 0 {
		p.fail(pos, "block")
		return failure[*Block]()
	}
	return success(b, i)
}

// blockHeader: "[" 閉じ括弧と改行以外の文字* "]" WhiteSpaces? (NL | EOF)
func (p *parser) blockHeader(pos int) result[*BlockHeader] {
	if pos >= len(p.text) || p.text[pos] != '[' {
		p.fail(pos, `"["`)
		return failure[*BlockHeader]()
	}
	i := pos + 1
	for i < len(p.text) && p.text[i] != ']' && !isNewline(p.text[i]) {
		i++
	}
	if i >= len(p.text) || p.text[i] != ']' {
		p.fail(i, `"]"`)
		return failure[*BlockHeader]()
	}
	title := p.text[pos+1 : i]
	end := p.optionalWhiteSpaces(i + 1)
	le := p.lineEnd(end)
	if !le.ok {
		return failure[*BlockHeader]()
	}
	return success(&BlockHeader{Title: title, Pos: p.src.position(pos)}, le.end)
}

// separator: "===" WhiteSpaces? (NL BlankLine | NL EOF | EOF)
func (p *parser) separator(pos int) result[*Separator] {
	if !hasPrefixAt(p.text, pos, "===") {
		p.fail(pos, `"==="`)
		return failure[*Separator]()
	}
	i := p.optionalWhiteSpaces(pos + 3)
	le := p.lineEnd(i)
	if !le.ok {
		return failure[*Separator]()
	}
	end := le.end
	if end < len(p.text) {
		bl := p.blankLine(end)
		if !bl.ok {
			return failure[*Separator]()
		}
		end = bl.end
	}
	return success(&Separator{Pos: p.src.position(pos)}, end)
}

// report: [Separator] (ReportLine | BlankLine)*
func (p *parser) report(pos int) result[*Report] {
	r := &Report{Lines: []ReportLine{}}
	i := pos
	if s := p.separator(i); s.ok {
		i = s.end
	}

	for i < len(p.text) {
		if bl := p.blankLine(i); bl.ok {
			i = bl.end
			continue
		}
		if p.opts.AllowComments {
			if c := p.commentLine(i); c.ok {
				i = c.end
				continue
			}
		}
		rl := p.reportLine(i)
		if !rl.ok {
			break
		}
		r.Lines = append(r.Lines, rl.val)
		i = rl.end
	}
	if p.aborted() {
		return failure[*Report]()
	}
	return success(r, i)
}

// reportLine: "~" BookmarkId WhiteSpaces 行末までのテキスト (NL | EOF)
func (p *parser) reportLine(pos int) result[ReportLine] {
	if pos >= len(p.text) || p.text[pos] != '~' {
		p.fail(pos, `"~"`)
		return failure[ReportLine]()
	}
	id := p.bookmarkID(pos + 1)
	if !id.ok {
		return failure[ReportLine]()
	}
	ws := p.whiteSpaces(id.end)
	if !ws.ok {
		return failure[ReportLine]()
	}
	end := p.lineContentEnd(ws.end)
	if !p.checkID(pos+1, id.val) {
		return failure[ReportLine]()
	}
	le := p.lineEnd(end)
	return success(ReportLine{
		ID:   id.val,
		Text: p.text[ws.end:end],
		Pos:  p.src.position(pos),
	}, le.end)
}

// blankLine: WhiteSpaces? NL | WhiteSpaces EOF
// 何も消費しない一致（入力終端）は失敗として扱います。
func (p *parser) blankLine(pos int) result[string] {
	i := p.optionalWhiteSpaces(pos)
	le := p.lineEnd(i)
	if !le.ok || le.end == pos {
		p.fail(pos, "blank line")
		return failure[string]()
	}
	return success(p.text[pos:i], le.end)
}

// commentLine: WhiteSpaces? SingleLineComment (NL | EOF)
func (p *parser) commentLine(pos int) result[string] {
	i := p.optionalWhiteSpaces(pos)
	c := p.comment(i)
	if !c.ok {
		return failure[string]()
	}
	le := p.lineEnd(c.end)
	return success(c.val, le.end)
}

// lineContentEnd は pos から見て最初の改行文字（または入力終端）の位置を返します
func (p *parser) lineContentEnd(pos int) int {
	i := pos
	for i < len(p.text) && !isNewline(p.text[i]) {
		i++
	}
	return i
}

func hasPrefixAt(s string, pos int, prefix string) bool {
	return pos <= len(s) && len(s)-pos >= len(prefix) && s[pos:pos+len(prefix)] == prefix
}

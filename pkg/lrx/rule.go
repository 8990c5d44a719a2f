package lrx

import "fmt"

// Rule は単独で呼び出せる文法規則の名前です
type Rule string

// 文法規則
const (
	RuleDocument          Rule = "Document"
	RuleDocumentTitle     Rule = "DocumentTitle"
	RuleBlock             Rule = "Block"
	RuleBlockHeader       Rule = "BlockHeader"
	RuleLine              Rule = "Line"
	RuleEmptyLine         Rule = "EmptyLine"
	RuleChordsLine        Rule = "ChordsLine"
	RuleLyricsLine        Rule = "LyricsLine"
	RuleChord             Rule = "Chord"
	RuleChordBass         Rule = "ChordBass"
	RuleChordSuffix       Rule = "ChordSuffix"
	RuleBookmark          Rule = "LineBookmark"
	RuleBookmarkRate      Rule = "LineBookmarkRate"
	RuleBookmarkID        Rule = "BookmarkId"
	RuleReport            Rule = "Report"
	RuleReportLine        Rule = "ReportLine"
	RuleSeparator         Rule = "Separator"
	RuleTime              Rule = "Time"
	RuleWhiteSpace        Rule = "WhiteSpace"
	RuleWhiteSpaces       Rule = "WhiteSpaces"
	RuleNL                Rule = "NL"
	RuleEOF               Rule = "EOF"
	RuleSingleLineComment Rule = "SingleLineComment"
	RuleInteger           Rule = "Integer"
	RuleNote              Rule = "Note"
)

type ruleFunc func(p *parser, pos int) (Node, int, bool)

func nodeRule[T Node](f func(*parser, int) result[T]) ruleFunc {
	return func(p *parser, pos int) (Node, int, bool) {
		r := f(p, pos)
		return r.val, r.end, r.ok
	}
}

func lexemeRule(kind NodeType, f func(*parser, int) result[string]) ruleFunc {
	return func(p *parser, pos int) (Node, int, bool) {
		r := f(p, pos)
		return Lexeme{Kind: kind, Text: r.val}, r.end, r.ok
	}
}

var rules = map[Rule]ruleFunc{
	RuleDocument:      nodeRule((*parser).document),
	RuleDocumentTitle: nodeRule((*parser).documentTitle),
	RuleBlock:         nodeRule((*parser).block),
	RuleBlockHeader:   nodeRule((*parser).blockHeader),
	RuleLine:          nodeRule((*parser).line),
	RuleEmptyLine:     nodeRule((*parser).emptyLine),
	RuleChordsLine:    nodeRule((*parser).chordsLine),
	RuleLyricsLine:    nodeRule((*parser).lyricsLine),
	RuleChord:         nodeRule((*parser).chord),
	RuleChordBass:     nodeRule((*parser).chordBass),
	RuleChordSuffix:   lexemeRule(TypeChordSuffix, (*parser).chordSuffix),
	RuleBookmark:      nodeRule((*parser).lineBookmark),
	RuleBookmarkRate:  nodeRule((*parser).bookmarkRate),
	RuleBookmarkID: nodeRule(func(p *parser, pos int) result[BookmarkID] {
		r := p.bookmarkID(pos)
		if r.ok && !p.checkID(pos, r.val) {
			return failure[BookmarkID]()
		}
		return r
	}),
	RuleReport:            nodeRule((*parser).report),
	RuleReportLine:        nodeRule((*parser).reportLine),
	RuleSeparator:         nodeRule((*parser).separator),
	RuleTime:              nodeRule((*parser).time),
	RuleWhiteSpace:        lexemeRule(TypeWhiteSpace, (*parser).whiteSpace),
	RuleWhiteSpaces:       lexemeRule(TypeWhiteSpace, (*parser).whiteSpaces),
	RuleNL:                lexemeRule(TypeNewline, (*parser).newline),
	RuleEOF:               lexemeRule(TypeEOF, (*parser).eof),
	RuleSingleLineComment: lexemeRule(TypeComment, (*parser).comment),
	RuleInteger:           lexemeRule(TypeInteger, (*parser).integer),
	RuleNote:              lexemeRule(TypeNote, (*parser).note),
}

// Rules は呼び出し可能な規則の一覧を返します
func Rules() []Rule {
	return []Rule{
		RuleDocument, RuleDocumentTitle, RuleBlock, RuleBlockHeader,
		RuleLine, RuleEmptyLine, RuleChordsLine, RuleLyricsLine,
		RuleChord, RuleChordBass, RuleChordSuffix,
		RuleBookmark, RuleBookmarkRate, RuleBookmarkID,
		RuleReport, RuleReportLine, RuleSeparator, RuleTime,
		RuleWhiteSpace, RuleWhiteSpaces, RuleNL, RuleEOF,
		RuleSingleLineComment, RuleInteger, RuleNote,
	}
}

// ParseRule は規則 rule で入力全体を解析します
func ParseRule(rule Rule, text string) (Node, error) {
	return ParseRuleWithOptions(rule, text, Options{})
}

// ParseRuleWithOptions はオプションを指定して規則 rule で入力全体を解析します
func ParseRuleWithOptions(rule Rule, text string, opts Options) (Node, error) {
	f, ok := rules[rule]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, rule)
	}
	return run(text, opts, func(p *parser, pos int) result[Node] {
		n, end, ok := f(p, pos)
		if !ok {
			return failure[Node]()
		}
		return success(n, end)
	})
}

// ParseChord はコード1つを解析します
func ParseChord(text string) (Chord, error) {
	return run(text, Options{}, (*parser).chord)
}

// ParseBookmark は ~id+rate 形式のブックマーク1つを解析します
func ParseBookmark(text string) (Bookmark, error) {
	return run(text, Options{}, (*parser).lineBookmark)
}

// ParseTime は mm:ss[.fff] 形式の時刻を解析します
func ParseTime(text string) (TimeValue, error) {
	return run(text, Options{}, (*parser).time)
}

// ParseLine は1行を空行・コード行・歌詞行のいずれかとして解析します
func ParseLine(text string) (Line, error) {
	return run(text, Options{}, (*parser).line)
}

// ParseBlock はブロック1つを解析します
func ParseBlock(text string) (*Block, error) {
	return run(text, Options{}, (*parser).block)
}

// ParseReport はレポート部（先頭の === 行は省略可）を解析します
func ParseReport(text string) (*Report, error) {
	return run(text, Options{}, (*parser).report)
}

package lrx

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// TimeValue は mm:ss[.fff] 形式の時刻です
type TimeValue struct {
	Minutes      int  `json:"minutes"`
	Seconds      int  `json:"seconds"`
	Milliseconds int  `json:"milliseconds"`
	HasFraction  bool `json:"hasFraction"` // 小数部が書かれていたか
}

// Type はノード種別を返します
func (t TimeValue) Type() NodeType { return TypeTime }

// Duration は時刻を time.Duration に変換します
func (t TimeValue) Duration() time.Duration {
	return time.Duration(t.Minutes)*time.Minute +
		time.Duration(t.Seconds)*time.Second +
		time.Duration(t.Milliseconds)*time.Millisecond
}

// String は mm:ss または mm:ss.fff 形式で返します
func (t TimeValue) String() string {
	if t.HasFraction {
		return fmt.Sprintf("%02d:%02d.%03d", t.Minutes, t.Seconds, t.Milliseconds)
	}
	return fmt.Sprintf("%02d:%02d", t.Minutes, t.Seconds)
}

// timeGrammar は時刻リテラルの participle 文法です。
// 例: "03:08", "03:08.777"
//
//nolint:govet // participle grammar tags are not standard struct tags
type timeGrammar struct {
	Minutes  string  `parser:"@Int \":\""`
	Seconds  string  `parser:"@Int"`
	Fraction *string `parser:"( \".\" @Int )?"`
}

var timeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:.]`},
})

var timeParser = participle.MustBuild[timeGrammar](
	participle.Lexer(timeLexer),
)

// time: Integer ":" Integer ("." Integer)?
// 範囲の検証は構文ではなく意味エラーとして扱い、リテラルの位置を保ちます。
func (p *parser) time(pos int) result[TimeValue] {
	m := p.integer(pos)
	if !m.ok {
		return failure[TimeValue]()
	}
	if m.end >= len(p.text) || p.text[m.end] != ':' {
		p.fail(m.end, `":"`)
		return failure[TimeValue]()
	}
	s := p.integer(m.end + 1)
	if !s.ok {
		return failure[TimeValue]()
	}
	end := s.end
	if end < len(p.text) && p.text[end] == '.' {
		if f := p.integer(end + 1); f.ok {
			end = f.end
		}
	}

	literal := p.text[pos:end]
	tv, err := decodeTime(literal)
	if err != nil {
		p.abort(pos, literal, err)
		return failure[TimeValue]()
	}
	return success(tv, end)
}

// decodeTime は構文的に正しい時刻リテラルを分解して値を検証します。
// time は入力中のリテラルの範囲を決めるだけで、分・秒・小数部への分解は timeParser が行います。
func decodeTime(literal string) (TimeValue, error) {
	parsed, err := timeParser.ParseString("", literal)
	if err != nil {
		return TimeValue{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	minutes, err := atoi(parsed.Minutes)
	if err != nil {
		return TimeValue{}, err
	}
	seconds, err := atoi(parsed.Seconds)
	if err != nil {
		return TimeValue{}, err
	}
	if seconds >= 60 {
		return TimeValue{}, ErrSecondsRange
	}

	tv := TimeValue{Minutes: minutes, Seconds: seconds}
	if parsed.Fraction != nil {
		frac := *parsed.Fraction
		if len(frac) > 3 {
			return TimeValue{}, ErrFractionRange
		}
		// ".7" は700ミリ秒、".07" は70ミリ秒
		ms, _ := strconv.Atoi(frac + strings.Repeat("0", 3-len(frac)))
		tv.Milliseconds = ms
		tv.HasFraction = true
	}
	return tv, nil
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		return 0, ErrIntegerRange
	}
	return n, err
}

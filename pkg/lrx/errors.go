package lrx

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSyntax は入力が文法に一致しない場合のエラー
	ErrSyntax = errors.New("syntax error")

	// ErrSemantic は形は正しいが値が不正な場合のエラー
	ErrSemantic = errors.New("invalid value")

	// ErrSecondsRange は時刻の秒が60以上の場合のエラー
	ErrSecondsRange = errors.New("seconds out of range (must be less than 60)")

	// ErrFractionRange は時刻の小数部が3桁を超える場合のエラー
	ErrFractionRange = errors.New("fraction of a second has more than 3 digits")

	// ErrIntegerRange は整数がintの範囲を超える場合のエラー
	ErrIntegerRange = errors.New("integer out of range")

	// ErrRateOverflow はブックマークのレートがintの範囲を超える場合のエラー
	ErrRateOverflow = errors.New("bookmark rate overflows int")

	// ErrZeroRate はブックマークのレートが0の場合のエラー
	ErrZeroRate = errors.New("bookmark rate must be positive")

	// ErrIDRange はブックマークIDの範囲の下限が上限を超える場合のエラー
	ErrIDRange = errors.New("bookmark id range lower bound exceeds upper bound")

	// ErrUnknownRule は存在しない規則名が指定された場合のエラー
	ErrUnknownRule = errors.New("unknown rule")
)

// SyntaxError は最も先まで到達した失敗位置と、そこで期待されていた要素を保持します
type SyntaxError struct {
	Pos      Position
	Expected []string
	Found    string
}

// Error はエラーメッセージを返します
func (e *SyntaxError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d:%d: syntax error", e.Pos.Line, e.Pos.Column)
	if len(e.Expected) > 0 {
		sb.WriteString(": expected ")
		sb.WriteString(strings.Join(e.Expected, " or "))
	}
	if e.Found != "" {
		sb.WriteString(", found ")
		sb.WriteString(e.Found)
	}
	return sb.String()
}

// Unwrap はErrSyntaxを返します
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Snippet はエラー位置にキャレットを付けたソースの抜粋を返します
func (e *SyntaxError) Snippet(src string) string {
	return snippet(src, e.Pos, e.Error())
}

// SemanticError は構文上は正しいリテラルの値が不正な場合のエラー
type SemanticError struct {
	Pos     Position
	Literal string // 問題のあるリテラル
	Err     error  // ErrSecondsRange など
}

// Error はエラーメッセージを返します
func (e *SemanticError) Error() string {
	return fmt.Sprintf("%d:%d: invalid value %q: %v", e.Pos.Line, e.Pos.Column, e.Literal, e.Err)
}

// Unwrap は原因のエラーとErrSemanticを返します
func (e *SemanticError) Unwrap() []error {
	return []error{ErrSemantic, e.Err}
}

// Snippet はエラー位置にキャレットを付けたソースの抜粋を返します
func (e *SemanticError) Snippet(src string) string {
	return snippet(src, e.Pos, e.Error())
}

// snippet は前後1行の文脈と行番号付きの抜粋を組み立てます
func snippet(src string, pos Position, header string) string {
	s := newSource(src)
	last := len(s.lineStarts)
	line := max(1, min(pos.Line, last))

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\n")

	width := len(fmt.Sprint(min(line+1, last)))
	for n := max(1, line-1); n <= min(line+1, last); n++ {
		text := s.line(n)
		fmt.Fprintf(&sb, "%*d | %s\n", width, n, text)
		if n == line {
			col := max(1, pos.Column)
			fmt.Fprintf(&sb, "%s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", col-1))
		}
	}
	return sb.String()
}

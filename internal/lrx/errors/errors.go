// Package errors はlrxコマンド全体で共有するエラー型を提供します
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrFileNotFound はファイルが見つからない場合のエラー
	ErrFileNotFound = errors.New("ファイルが見つかりません")

	// ErrNoSource は入力となる.lrxファイルが指定も検出もされなかった場合のエラー
	ErrNoSource = errors.New(".lrxファイルが見つかりません。ファイルを指定してください")

	// ErrParseFailure は解析に失敗した場合のエラー
	ErrParseFailure = errors.New("データの解析に失敗しました")

	// ErrValidationFailed は検証でエラー相当の問題が見つかった場合のエラー
	ErrValidationFailed = errors.New("検証で問題が見つかりました")
)

// SourceError は入力ファイルの読み込みに関するエラー
type SourceError struct {
	Op   string // 実行していた操作
	Path string // ファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *SourceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します
func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError は新しいSourceErrorを作成します
func NewSourceError(op, path string, err error) *SourceError {
	return &SourceError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// ParseError は解析関連のエラー。
// Err には lrx.SyntaxError / lrx.SemanticError がそのまま入ります。
type ParseError struct {
	File string // ファイル名
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ParseError) Error() string {
	return fmt.Sprintf("%sの解析エラー: %v", e.File, e.Err)
}

// Unwrap は元のエラーを返します
func (e *ParseError) Unwrap() []error {
	return []error{ErrParseFailure, e.Err}
}

// NewParseError は新しいParseErrorを作成します
func NewParseError(file string, err error) *ParseError {
	return &ParseError{
		File: file,
		Err:  err,
	}
}

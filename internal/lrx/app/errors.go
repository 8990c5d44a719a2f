package app

import "errors"

var (
	// ErrSaveFile はファイルの保存に失敗した場合のエラー
	ErrSaveFile = errors.New("ファイルの保存に失敗しました")

	// ErrRenderOutput は出力内容の生成に失敗した場合のエラー
	ErrRenderOutput = errors.New("出力内容の生成に失敗しました")

	// ErrRule は単一規則の解析に失敗した場合のエラー
	ErrRule = errors.New("規則による解析に失敗しました")
)

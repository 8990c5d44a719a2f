package fileutil

import "errors"

var (
	// ErrCreateDirectory は出力先ディレクトリの作成に失敗した場合のエラー
	ErrCreateDirectory = errors.New("出力先ディレクトリの作成に失敗しました")

	// ErrWriteFile はファイルの書き込みに失敗した場合のエラー
	ErrWriteFile = errors.New("ファイルの書き込みに失敗しました")

	// ErrOpenFile はファイルを開けない場合のエラー
	ErrOpenFile = errors.New("ファイルを開けませんでした")

	// ErrDecompress はxz圧縮の展開に失敗した場合のエラー
	ErrDecompress = errors.New("xz圧縮の展開に失敗しました")

	// ErrUnknownEncoding は文字コード名を解決できない場合のエラー
	ErrUnknownEncoding = errors.New("不明な文字コードです")

	// ErrDecode は文字コードの変換に失敗した場合のエラー
	ErrDecode = errors.New("文字コードの変換に失敗しました")

	// ErrGetCurrentDirectory はカレントディレクトリを取得できない場合のエラー
	ErrGetCurrentDirectory = errors.New("カレントディレクトリを取得できませんでした")

	// ErrGetExecutablePath は実行ファイルのパスを取得できない場合のエラー
	ErrGetExecutablePath = errors.New("実行ファイルのパスを取得できませんでした")

	// ErrReadDirectory はディレクトリ内のファイル一覧を取得できない場合のエラー
	ErrReadDirectory = errors.New("ディレクトリ内のファイル一覧を取得できませんでした")

	// ErrMultipleLRXFiles は複数の.lrxファイルが見つかった場合のエラー
	ErrMultipleLRXFiles = errors.New("複数の.lrxファイルが見つかりました。使用するファイルを引数で指定してください")
)

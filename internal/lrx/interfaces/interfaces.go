// Package interfaces はlrxコマンドで使用するインターフェースを定義します
package interfaces

import (
	"io"

	"github.com/shiroemons/go-lrx/pkg/lrx"
)

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	Open(filename string) (io.ReadCloser, error)
	WriteFile(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
	Stat(name string) (FileInfo, error)
	ReadDir(dirname string) ([]DirEntry, error)
	Getwd() (string, error)
	Executable() (string, error)
}

// FileInfo はファイル情報のインターフェース
type FileInfo interface {
	Name() string
	Size() int64
	IsDir() bool
}

// DirEntry はディレクトリエントリのインターフェース
type DirEntry interface {
	Name() string
	IsDir() bool
}

// FileFinder は入力ファイルを検索するインターフェース
type FileFinder interface {
	Find() (string, error)
}

// DocumentParser はLRX文書を解析するインターフェース
type DocumentParser interface {
	Parse(text string) (*lrx.Document, error)
}

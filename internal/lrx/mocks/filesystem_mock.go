// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"

	"github.com/shiroemons/go-lrx/internal/lrx/interfaces"
)

// MockFileSystem はテスト用のファイルシステムモック
type MockFileSystem struct {
	Files      map[string][]byte
	Dirs       map[string]bool
	WorkingDir string
	ExecPath   string
	Error      error
	WriteError error // 書き込み系の操作だけを失敗させる場合に設定します
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files:      make(map[string][]byte),
		Dirs:       make(map[string]bool),
		WorkingDir: "/test/dir",
		ExecPath:   "/test/exec/program",
	}
}

// Open はファイルを読み込み用に開きます
func (fs *MockFileSystem) Open(filename string) (io.ReadCloser, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	data, exists := fs.Files[filename]
	if !exists {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// WriteFile はファイルを書き込みます
func (fs *MockFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	if fs.WriteError != nil {
		return fs.WriteError
	}
	fs.Files[filename] = data
	return nil
}

// MkdirAll はディレクトリを作成します
func (fs *MockFileSystem) MkdirAll(path string, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	fs.Dirs[path] = true
	return nil
}

// Stat はファイル情報を取得します
func (fs *MockFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	if data, exists := fs.Files[name]; exists {
		return &MockFileInfo{name: filepath.Base(name), size: int64(len(data))}, nil
	}
	if _, exists := fs.Dirs[name]; exists {
		return &MockFileInfo{name: filepath.Base(name), isDir: true}, nil
	}
	return nil, errors.New("file not found")
}

// ReadDir はディレクトリを読み込みます
func (fs *MockFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}

	var entries []interfaces.DirEntry
	for path := range fs.Files {
		if filepath.Dir(path) == dirname {
			entries = append(entries, &MockDirEntry{name: filepath.Base(path)})
		}
	}
	for path := range fs.Dirs {
		if filepath.Dir(path) == dirname && path != dirname {
			entries = append(entries, &MockDirEntry{name: filepath.Base(path), isDir: true})
		}
	}

	// ディレクトリもファイルもない場合は存在しないものとして扱う
	if len(entries) == 0 && !fs.Dirs[dirname] {
		return nil, errors.New("directory not found")
	}
	return entries, nil
}

// Getwd は現在の作業ディレクトリを返します
func (fs *MockFileSystem) Getwd() (string, error) {
	if fs.Error != nil {
		return "", fs.Error
	}
	return fs.WorkingDir, nil
}

// Executable は実行ファイルのパスを返します
func (fs *MockFileSystem) Executable() (string, error) {
	if fs.Error != nil {
		return "", fs.Error
	}
	return fs.ExecPath, nil
}

// MockFileInfo はテスト用のFileInfo実装
type MockFileInfo struct {
	name  string
	size  int64
	isDir bool
}

// Name はファイル名を返します
func (fi *MockFileInfo) Name() string { return fi.name }

// Size はファイルサイズを返します
func (fi *MockFileInfo) Size() int64 { return fi.size }

// IsDir はディレクトリかどうかを返します
func (fi *MockFileInfo) IsDir() bool { return fi.isDir }

// MockDirEntry はテスト用のDirEntry実装
type MockDirEntry struct {
	name  string
	isDir bool
}

// Name はエントリ名を返します
func (de *MockDirEntry) Name() string { return de.name }

// IsDir はディレクトリかどうかを返します
func (de *MockDirEntry) IsDir() bool { return de.isDir }

package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shiroemons/go-lrx/internal/lrx/interfaces"
)

// OSFileSystem は実際のOSファイルシステムを使用する実装
type OSFileSystem struct{}

// NewOSFileSystem は新しいOSFileSystemを作成します
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Open はファイルを読み込み用に開きます
func (fs *OSFileSystem) Open(filename string) (io.ReadCloser, error) {
	return os.Open(filename)
}

// WriteFile はファイルを書き込みます
func (fs *OSFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	return os.WriteFile(filename, data, os.FileMode(perm))
}

// MkdirAll はディレクトリを作成します
func (fs *OSFileSystem) MkdirAll(path string, perm uint32) error {
	return os.MkdirAll(path, os.FileMode(perm))
}

// Stat はファイル情報を取得します
func (fs *OSFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	return os.Stat(name)
}

// ReadDir はディレクトリを読み込みます
func (fs *OSFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}

	result := make([]interfaces.DirEntry, len(entries))
	for i, entry := range entries {
		result[i] = entry
	}
	return result, nil
}

// Getwd は現在の作業ディレクトリを取得します
func (fs *OSFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

// Executable は実行ファイルのパスを取得します
func (fs *OSFileSystem) Executable() (string, error) {
	return os.Executable()
}

// LRXFileFinder は.lrxファイルの検索を行います
type LRXFileFinder struct {
	fs interfaces.FileSystem
}

// NewLRXFileFinder は新しいLRXFileFinderを作成します
func NewLRXFileFinder(fs interfaces.FileSystem) *LRXFileFinder {
	return &LRXFileFinder{fs: fs}
}

// Find はカレントディレクトリ、次に実行ファイルと同じディレクトリから.lrxファイルを検索します。
// 見つからない場合は空文字を返します。
func (f *LRXFileFinder) Find() (string, error) {
	currentDir, err := f.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGetCurrentDirectory, err)
	}

	// カレントディレクトリで見つかった場合は他のディレクトリは検索しない
	found, err := f.findInDir(currentDir)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		execPath, err := f.fs.Executable()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrGetExecutablePath, err)
		}

		execDir := filepath.Dir(execPath)
		if execDir != currentDir {
			found, err = f.findInDir(execDir)
			if err != nil {
				return "", err
			}
		}
	}

	switch len(found) {
	case 0:
		return "", nil
	case 1:
		return found[0], nil
	default:
		return "", f.createMultipleFilesError(found)
	}
}

// findInDir は指定されたディレクトリ内の.lrx / .lrx.xzファイルを検索します
func (f *LRXFileFinder) findInDir(dir string) ([]string, error) {
	entries, err := f.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDirectory, dir, err)
	}

	var found []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if LRXFilePattern.MatchString(entry.Name()) {
			found = append(found, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(found)

	return found, nil
}

// createMultipleFilesError は複数の.lrxファイルが見つかった場合のエラーを生成します
func (f *LRXFileFinder) createMultipleFilesError(paths []string) error {
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = filepath.Base(path)
	}
	return fmt.Errorf("%w: %s", ErrMultipleLRXFiles, strings.Join(names, ", "))
}

// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/shiroemons/go-lrx/internal/lrx/interfaces"
)

// AutoEncoding は文字コードを自動判別する指定です
const AutoEncoding = "auto"

var (
	// LRXFilePattern は song.lrx や song.lrx.xz ファイルのパターン
	LRXFilePattern = regexp.MustCompile(`(?i)^[^.].*\.lrx(?:\.xz)?$`)

	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
)

// ReadSource はファイルを読み込みます。拡張子が .xz の場合は展開した内容を返します。
func ReadSource(fsys interfaces.FileSystem, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFile, err)
	}
	defer f.Close()

	var r io.Reader = f
	if IsCompressed(path) {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
		}
		r = xr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		if IsCompressed(path) {
			return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrOpenFile, err)
	}
	return data, nil
}

// IsCompressed はファイル名からxz圧縮かどうかを判定します
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xz")
}

// DecodeText はバイト列をUTF-8（NFC正規化済み）の文字列に変換します。
//
// name が "auto" または空の場合、BOMがあればそれに従い（UTF-8/UTF-16）、
// BOMがなくUTF-8として不正なバイト列はWindows-1251として読みます。
// それ以外の name はWHATWGの文字コード名（"koi8-r", "shift_jis" など）として解決します。
func DecodeText(data []byte, name string) (string, error) {
	var (
		out []byte
		err error
	)

	if name == "" || strings.EqualFold(name, AutoEncoding) {
		out, _, err = transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), data)
		if err == nil && !utf8.Valid(out) {
			out, err = charmap.Windows1251.NewDecoder().Bytes(data)
		}
	} else {
		enc, lookupErr := htmlindex.Get(name)
		if lookupErr != nil {
			return "", fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
		}
		out, err = enc.NewDecoder().Bytes(data)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return norm.NFC.String(string(out)), nil
}

// SaveToFileWithBOM はUTF-8 BOMありでファイルに保存します
func SaveToFileWithBOM(fsys interfaces.FileSystem, outputPath string, content string) error {
	data := make([]byte, 0, len(utf8BOM)+len(content))
	data = append(data, utf8BOM...)
	data = append(data, content...)
	return writeFile(fsys, outputPath, data)
}

// SaveToFile はBOMなしでファイルに保存します
func SaveToFile(fsys interfaces.FileSystem, outputPath string, content string) error {
	return writeFile(fsys, outputPath, []byte(content))
}

func writeFile(fsys interfaces.FileSystem, outputPath string, data []byte) error {
	// 出力先ディレクトリを作成（存在しない場合）
	if err := fsys.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}
	if err := fsys.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFile, err)
	}
	return nil
}

// BaseName は入力ファイル名から .lrx / .lrx.xz を除いた名前を返します
func BaseName(inputPath string) string {
	name := filepath.Base(inputPath)
	if IsCompressed(name) {
		name = name[:len(name)-len(".xz")]
	}
	if strings.EqualFold(filepath.Ext(name), ".lrx") {
		name = name[:len(name)-len(".lrx")]
	}
	return name
}

// GenerateOutputFilename は入力ファイル名から出力ファイル名を生成します。
// suffix は ".json" や ".check.txt" のように拡張子を含めて指定します。
func GenerateOutputFilename(inputPath string, suffix string) string {
	return BaseName(inputPath) + suffix
}

package lrx

import "unicode/utf8"

// source は入力テキストと行頭オフセットの索引を保持します
type source struct {
	text       string
	lineStarts []int
}

func newSource(text string) *source {
	s := &source{text: text, lineStarts: []int{0}}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			s.lineStarts = append(s.lineStarts, i+1)
		case '\n':
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

// position はバイトオフセットを行・列に変換します
func (s *source) position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.text) {
		offset = len(s.text)
	}

	// offset以下で最大の行頭を二分探索
	lo, hi := 0, len(s.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	start := s.lineStarts[lo]
	return Position{
		Offset: offset,
		Line:   lo + 1,
		Column: utf8.RuneCountInString(s.text[start:offset]) + 1,
	}
}

// line は指定行（1始まり）の内容を改行なしで返します
func (s *source) line(n int) string {
	if n < 1 || n > len(s.lineStarts) {
		return ""
	}
	start := s.lineStarts[n-1]
	end := start
	for end < len(s.text) && s.text[end] != '\r' && s.text[end] != '\n' {
		end++
	}
	return s.text[start:end]
}

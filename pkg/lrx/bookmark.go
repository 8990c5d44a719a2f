package lrx

import (
	"errors"
	"strconv"
	"strings"
)

// BookmarkID は単一の番号または番号の範囲（a..b）です。
// 先頭の0を保つため、番号は10進の文字列のまま保持します。
type BookmarkID struct {
	Lower string
	Upper string // 範囲でない場合は空
}

// Type はノード種別を返します
func (id BookmarkID) Type() NodeType { return TypeBookmarkID }

// IsRange は範囲指定かどうかを返します
func (id BookmarkID) IsRange() bool {
	return id.Upper != ""
}

// String は "1" や "1..4" の形式で返します
func (id BookmarkID) String() string {
	if id.IsRange() {
		return id.Lower + ".." + id.Upper
	}
	return id.Lower
}

// Last は範囲の上限（範囲でなければ番号そのもの）を返します
func (id BookmarkID) Last() string {
	if id.IsRange() {
		return id.Upper
	}
	return id.Lower
}

// MarshalText はIDを文字列形式で返します
func (id BookmarkID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// Contains は番号 n が範囲に含まれるかを返します
func (id BookmarkID) Contains(n string) bool {
	return CompareDecimal(id.Lower, n) <= 0 && CompareDecimal(n, id.Last()) <= 0
}

// Overlaps は2つのIDの範囲が重なるかを返します
func (id BookmarkID) Overlaps(other BookmarkID) bool {
	return CompareDecimal(id.Lower, other.Last()) <= 0 && CompareDecimal(other.Lower, id.Last()) <= 0
}

// CompareDecimal は任意の桁数の10進整数文字列を比較し、-1, 0, 1 を返します。
// 先頭の0は無視します。
func CompareDecimal(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// BookmarkRate はブックマークのレート（+n）です
type BookmarkRate struct {
	Rate int `json:"rate"`
}

// Type はノード種別を返します
func (r BookmarkRate) Type() NodeType { return TypeLineBookmarkRate }

// Bookmark は歌詞行に埋め込まれた同期用のアンカー（~id+rate）です
type Bookmark struct {
	ID   BookmarkID `json:"id"`
	Rate int        `json:"rate"`
	Text string     `json:"text"` // 一致した部分文字列そのもの
	Pos  Position   `json:"pos"`
}

// Type はノード種別を返します
func (b Bookmark) Type() NodeType { return TypeLineBookmark }

// bookmarkID: Integer (".." Integer)?
func (p *parser) bookmarkID(pos int) result[BookmarkID] {
	lo := p.integer(pos)
	if !lo.ok {
		return failure[BookmarkID]()
	}
	id := BookmarkID{Lower: lo.val}
	end := lo.end
	if hasPrefixAt(p.text, end, "..") {
		if hi := p.integer(end + 2); hi.ok {
			id.Upper = hi.val
			end = hi.end
		}
	}
	return success(id, end)
}

// checkID は範囲の下限が上限以下であることを確かめます
func (p *parser) checkID(pos int, id BookmarkID) bool {
	if id.IsRange() && CompareDecimal(id.Lower, id.Upper) > 0 {
		p.abort(pos, id.String(), ErrIDRange)
		return false
	}
	return true
}

// bookmarkRate: "+" Integer
func (p *parser) bookmarkRate(pos int) result[BookmarkRate] {
	if pos >= len(p.text) || p.text[pos] != '+' {
		p.fail(pos, `"+"`)
		return failure[BookmarkRate]()
	}
	n := p.integer(pos + 1)
	if !n.ok {
		return failure[BookmarkRate]()
	}
	rate, err := strconv.Atoi(n.val)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			err = ErrRateOverflow
		}
		p.abort(pos+1, n.val, err)
		return failure[BookmarkRate]()
	}
	if rate == 0 {
		p.abort(pos+1, n.val, ErrZeroRate)
		return failure[BookmarkRate]()
	}
	return success(BookmarkRate{Rate: rate}, n.end)
}

// lineBookmark: "~" BookmarkId LineBookmarkRate
func (p *parser) lineBookmark(pos int) result[Bookmark] {
	if pos >= len(p.text) || p.text[pos] != '~' {
		p.fail(pos, `"~"`)
		return failure[Bookmark]()
	}
	id := p.bookmarkID(pos + 1)
	if !id.ok {
		return failure[Bookmark]()
	}
	rate := p.bookmarkRate(id.end)
	if !rate.ok || !p.checkID(pos+1, id.val) {
		return failure[Bookmark]()
	}
	return success(Bookmark{
		ID:   id.val,
		Rate: rate.val.Rate,
		Text: p.text[pos:rate.end],
		Pos:  p.src.position(pos),
	}, rate.end)
}

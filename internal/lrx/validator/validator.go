// Package validator はブックマークとレポート部の整合性を検証します
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shiroemons/go-lrx/internal/lrx/models"
	"github.com/shiroemons/go-lrx/pkg/lrx"
)

// 検証結果のコード
const (
	CodeDuplicateBookmark = "duplicate-bookmark"
	CodeOverlappingRange  = "overlapping-range"
	CodeBookmarkOrder     = "bookmark-order"
	CodeUnknownReportID   = "unknown-report-id"
	CodeUnmarkedLyrics    = "unmarked-lyrics"
)

// Validator は解析済みの文書を検証します
type Validator struct{}

// New は新しいValidatorを作成します
func New() *Validator {
	return &Validator{}
}

// Validate は文書を検証し、見つかった問題を出現位置の順に返します
func (v *Validator) Validate(doc *lrx.Document) []models.Issue {
	bookmarks := doc.Bookmarks()

	issues := []models.Issue{}
	issues = append(issues, v.checkBookmarks(bookmarks)...)
	issues = append(issues, v.checkReport(doc.Report, bookmarks)...)
	if len(bookmarks) > 0 {
		issues = append(issues, v.checkUnmarkedLyrics(doc)...)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Pos.Offset < issues[j].Pos.Offset
	})
	return issues
}

// checkBookmarks はIDの重複、範囲の重なり、昇順でない並びを検出します
func (v *Validator) checkBookmarks(bookmarks []lrx.Bookmark) []models.Issue {
	var issues []models.Issue
	seen := make(map[string]lrx.Bookmark)

	for i, b := range bookmarks {
		key := b.ID.String()
		if first, ok := seen[key]; ok {
			issues = append(issues, models.Issue{
				Severity: models.SeverityError,
				Code:     CodeDuplicateBookmark,
				ID:       key,
				Pos:      b.Pos,
				Message:  fmt.Sprintf("ブックマーク ~%s は %d:%d で既に使われています", key, first.Pos.Line, first.Pos.Column),
			})
			continue
		}
		seen[key] = b

		overlapped := false
		for _, prev := range bookmarks[:i] {
			if prev.ID.String() != key && prev.ID.Overlaps(b.ID) {
				issues = append(issues, models.Issue{
					Severity: models.SeverityError,
					Code:     CodeOverlappingRange,
					ID:       key,
					Pos:      b.Pos,
					Message:  fmt.Sprintf("ブックマーク ~%s の範囲が ~%s (%d:%d) と重なっています", key, prev.ID, prev.Pos.Line, prev.Pos.Column),
				})
				overlapped = true
				break
			}
		}

		if !overlapped && i > 0 {
			prev := bookmarks[i-1]
			if lrx.CompareDecimal(b.ID.Lower, prev.ID.Last()) <= 0 {
				issues = append(issues, models.Issue{
					Severity: models.SeverityWarning,
					Code:     CodeBookmarkOrder,
					ID:       key,
					Pos:      b.Pos,
					Message:  fmt.Sprintf("ブックマーク ~%s が直前の ~%s より前の番号です", key, prev.ID),
				})
			}
		}
	}

	return issues
}

// checkReport はレポート行のIDが文書中のブックマークに含まれているかを確認します。
// 範囲のIDは下限と上限がそれぞれいずれかのブックマークに含まれていれば対応ありとみなします。
func (v *Validator) checkReport(report *lrx.Report, bookmarks []lrx.Bookmark) []models.Issue {
	if report == nil {
		return nil
	}

	var issues []models.Issue
	for _, rl := range report.Lines {
		if covered(bookmarks, rl.ID.Lower) && covered(bookmarks, rl.ID.Last()) {
			continue
		}
		issues = append(issues, models.Issue{
			Severity: models.SeverityWarning,
			Code:     CodeUnknownReportID,
			ID:       rl.ID.String(),
			Pos:      rl.Pos,
			Message:  fmt.Sprintf("レポートの ~%s に対応するブックマークがありません", rl.ID),
		})
	}
	return issues
}

func covered(bookmarks []lrx.Bookmark, n string) bool {
	for _, b := range bookmarks {
		if b.ID.Contains(n) {
			return true
		}
	}
	return false
}

// checkUnmarkedLyrics はブックマークのない歌詞行を報告します
func (v *Validator) checkUnmarkedLyrics(doc *lrx.Document) []models.Issue {
	var issues []models.Issue
	for _, b := range doc.Blocks {
		for _, l := range b.Lines {
			ly, ok := l.(*lrx.LyricsLine)
			if !ok || len(ly.Bookmarks) > 0 || strings.TrimSpace(ly.Text) == "" {
				continue
			}
			issues = append(issues, models.Issue{
				Severity: models.SeverityInfo,
				Code:     CodeUnmarkedLyrics,
				Pos:      ly.Pos,
				Message:  "ブックマークのない歌詞行です",
			})
		}
	}
	return issues
}

package validator

import (
	"testing"

	"github.com/shiroemons/go-lrx/internal/lrx/models"
	"github.com/shiroemons/go-lrx/pkg/lrx"
)

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCodes []string
		wantIDs   []string
	}{
		{
			name:      "問題なし",
			input:     "[Verse]\nla~1+1\nna~2..3+2\n===\n\n~1 ok\n~2..3 ok\n~3 inside range\n",
			wantCodes: nil,
		},
		{
			name:      "ブックマークがなければ歌詞行は報告しない",
			input:     "[Verse]\nAm\nla la\n",
			wantCodes: nil,
		},
		{
			name:      "IDの重複",
			input:     "[Verse]\nla~1+1\nna~1+1\n",
			wantCodes: []string{CodeDuplicateBookmark},
			wantIDs:   []string{"1"},
		},
		{
			name:      "範囲の重なり",
			input:     "[Verse]\nla~1..3+1\nna~3..4+1\n",
			wantCodes: []string{CodeOverlappingRange},
			wantIDs:   []string{"3..4"},
		},
		{
			name:      "昇順でない",
			input:     "[Verse]\nla~5+1 na~2+1\n",
			wantCodes: []string{CodeBookmarkOrder},
			wantIDs:   []string{"2"},
		},
		{
			name:      "先頭の0は無視して比較",
			input:     "[Verse]\nla~09+1 na~10+1\n",
			wantCodes: nil,
		},
		{
			name:      "レポートのIDに対応するブックマークがない",
			input:     "[Verse]\nla~1+1\n===\n\n~1 ok\n~7 missing\n~1..2 half\n",
			wantCodes: []string{CodeUnknownReportID, CodeUnknownReportID},
			wantIDs:   []string{"7", "1..2"},
		},
		{
			name:      "ブックマークのない歌詞行",
			input:     "[Verse]\nla~1+1\nno mark\n   \n\n",
			wantCodes: []string{CodeUnmarkedLyrics},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := lrx.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			issues := New().Validate(doc)
			if len(issues) != len(tt.wantCodes) {
				t.Fatalf("Expected %d issues, got %d: %+v", len(tt.wantCodes), len(issues), issues)
			}
			for i, issue := range issues {
				if issue.Code != tt.wantCodes[i] {
					t.Errorf("issues[%d].Code = %s, want %s", i, issue.Code, tt.wantCodes[i])
				}
				if tt.wantIDs != nil && issue.ID != tt.wantIDs[i] {
					t.Errorf("issues[%d].ID = %s, want %s", i, issue.ID, tt.wantIDs[i])
				}
				if issue.Message == "" {
					t.Errorf("issues[%d] has no message", i)
				}
			}
		})
	}
}

func TestValidator_SeverityAndPosition(t *testing.T) {
	doc, err := lrx.Parse("[Verse]\nla~2+1\nna~1+1\nsilent\n===\n\n~9 where\n")
	if err != nil {
		t.Fatal(err)
	}

	issues := New().Validate(doc)
	want := []struct {
		severity models.Severity
		line     int
	}{
		{models.SeverityWarning, 3}, // ~1 が ~2 の後
		{models.SeverityInfo, 4},
		{models.SeverityWarning, 7},
	}

	if len(issues) != len(want) {
		t.Fatalf("Expected %d issues, got %d: %+v", len(want), len(issues), issues)
	}
	for i, w := range want {
		if issues[i].Severity != w.severity || issues[i].Pos.Line != w.line {
			t.Errorf("issues[%d] = %s at line %d, want %s at line %d",
				i, issues[i].Severity, issues[i].Pos.Line, w.severity, w.line)
		}
	}
}

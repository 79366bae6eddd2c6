package chart

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"aoc-star-charts/internal/i18n"
	"aoc-star-charts/internal/ledger"
	"aoc-star-charts/internal/model"
)

func at(day, hour, min, sec int) model.Timestamp {
	return model.TimestampOf(time.Date(2022, 12, day, hour, min, sec, 0, time.UTC).Unix())
}

func stars(p1, p2 model.Timestamp) model.DayLevel {
	return model.DayLevel{
		"1": {GetStarTS: p1},
		"2": {GetStarTS: p2},
	}
}

func name(s string) *string { return &s }

// testLedger:
//
//	alice (50): day 1 p1 07:00:00, p2 07:10:00; day 2 p1 06:30:00 (before start)
//	bob   (80): day 1 p1 07:01:05
//	carol (10): day 3 with nothing valid
func testLedger() *ledger.Ledger {
	board := &model.Leaderboard{
		Event: "2022",
		Members: map[string]model.Member{
			"1": {ID: "1", Name: name("alice"), LocalScore: 50, CompletionDayLevel: map[string]model.DayLevel{
				"1": stars(at(1, 7, 0, 0), at(1, 7, 10, 0)),
				"2": stars(at(2, 6, 30, 0), model.Timestamp{}),
			}},
			"2": {ID: "2", Name: name("bob"), LocalScore: 80, CompletionDayLevel: map[string]model.DayLevel{
				"1": stars(at(1, 7, 1, 5), model.Timestamp{}),
			}},
			"3": {ID: "3", Name: name("carol"), LocalScore: 10, CompletionDayLevel: map[string]model.DayLevel{
				"3": stars(model.Timestamp{}, model.Timestamp{}),
			}},
		},
	}
	return ledger.Build(board)
}

func utcOptions() Options {
	o := DefaultOptions()
	o.Location = time.UTC
	return o
}

func TestBuildRows_ElapsedSeconds(t *testing.T) {
	rows, err := BuildRows(testLedger(), model.Part1, utcOptions())
	if err != nil {
		t.Fatalf("BuildRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: want 3, got %d", len(rows))
	}
	if rows[0].Day != 1 || rows[1].Day != 2 || rows[2].Day != 3 {
		t.Errorf("days: want 1,2,3, got %d,%d,%d", rows[0].Day, rows[1].Day, rows[2].Day)
	}
	if rows[0].Label != "day 1" {
		t.Errorf("label: want %q, got %q", "day 1", rows[0].Label)
	}

	// Cells follow score order: bob, alice, carol.
	day1 := rows[0].Cells
	if day1[0].Seconds == nil || *day1[0].Seconds != 65 {
		t.Errorf("bob day 1: want 65, got %v", day1[0].Seconds)
	}
	if day1[1].Seconds == nil || *day1[1].Seconds != 0 {
		t.Errorf("alice day 1: want 0, got %v", day1[1].Seconds)
	}
	if day1[2].Seconds != nil {
		t.Errorf("carol day 1: want absent, got %d", *day1[2].Seconds)
	}

	// Before the 07:00 anchor the elapsed time clamps at zero.
	day2 := rows[1].Cells
	if day2[1].Seconds == nil || *day2[1].Seconds != 0 {
		t.Errorf("alice day 2: want clamped 0, got %v", day2[1].Seconds)
	}
}

func TestBuildRows_DayWithoutTimes(t *testing.T) {
	rows, err := BuildRows(testLedger(), model.Part1, utcOptions())
	if err != nil {
		t.Fatalf("BuildRows: %v", err)
	}
	day3 := rows[2]
	if day3.Start != nil {
		t.Errorf("day 3 start: want nil, got %d", *day3.Start)
	}
	for i, c := range day3.Cells {
		if c.Seconds != nil {
			t.Errorf("day 3 cell %d: want absent, got %d", i, *c.Seconds)
		}
	}
}

func TestBuildRows_NeverNegative(t *testing.T) {
	for _, part := range model.Parts {
		rows, err := BuildRows(testLedger(), part, utcOptions())
		if err != nil {
			t.Fatalf("BuildRows part %d: %v", part, err)
		}
		for _, r := range rows {
			for _, c := range r.Cells {
				if c.Seconds != nil && *c.Seconds < 0 {
					t.Errorf("part %d day %d: negative elapsed %d", part, r.Day, *c.Seconds)
				}
			}
		}
	}
}

func TestBuildRows_TooltipHighlightsOwner(t *testing.T) {
	rows, err := BuildRows(testLedger(), model.Part1, utcOptions())
	if err != nil {
		t.Fatalf("BuildRows: %v", err)
	}
	bobTip := rows[0].Cells[0].Tooltip
	if !strings.Contains(bobTip, `<td class="glow">bob</td>`) {
		t.Errorf("bob's tooltip should emphasize bob: %s", bobTip)
	}
	if strings.Contains(bobTip, `<td class="glow">alice</td>`) {
		t.Errorf("bob's tooltip should not emphasize alice: %s", bobTip)
	}
	// alice finished at the start offset: plain "00".
	if !strings.Contains(bobTip, `<td class="right">00</td>`) {
		t.Errorf("alice's zero time should render as 00: %s", bobTip)
	}
	if strings.Index(bobTip, "alice") > strings.Index(bobTip, "bob") {
		t.Errorf("alice finished first and should be listed first: %s", bobTip)
	}
}

func TestBuildRows_InvalidPart(t *testing.T) {
	if _, err := BuildRows(testLedger(), model.Part(3), utcOptions()); !errors.Is(err, ErrInvalidPart) {
		t.Errorf("want ErrInvalidPart, got %v", err)
	}
}

func TestBuildPanel_ColumnsAndLocale(t *testing.T) {
	o := utcOptions()
	o.Translator = i18n.NewTranslator("en")
	o.Locale = "fr"

	p, err := BuildPanel(testLedger(), model.Part2, o)
	if err != nil {
		t.Fatalf("BuildPanel: %v", err)
	}
	if p.Title != "Partie 2" {
		t.Errorf("title: want %q, got %q", "Partie 2", p.Title)
	}
	if p.Rows[0].Label != "jour 1" {
		t.Errorf("row label: want %q, got %q", "jour 1", p.Rows[0].Label)
	}
	want := []string{"80 bob", "50 alice", "10 carol"}
	for i, w := range want {
		if p.Columns[i].Label != w {
			t.Errorf("column %d: want %q, got %q", i, w, p.Columns[i].Label)
		}
		if p.Columns[i].Color != Palette[i] {
			t.Errorf("column %d color: want %s, got %s", i, Palette[i], p.Columns[i].Color)
		}
	}
	if secs := p.Rows[0].Cells[1].Seconds; secs == nil || *secs != 600 {
		t.Errorf("alice day 1 part 2: want 600, got %v", secs)
	}
}

func TestWritePanel(t *testing.T) {
	p, err := BuildPanel(testLedger(), model.Part1, utcOptions())
	if err != nil {
		t.Fatalf("BuildPanel: %v", err)
	}
	path := filepath.Join(t.TempDir(), "rows", "part1.json")
	if err := WritePanel(path, p); err != nil {
		t.Fatalf("WritePanel: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var back Panel
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(back.Rows) != 3 || back.Rows[0].Cells[2].Seconds != nil {
		t.Errorf("unexpected round trip: %+v", back.Rows)
	}
}

package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aoc-star-charts/internal/model"
	"aoc-star-charts/internal/timerange"
)

func decodeBoard(t *testing.T, raw string) *model.Leaderboard {
	t.Helper()
	var board model.Leaderboard
	if err := json.Unmarshal([]byte(raw), &board); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	return &board
}

const sampleBoard = `{
  "event": "2022",
  "owner_id": 1,
  "members": {
    "1": {
      "id": 1, "name": "alice", "local_score": 50, "stars": 3,
      "completion_day_level": {
        "1": {"1": {"get_star_ts": 1669878000}, "2": {"get_star_ts": 1669878600}},
        "2": {"1": {"get_star_ts": 1669964500}}
      }
    },
    "2": {
      "id": 2, "name": "bob", "local_score": 80, "stars": 4,
      "completion_day_level": {
        "1": {"1": {"get_star_ts": 1669877000}, "2": {"get_star_ts": "oops"}},
        "2": {"1": {"get_star_ts": null}, "2": {"get_star_ts": 1669965000}}
      }
    }
  }
}`

func TestBuild_SortsByDescendingScore(t *testing.T) {
	l := Build(decodeBoard(t, sampleBoard))

	if len(l.Participants) != 2 {
		t.Fatalf("participants: want 2, got %d", len(l.Participants))
	}
	if l.Participants[0].LocalScore != 80 || l.Participants[1].LocalScore != 50 {
		t.Errorf("order: want [80 50], got [%d %d]", l.Participants[0].LocalScore, l.Participants[1].LocalScore)
	}
	if l.Event != "2022" {
		t.Errorf("event: want 2022, got %q", l.Event)
	}
}

func TestBuild_SkipsInvalidTimestamps(t *testing.T) {
	l := Build(decodeBoard(t, sampleBoard))
	bob := l.Participants[0]

	if _, ok := bob.Time(model.Part2, 1); ok {
		t.Errorf("non-numeric part 2 on day 1 should be absent")
	}
	if _, ok := bob.Time(model.Part1, 2); ok {
		t.Errorf("null part 1 on day 2 should be absent")
	}
	if ts, ok := bob.Time(model.Part2, 2); !ok || ts != 1669965000 {
		t.Errorf("day 2 part 2: want 1669965000, got %d (ok=%v)", ts, ok)
	}

	r, ok := l.Ranges.Range(2)
	if !ok {
		t.Fatalf("day 2 range missing")
	}
	// Only alice completed part 1 of day 2; bob's null must not count.
	if r.Star1.Min != 1669964500 || r.Star1.Max != 1669964500 {
		t.Errorf("day 2 star1: want 1669964500..1669964500, got %d..%d", r.Star1.Min, r.Star1.Max)
	}

	r1, _ := l.Ranges.Range(1)
	if r1.Star2.Min != 1669878600 || r1.Star2.Max != 1669878600 {
		t.Errorf("day 1 star2: want only alice's time, got %d..%d", r1.Star2.Min, r1.Star2.Max)
	}
}

func TestBuild_RangesAreOrdered(t *testing.T) {
	l := Build(decodeBoard(t, sampleBoard))
	for _, r := range l.Ranges.Ranges() {
		if r.Star1.Seen && r.Star1.Min > r.Star1.Max {
			t.Errorf("day %d star1 min %d > max %d", r.Day, r.Star1.Min, r.Star1.Max)
		}
		if r.Star2.Seen && r.Star2.Min > r.Star2.Max {
			t.Errorf("day %d star2 min %d > max %d", r.Day, r.Star2.Min, r.Star2.Max)
		}
	}
}

func TestBuild_OutOfRangeTimestampLeavesAnchorAlone(t *testing.T) {
	board := decodeBoard(t, `{"members": {
	  "1": {"id": 1, "name": "ann", "local_score": 2,
	        "completion_day_level": {"1": {"1": {"get_star_ts": 1e300}}}},
	  "2": {"id": 2, "name": "bob", "local_score": 1,
	        "completion_day_level": {"1": {"1": {"get_star_ts": 1669878000}}}}
	}}`)
	l := Build(board)

	r1, ok := l.Ranges.Range(1)
	if !ok {
		t.Fatalf("day 1 should be tracked")
	}
	if r1.Star1.Min != 1669878000 || r1.Star1.Max != 1669878000 {
		t.Errorf("day 1 star1: want only bob's time, got %d..%d", r1.Star1.Min, r1.Star1.Max)
	}
	if _, ok := l.Participants[0].Time(model.Part1, 1); ok {
		t.Errorf("ann's out-of-range time should be absent")
	}
}

func TestBuild_TiesKeepMemberKeyOrder(t *testing.T) {
	board := decodeBoard(t, `{"members": {
		"30": {"id": 30, "name": "c", "local_score": 10},
		"4":  {"id": 4,  "name": "a", "local_score": 10},
		"12": {"id": 12, "name": "b", "local_score": 20}
	}}`)
	l := Build(board)

	got := make([]string, 0, len(l.Participants))
	for _, p := range l.Participants {
		got = append(got, p.Name)
	}
	if strings.Join(got, ",") != "b,a,c" {
		t.Errorf("order: want b,a,c, got %s", strings.Join(got, ","))
	}
}

func TestNormalize_IgnoresBadDayKeysAndAnonymous(t *testing.T) {
	board := decodeBoard(t, `{"members": {"7": {
		"id": 7, "name": null, "local_score": 1,
		"completion_day_level": {
			"x": {"1": {"get_star_ts": 100}},
			"3": {"1": 5, "2": {"get_star_ts": 300}}
		}
	}}}`)
	tr := timerange.NewTracker()
	p := Normalize("7", board.Members["7"], tr)

	if p.Name != "(anonymous user #7)" {
		t.Errorf("name: want anonymous label, got %q", p.Name)
	}
	if days := tr.Days(); len(days) != 1 || days[0] != 3 {
		t.Errorf("days: want [3], got %v", days)
	}
	if _, ok := p.Time(model.Part1, 3); ok {
		t.Errorf("malformed part 1 record should be absent")
	}
	if ts, ok := p.Time(model.Part2, 3); !ok || ts != 300 {
		t.Errorf("part 2: want 300, got %d (ok=%v)", ts, ok)
	}
}

func TestWriteLedger(t *testing.T) {
	l := Build(decodeBoard(t, sampleBoard))
	path := filepath.Join(t.TempDir(), "derived", "ledger.json")

	if err := WriteLedger(path, l); err != nil {
		t.Fatalf("WriteLedger: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var out struct {
		Participants []model.Participant      `json:"participants"`
		Days         []timerange.DayTimeRange `json:"days"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Participants) != 2 || len(out.Days) != 2 {
		t.Errorf("want 2 participants and 2 days, got %d and %d", len(out.Participants), len(out.Days))
	}
	if out.Participants[0].Name != "bob" {
		t.Errorf("first participant: want bob, got %s", out.Participants[0].Name)
	}
}

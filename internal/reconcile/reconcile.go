package reconcile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"aoc-star-charts/internal/ledger"
	"aoc-star-charts/internal/model"
)

// MemberMismatch lists what did not add up for one member.
type MemberMismatch struct {
	ID                model.MemberID `json:"id"`
	Name              string         `json:"name"`
	ReportedStars     int            `json:"reported_stars"`
	CountedStars      int            `json:"counted_stars"`
	Part2BeforePart1  []int          `json:"part2_before_part1,omitempty"`
	Part2WithoutPart1 []int          `json:"part2_without_part1,omitempty"`
}

type Report struct {
	Event          string           `json:"event"`
	GeneratedAtUTC string           `json:"generated_at_utc"`
	Entries        []MemberMismatch `json:"entries"`
}

// BuildReport compares each member's reported star count with the
// timestamps that survived normalization, and flags days whose part 2 is not
// preceded by part 1.
func BuildReport(board *model.Leaderboard, l *ledger.Ledger) *Report {
	reported := make(map[model.MemberID]int, len(board.Members))
	for key, m := range board.Members {
		id := m.ID
		if id == "" {
			id = model.MemberID(key)
		}
		reported[id] = m.Stars
	}

	entries := make([]MemberMismatch, 0)
	for _, p := range l.Participants {
		mm := MemberMismatch{
			ID:            p.ID,
			Name:          p.Name,
			ReportedStars: reported[p.ID],
			CountedStars:  p.StarCount(),
		}

		days := make([]int, 0, len(p.Star2Times))
		for day := range p.Star2Times {
			days = append(days, day)
		}
		sort.Ints(days)

		for _, day := range days {
			ts2 := p.Star2Times[day]
			ts1, ok := p.Time(model.Part1, day)
			if !ok {
				mm.Part2WithoutPart1 = append(mm.Part2WithoutPart1, day)
				continue
			}
			if ts2 < ts1 {
				mm.Part2BeforePart1 = append(mm.Part2BeforePart1, day)
			}
		}

		if mm.ReportedStars != mm.CountedStars || len(mm.Part2BeforePart1) > 0 || len(mm.Part2WithoutPart1) > 0 {
			entries = append(entries, mm)
		}
	}

	return &Report{
		Event:          board.Event,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Entries:        entries,
	}
}

func WriteReport(path string, report *Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}

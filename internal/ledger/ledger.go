package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"aoc-star-charts/internal/model"
	"aoc-star-charts/internal/timerange"
)

// Ledger is the normalized leaderboard: participants in score order plus the
// per-day time ranges collected while normalizing them.
type Ledger struct {
	Event          string
	GeneratedAtUTC string
	Participants   []model.Participant
	Ranges         *timerange.Tracker
}

type ledgerFile struct {
	Event          string                   `json:"event"`
	GeneratedAtUTC string                   `json:"generated_at_utc"`
	Participants   []model.Participant      `json:"participants"`
	Days           []timerange.DayTimeRange `json:"days"`
}

func Build(board *model.Leaderboard) *Ledger {
	tracker := timerange.NewTracker()
	keys := board.MemberKeys()
	participants := make([]model.Participant, 0, len(keys))

	for _, key := range keys {
		participants = append(participants, Normalize(key, board.Members[key], tracker))
	}
	SortParticipants(participants)

	return &Ledger{
		Event:          board.Event,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Participants:   participants,
		Ranges:         tracker,
	}
}

// Normalize flattens one member's completion levels into per-part day maps
// and feeds every valid timestamp to tracker. Invalid entries are skipped.
func Normalize(key string, m model.Member, tracker *timerange.Tracker) model.Participant {
	id := m.ID
	if id == "" {
		id = model.MemberID(key)
	}
	p := model.NewParticipant(id, m.DisplayName(), m.LocalScore)
	p.Stars = m.Stars

	for dayKey, level := range m.CompletionDayLevel {
		day, err := strconv.Atoi(dayKey)
		if err != nil || day <= 0 {
			continue
		}
		tracker.Touch(day)

		for _, part := range model.Parts {
			ts := level.Star(part)
			if !ts.Valid {
				continue
			}
			tracker.Observe(day, part, ts.Value)
			p.SetTime(part, day, ts.Value)
		}
	}
	return p
}

// SortParticipants orders by descending local score, keeping the existing
// order for ties.
func SortParticipants(ps []model.Participant) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].LocalScore > ps[j].LocalScore
	})
}

func WriteLedger(path string, l *Ledger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	out := ledgerFile{
		Event:          l.Event,
		GeneratedAtUTC: l.GeneratedAtUTC,
		Participants:   l.Participants,
		Days:           l.Ranges.Ranges(),
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644)
}

package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Part identifies one of the two daily sub-challenges.
type Part int

const (
	Part1 Part = 1
	Part2 Part = 2
)

var Parts = []Part{Part1, Part2}

// Key is the part's key inside completion_day_level.
func (p Part) Key() string {
	return strconv.Itoa(int(p))
}

func (p Part) Valid() bool {
	return p == Part1 || p == Part2
}

// Leaderboard is the private leaderboard export.
type Leaderboard struct {
	Event   string            `json:"event"`
	OwnerID MemberID          `json:"owner_id"`
	Members map[string]Member `json:"members"`
}

type Member struct {
	ID                 MemberID            `json:"id"`
	Name               *string             `json:"name"`
	LocalScore         int                 `json:"local_score"`
	GlobalScore        int                 `json:"global_score"`
	Stars              int                 `json:"stars"`
	LastStarTS         Timestamp           `json:"last_star_ts"`
	CompletionDayLevel map[string]DayLevel `json:"completion_day_level"`
}

// DayLevel maps a part key ("1" or "2") to its completion record.
type DayLevel map[string]StarRecord

type StarRecord struct {
	GetStarTS Timestamp `json:"get_star_ts"`
	StarIndex int64     `json:"star_index"`
}

// MemberID accepts both numeric and string ids.
type MemberID string

func (id *MemberID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = MemberID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		*id = ""
		return nil
	}
	*id = MemberID(n.String())
	return nil
}

func (id MemberID) String() string {
	return string(id)
}

// DisplayName falls back to the site's anonymous label when no name is set.
func (m Member) DisplayName() string {
	if m.Name != nil {
		if name := strings.TrimSpace(*m.Name); name != "" {
			return name
		}
	}
	return fmt.Sprintf("(anonymous user #%s)", m.ID)
}

// UnmarshalJSON drops entries that are not objects.
func (d *DayLevel) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*d = nil
		return nil
	}
	out := make(DayLevel, len(raw))
	for k, v := range raw {
		var rec StarRecord
		if err := json.Unmarshal(v, &rec); err != nil {
			continue
		}
		out[k] = rec
	}
	*d = out
	return nil
}

// Star returns the completion timestamp for a part, if any.
func (d DayLevel) Star(p Part) Timestamp {
	rec, ok := d[p.Key()]
	if !ok {
		return Timestamp{}
	}
	return rec.GetStarTS
}

// MemberKeys returns the member keys in a stable order: integer keys
// ascending, then the remaining keys lexically.
func (l *Leaderboard) MemberKeys() []string {
	keys := make([]string, 0, len(l.Members))
	for k := range l.Members {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, errI := strconv.ParseUint(keys[i], 10, 64)
		nj, errJ := strconv.ParseUint(keys[j], 10, 64)
		switch {
		case errI == nil && errJ == nil:
			return ni < nj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

package model

// Participant is a leaderboard member reduced to what the charts need.
type Participant struct {
	ID         MemberID      `json:"id"`
	Name       string        `json:"name"`
	LocalScore int           `json:"local_score"`
	Stars      int           `json:"stars"`
	Star1Times map[int]int64 `json:"star1_times"`
	Star2Times map[int]int64 `json:"star2_times"`
}

func NewParticipant(id MemberID, name string, score int) Participant {
	return Participant{
		ID:         id,
		Name:       name,
		LocalScore: score,
		Star1Times: make(map[int]int64),
		Star2Times: make(map[int]int64),
	}
}

func (p Participant) times(part Part) map[int]int64 {
	switch part {
	case Part1:
		return p.Star1Times
	case Part2:
		return p.Star2Times
	default:
		return nil
	}
}

// Time returns the completion timestamp of part on day.
func (p Participant) Time(part Part, day int) (int64, bool) {
	ts, ok := p.times(part)[day]
	return ts, ok
}

func (p *Participant) SetTime(part Part, day int, ts int64) {
	if m := p.times(part); m != nil {
		m[day] = ts
	}
}

// StarCount is the number of recorded completions across both parts.
func (p Participant) StarCount() int {
	return len(p.Star1Times) + len(p.Star2Times)
}

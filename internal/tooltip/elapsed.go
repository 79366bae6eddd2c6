package tooltip

import "strconv"

// Elapsed is a duration split into the three tooltip columns. Leading units
// that are zero are left empty.
type Elapsed struct {
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
	Seconds string `json:"seconds"`
}

// FormatElapsed splits seconds into H:, MM: and SS parts. Negative input is
// treated as zero.
func FormatElapsed(total int64) Elapsed {
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	var e Elapsed
	if h > 0 {
		e.Hours = strconv.FormatInt(h, 10) + ":"
	}
	if h > 0 || m > 0 {
		e.Minutes = pad(m) + ":"
	}
	e.Seconds = pad(s)
	return e
}

func (e Elapsed) String() string {
	return e.Hours + e.Minutes + e.Seconds
}

func pad(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}

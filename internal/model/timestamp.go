package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Timestamp is an optional epoch-seconds value. Values that are absent, null
// or not numeric decode to an invalid Timestamp instead of failing the whole
// document.
type Timestamp struct {
	Value int64
	Valid bool
}

func TimestampOf(v int64) Timestamp {
	return Timestamp{Value: v, Valid: true}
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	*t = Timestamp{}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}

	switch x := v.(type) {
	case float64:
		*t = timestampFromFloat(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		*t = timestampFromFloat(f)
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.Value, 10)), nil
}

func timestampFromFloat(f float64) Timestamp {
	// Outside the int64 range the conversion is undefined.
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return Timestamp{}
	}
	return Timestamp{Value: int64(f), Valid: true}
}

package model

import (
	"encoding/json"
	"testing"
)

func TestTimestamp_Decode(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		value int64
	}{
		{`{"ts": 1669878000}`, true, 1669878000},
		{`{"ts": "1669878000"}`, true, 1669878000},
		{`{"ts": 12.9}`, true, 12},
		{`{"ts": 0}`, true, 0},
		{`{"ts": 1e300}`, false, 0},
		{`{"ts": -1e300}`, false, 0},
		{`{"ts": "1e19"}`, false, 0},
		{`{"ts": 9223372036854775808}`, false, 0},
		{`{"ts": null}`, false, 0},
		{`{"ts": "abc"}`, false, 0},
		{`{"ts": ""}`, false, 0},
		{`{"ts": true}`, false, 0},
		{`{"ts": {"a": 1}}`, false, 0},
		{`{}`, false, 0},
	}
	for _, c := range cases {
		var v struct {
			TS Timestamp `json:"ts"`
		}
		if err := json.Unmarshal([]byte(c.in), &v); err != nil {
			t.Fatalf("%s: unexpected error: %v", c.in, err)
		}
		if v.TS.Valid != c.valid || v.TS.Value != c.value {
			t.Errorf("%s: want valid=%v value=%d, got %+v", c.in, c.valid, c.value, v.TS)
		}
	}
}

func TestMemberKeys_NumericFirst(t *testing.T) {
	l := Leaderboard{Members: map[string]Member{"10": {}, "9": {}, "b": {}, "a": {}, "100": {}}}
	got := l.MemberKeys()
	want := []string{"9", "10", "100", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys: want %v, got %v", want, got)
		}
	}
}

func TestMemberID_NumberOrString(t *testing.T) {
	var m struct {
		A MemberID `json:"a"`
		B MemberID `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a": 123, "b": "456"}`), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.A != "123" || m.B != "456" {
		t.Errorf("ids: want 123/456, got %s/%s", m.A, m.B)
	}
}

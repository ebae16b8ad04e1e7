package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// UnixTime is a timestamp the API encodes as Unix epoch seconds inside
// a numeric string, e.g. "1490894006". Bare numbers are accepted too.
type UnixTime struct {
	time.Time
}

// Epoch builds a UnixTime from epoch seconds. Mostly useful in tests.
func Epoch(sec int64) UnixTime {
	return UnixTime{time.Unix(sec, 0).UTC()}
}

func (t *UnixTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int64
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("timestamp: expected epoch seconds, got %s", b)
		}
		t.Time = time.Unix(n, 0).UTC()
		return nil
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("timestamp: %q is not epoch seconds", s)
	}
	t.Time = time.Unix(sec, 0).UTC()
	return nil
}

func (t UnixTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(t.Unix(), 10))
}

package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// naiveLayout is the ISO-8601 form without zone used by the settings files.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is an ISO-8601 instant. It is written as local wall time
// without a zone, microseconds only when non-zero, and read back either in
// that form or as RFC 3339.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	local := t.Time.In(time.Local)
	s := local.Format("2006-01-02T15:04:05")
	if us := local.Nanosecond() / int(time.Microsecond); us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return json.Marshal(s)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.ParseInLocation(naiveLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

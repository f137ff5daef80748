package zmanim

import (
	"encoding/json"
	"fmt"
	"time"
)

// Span is a duration broken into display fields. Fields are magnitudes;
// Negative carries the sign.
type Span struct {
	Hours        int  `json:"hours"`
	Minutes      int  `json:"minutes"`
	Seconds      int  `json:"seconds"`
	Milliseconds int  `json:"milliseconds"`
	Negative     bool `json:"negative"`
}

// SpanFromMillis splits a signed millisecond count.
func SpanFromMillis(millis int64) Span {
	var s Span
	if millis < 0 {
		s.Negative = true
		millis = -millis
	}
	s.Hours = int(millis / 3_600_000)
	millis %= 3_600_000
	s.Minutes = int(millis / 60_000)
	millis %= 60_000
	s.Seconds = int(millis / 1000)
	s.Milliseconds = int(millis % 1000)
	return s
}

// SpanFromDuration truncates d to milliseconds and splits it.
func SpanFromDuration(d time.Duration) Span {
	return SpanFromMillis(d.Milliseconds())
}

// Millis returns the signed total in milliseconds.
func (s Span) Millis() int64 {
	total := int64(s.Hours)*3_600_000 + int64(s.Minutes)*60_000 + int64(s.Seconds)*1000 + int64(s.Milliseconds)
	if s.Negative {
		return -total
	}
	return total
}

// Duration converts back to a time.Duration.
func (s Span) Duration() time.Duration {
	return time.Duration(s.Millis()) * time.Millisecond
}

// String formats as [-]H:MM:SS.mmm.
func (s Span) String() string {
	sign := ""
	if s.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%d:%02d:%02d.%03d", sign, s.Hours, s.Minutes, s.Seconds, s.Milliseconds)
}

// MarshalJSON adds the formatted text and total milliseconds to the fields.
func (s Span) MarshalJSON() ([]byte, error) {
	type fields Span
	return json.Marshal(struct {
		fields
		Text   string `json:"text"`
		Millis int64  `json:"millis"`
	}{fields(s), s.String(), s.Millis()})
}

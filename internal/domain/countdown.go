package domain

import (
	"fmt"
	"time"
)

const (
	msPerSecond = int64(time.Second / time.Millisecond)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Remaining is the time left until the target, split into display units.
// Hours are always in [0,23], minutes and seconds in [0,59]; days are unbounded.
type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Sample is the countdown state for one instant: either Remaining or Expired.
type Sample struct {
	Expired   bool      `json:"expired"`
	Remaining Remaining `json:"remaining"`
}

// ExpiredSample is the payload-less expired sentinel.
var ExpiredSample = Sample{Expired: true}

// Derive computes the countdown sample for target as seen at now.
// It is pure: the same pair always yields the same sample.
func Derive(target, now time.Time) Sample {
	if !now.Before(target) {
		return ExpiredSample
	}

	// floor to whole milliseconds; the delta is strictly positive here
	delta := int64(target.Sub(now) / time.Millisecond)

	return Sample{Remaining: Remaining{
		Days:    int(delta / msPerDay),
		Hours:   int((delta % msPerDay) / msPerHour),
		Minutes: int((delta % msPerHour) / msPerMinute),
		Seconds: int((delta % msPerMinute) / msPerSecond),
	}}
}

// DeriveConfig derives the sample for cfg's target parsed in loc.
// An empty or unparseable target degrades to Expired instead of failing.
func DeriveConfig(cfg Configuration, now time.Time, loc *time.Location) Sample {
	target, ok := cfg.Target(loc)
	if !ok {
		return ExpiredSample
	}
	return Derive(target, now)
}

// TotalMillis returns the whole-second remaining time in milliseconds.
// Expired samples report zero.
func (s Sample) TotalMillis() int64 {
	if s.Expired {
		return 0
	}
	r := s.Remaining
	return int64(r.Days)*msPerDay +
		int64(r.Hours)*msPerHour +
		int64(r.Minutes)*msPerMinute +
		int64(r.Seconds)*msPerSecond
}

// Pad formats a unit value the way the widget displays it ("07", "42", "123").
func Pad(v int) string {
	return fmt.Sprintf("%02d", v)
}

func (s Sample) String() string {
	if s.Expired {
		return "expired"
	}
	r := s.Remaining
	return fmt.Sprintf("%dd %sh %sm %ss", r.Days, Pad(r.Hours), Pad(r.Minutes), Pad(r.Seconds))
}

package attendance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusEarlyBird Status = "early_bird"
	StatusWork      Status = "work"
	StatusLate      Status = "late"
	StatusOvertime  Status = "OT"
	StatusOff       Status = "off"
	StatusAbsent    Status = "absent"
)

var Statuses = []Status{StatusEarlyBird, StatusWork, StatusLate, StatusOvertime, StatusOff, StatusAbsent}

func (s Status) IsValid() bool {
	switch s {
	case StatusEarlyBird, StatusWork, StatusLate, StatusOvertime, StatusOff, StatusAbsent:
		return true
	default:
		return false
	}
}

var ErrInvalidClock = errors.New("invalid clock time")

// Clock is a same-day wall-clock time, in minutes since midnight.
type Clock int

const (
	earlyBirdCutoff Clock = 6 * 60
	earlyTierEnd    Clock = 8 * 60
	lateCutoff      Clock = 9 * 60
	regularEnd      Clock = 17 * 60
)

// Tier rates in half-points per hour: 12.5, 10 and 15 points per hour.
const (
	earlyRate    = 25
	regularRate  = 20
	overtimeRate = 30
	rateDivisor  = 2 * 60
)

// ParseClock parses a 24-hour "HH:MM" or "H:MM" time.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 || !isDigits(hh) || !isDigits(mm) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hour, _ := strconv.Atoi(hh)
	minute, _ := strconv.Atoi(mm)
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidClock, s)
	}

	return Clock(hour*60 + minute), nil
}

// NewClock builds a clock from an hour and minute without range checks.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ClassifyCheckIn labels a check-in time on its own. Unparsable input is
// treated as a regular work day.
func ClassifyCheckIn(checkIn string) Status {
	c, err := ParseClock(checkIn)
	if err != nil {
		return StatusWork
	}

	switch {
	case c < earlyBirdCutoff:
		return StatusEarlyBird
	case c > lateCutoff:
		return StatusLate
	default:
		return StatusWork
	}
}

// ClassifyAndScore derives the day's status and points from a check-in and
// check-out pair. Minutes are scored at most once: the early tier covers
// [checkIn, 08:00), the regular tier picks up where it stopped and runs to
// 17:00, and overtime covers [17:00, checkOut). A tier with a negative span
// contributes nothing.
func ClassifyAndScore(checkIn, checkOut string) (Status, decimal.Decimal, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return StatusWork, decimal.Zero, fmt.Errorf("check-in: %w", err)
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return StatusWork, decimal.Zero, fmt.Errorf("check-out: %w", err)
	}

	status, points := score(in, out)
	return status, points, nil
}

func score(in, out Clock) (Status, decimal.Decimal) {
	status := StatusWork
	var halfPoints int64

	regularStart := max(in, earlyBirdCutoff)
	if in < earlyBirdCutoff {
		earlyEnd := min(out, earlyTierEnd)
		halfPoints += span(in, earlyEnd) * earlyRate
		status = StatusEarlyBird
		regularStart = max(regularStart, earlyEnd)
	}

	halfPoints += span(regularStart, min(out, regularEnd)) * regularRate

	if out > regularEnd {
		halfPoints += span(regularEnd, out) * overtimeRate
		status = StatusOvertime
	}

	if status == StatusWork && in > lateCutoff {
		status = StatusLate
	}

	points := decimal.NewFromInt(halfPoints).Div(decimal.NewFromInt(rateDivisor)).Round(2)
	return status, points
}

func span(from, to Clock) int64 {
	if to <= from {
		return 0
	}
	return int64(to - from)
}

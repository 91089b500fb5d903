package attendance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	valid := map[string]Clock{
		"00:00": 0,
		"9:05":  NewClock(9, 5),
		"09:05": NewClock(9, 5),
		"23:59": NewClock(23, 59),
		" 7:30": NewClock(7, 30),
	}
	for in, want := range valid {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	invalid := []string{"", "9", "24:00", "12:60", "12:5", "ab:cd", "-1:00", "123:00", "12:00:00", "+9:00"}
	for _, in := range invalid {
		_, err := ParseClock(in)
		assert.ErrorIs(t, err, ErrInvalidClock, in)
	}
}

func TestClock_String(t *testing.T) {
	assert.Equal(t, "09:05", NewClock(9, 5).String())
	assert.Equal(t, "17:00", NewClock(17, 0).String())
}

func TestClassifyCheckIn(t *testing.T) {
	for h := 0; h < 6; h++ {
		for _, m := range []int{0, 30, 59} {
			assert.Equal(t, StatusEarlyBird, ClassifyCheckIn(NewClock(h, m).String()))
		}
	}

	for _, in := range []string{"06:00", "6:00", "07:45", "08:59", "09:00"} {
		assert.Equal(t, StatusWork, ClassifyCheckIn(in), in)
	}

	for _, in := range []string{"09:01", "9:30", "12:00", "23:59"} {
		assert.Equal(t, StatusLate, ClassifyCheckIn(in), in)
	}

	assert.Equal(t, StatusWork, ClassifyCheckIn("garbage"))
	assert.Equal(t, StatusWork, ClassifyCheckIn(""))
}

func TestClassifyAndScore(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  string
		checkOut string
		status   Status
		points   string
	}{
		{"early bird into regular hours", "05:00", "09:00", StatusEarlyBird, "47.5"},
		{"regular day with overtime", "08:00", "18:30", StatusOvertime, "112.5"},
		{"late arrival", "09:30", "17:00", StatusLate, "75"},
		{"regular day", "08:00", "17:00", StatusWork, "90"},
		{"exactly nine", "09:00", "17:00", StatusWork, "80"},
		{"early leave before eight", "05:00", "07:00", StatusEarlyBird, "25"},
		{"overtime beats early bird", "05:00", "18:00", StatusOvertime, "142.5"},
		{"late with overtime is OT", "10:00", "19:00", StatusOvertime, "100"},
		{"single minute rounds", "08:00", "08:01", StatusWork, "0.17"},
		{"unpadded input", "8:00", "9:00", StatusWork, "10"},
		{"check-out before check-in", "10:00", "08:00", StatusLate, "0"},
		{"early check-out before check-in", "05:00", "04:00", StatusEarlyBird, "0"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, points, err := ClassifyAndScore(c.checkIn, c.checkOut)
			require.NoError(t, err)
			assert.Equal(t, c.status, status)
			assert.True(t, decimal.RequireFromString(c.points).Equal(points), "got %s, want %s", points, c.points)
			assert.False(t, points.IsNegative())
		})
	}
}

func TestClassifyAndScore_InvalidInput(t *testing.T) {
	status, points, err := ClassifyAndScore("8:xx", "17:00")
	assert.ErrorIs(t, err, ErrInvalidClock)
	assert.Equal(t, StatusWork, status)
	assert.True(t, points.IsZero())

	_, _, err = ClassifyAndScore("08:00", "25:00")
	assert.ErrorIs(t, err, ErrInvalidClock)
}

func TestClassifyAndScore_Idempotent(t *testing.T) {
	for in := Clock(0); in < 24*60; in += 37 {
		for out := in; out < 24*60; out += 53 {
			s1, p1, err := ClassifyAndScore(in.String(), out.String())
			require.NoError(t, err)
			s2, p2, err := ClassifyAndScore(in.String(), out.String())
			require.NoError(t, err)
			assert.Equal(t, s1, s2)
			assert.True(t, p1.Equal(p2))
			assert.True(t, p1.Equal(p1.Round(2)))
		}
	}
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.IsValid())
	}
	assert.False(t, Status("present").IsValid())
}

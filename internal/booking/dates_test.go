package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayNormalizesToUTCMidnight(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)
	in := time.Date(2024, 3, 14, 23, 45, 0, 0, loc)
	got := Day(in)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 0, got.Hour())
	// 23:45 AST is 20:45 UTC, still March 14.
	assert.Equal(t, "2024-03-14", FormatDate(got))
}

func TestExpandRangeHalfOpen(t *testing.T) {
	days := ExpandRange(mustDate("2024-03-14"), mustDate("2024-03-17"))
	require.Len(t, days, 3)
	assert.Equal(t, "2024-03-14", FormatDate(days[0]))
	assert.Equal(t, "2024-03-15", FormatDate(days[1]))
	assert.Equal(t, "2024-03-16", FormatDate(days[2]))
}

func TestExpandRangeEmptyAndInverted(t *testing.T) {
	assert.Empty(t, ExpandRange(mustDate("2024-03-14"), mustDate("2024-03-14")))
	assert.Empty(t, ExpandRange(mustDate("2024-03-17"), mustDate("2024-03-14")))
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                   string
		aIn, aOut, bIn, bOut   string
		want                   bool
	}{
		{"disjoint before", "2024-03-10", "2024-03-12", "2024-03-12", "2024-03-14", false},
		{"disjoint after", "2024-03-12", "2024-03-14", "2024-03-10", "2024-03-12", false},
		{"partial overlap", "2024-03-10", "2024-03-13", "2024-03-12", "2024-03-15", true},
		{"contained", "2024-03-10", "2024-03-20", "2024-03-12", "2024-03-13", true},
		{"identical", "2024-03-10", "2024-03-12", "2024-03-10", "2024-03-12", true},
		{"back to back nights", "2024-03-10", "2024-03-11", "2024-03-11", "2024-03-12", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(mustDate(tc.aIn), mustDate(tc.aOut), mustDate(tc.bIn), mustDate(tc.bOut))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDateSetSortedAndStrings(t *testing.T) {
	s := NewDateSet(mustDate("2024-03-12"), mustDate("2024-03-10"), mustDate("2024-03-11"))
	// adding a duplicate does not grow the set
	s.Add(mustDate("2024-03-10"))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"2024-03-10", "2024-03-11", "2024-03-12"}, s.Strings())
	assert.True(t, s.Has(mustDate("2024-03-11")))
	assert.False(t, s.Has(mustDate("2024-03-13")))
}

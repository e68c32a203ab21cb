package daterange_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"atrium/shared/daterange"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func mustRange(t *testing.T, start, end string) daterange.Range {
	t.Helper()

	r, err := daterange.New(day(start), day(end))
	assert.NoError(t, err)

	return r
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{
			name:  "valid range",
			start: "2024-06-01",
			end:   "2024-06-05",
		},
		{
			name:    "zero-length stay rejected",
			start:   "2024-06-01",
			end:     "2024-06-01",
			wantErr: true,
		},
		{
			name:    "end before start rejected",
			start:   "2024-06-05",
			end:     "2024-06-01",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := daterange.New(day(tt.start), day(tt.end))

			if tt.wantErr {
				assert.ErrorIs(t, err, daterange.ErrCheckOutNotAfterCheckIn)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	r, err := daterange.Parse("2006-01-02", "2024-06-01", "2024-06-05")
	assert.NoError(t, err)
	assert.Equal(t, day("2024-06-01"), r.Start)
	assert.Equal(t, day("2024-06-05"), r.End)

	_, err = daterange.Parse("2006-01-02", "not-a-date", "2024-06-05")
	assert.Error(t, err)

	_, err = daterange.Parse("2006-01-02", "2024-06-05", "2024-06-05")
	assert.ErrorIs(t, err, daterange.ErrCheckOutNotAfterCheckIn)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        [2]string
		b        [2]string
		expected bool
	}{
		{
			name:     "identical ranges overlap",
			a:        [2]string{"2024-06-01", "2024-06-05"},
			b:        [2]string{"2024-06-01", "2024-06-05"},
			expected: true,
		},
		{
			name:     "contained range overlaps",
			a:        [2]string{"2024-06-01", "2024-06-10"},
			b:        [2]string{"2024-06-03", "2024-06-05"},
			expected: true,
		},
		{
			name:     "partial overlap at tail",
			a:        [2]string{"2024-06-01", "2024-06-05"},
			b:        [2]string{"2024-06-04", "2024-06-09"},
			expected: true,
		},
		{
			name:     "touching endpoints overlap",
			a:        [2]string{"2024-06-01", "2024-06-05"},
			b:        [2]string{"2024-06-05", "2024-06-09"},
			expected: true,
		},
		{
			name:     "touching endpoints overlap reversed",
			a:        [2]string{"2024-06-05", "2024-06-09"},
			b:        [2]string{"2024-06-01", "2024-06-05"},
			expected: true,
		},
		{
			name:     "disjoint ranges do not overlap",
			a:        [2]string{"2024-06-01", "2024-06-04"},
			b:        [2]string{"2024-06-05", "2024-06-09"},
			expected: false,
		},
		{
			name:     "disjoint ranges reversed",
			a:        [2]string{"2024-06-05", "2024-06-09"},
			b:        [2]string{"2024-06-01", "2024-06-04"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustRange(t, tt.a[0], tt.a[1])
			b := mustRange(t, tt.b[0], tt.b[1])

			// The predicate is symmetric by construction; check both directions.
			assert.Equal(t, tt.expected, a.Overlaps(b))
			assert.Equal(t, tt.expected, b.Overlaps(a))
		})
	}
}

func TestContains(t *testing.T) {
	r := mustRange(t, "2024-06-01", "2024-06-05")

	assert.True(t, r.Contains(day("2024-06-01")))
	assert.True(t, r.Contains(day("2024-06-03")))
	assert.True(t, r.Contains(day("2024-06-05")))
	assert.False(t, r.Contains(day("2024-05-31")))
	assert.False(t, r.Contains(day("2024-06-06")))
}

func TestNights(t *testing.T) {
	assert.Equal(t, 4, mustRange(t, "2024-06-01", "2024-06-05").Nights())
	assert.Equal(t, 1, mustRange(t, "2024-06-01", "2024-06-02").Nights())
}

package dateparse_test

import (
	"testing"
	"time"

	"nutrisur/shared/clock"
	"nutrisur/shared/dateparse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

func TestParser_Parse(t *testing.T) {
	parser := dateparse.New(clock.Fixed(now), "en", "es")

	tests := []struct {
		name          string
		text          string
		defaultHour   int
		defaultMinute int
		want          time.Time
		wantErr       bool
	}{
		{
			name:          "day first numeric date",
			text:          "25/12/2028",
			defaultHour:   10,
			defaultMinute: 0,
			want:          time.Date(2028, time.December, 25, 10, 0, 0, 0, time.UTC),
		},
		{
			name:          "day first with dashes and short year",
			text:          "25-12-28",
			defaultHour:   0,
			defaultMinute: 0,
			want:          time.Date(2028, time.December, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "iso date with clock keeps the clock",
			text:          "2028-12-25 17:30",
			defaultHour:   9,
			defaultMinute: 0,
			want:          time.Date(2028, time.December, 25, 17, 30, 0, 0, time.UTC),
		},
		{
			name:          "surrounding whitespace and case are ignored",
			text:          "  03/07/2025 ",
			defaultHour:   12,
			defaultMinute: 15,
			want:          time.Date(2025, time.July, 3, 12, 15, 0, 0, time.UTC),
		},
		{
			name:          "tomorrow gets the default clock",
			text:          "tomorrow",
			defaultHour:   23,
			defaultMinute: 59,
			want:          time.Date(2025, time.June, 2, 23, 59, 0, 0, time.UTC),
		},
		{
			name:          "spanish tomorrow",
			text:          "Mañana",
			defaultHour:   23,
			defaultMinute: 59,
			want:          time.Date(2025, time.June, 2, 23, 59, 0, 0, time.UTC),
		},
		{
			name:        "past date is rejected",
			text:        "01/01/2020",
			defaultHour: 10,
			wantErr:     true,
		},
		{
			name:        "earlier today is rejected",
			text:        "01/06/2025",
			defaultHour: 8,
			wantErr:     true,
		},
		{
			name:    "empty text",
			text:    "   ",
			wantErr: true,
		},
		{
			name:    "no date at all",
			text:    "xyzzy qwerty",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.text, tt.defaultHour, tt.defaultMinute)

			if tt.wantErr {
				assert.ErrorIs(t, err, dateparse.ErrNotFound)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.False(t, got.Before(now))
		})
	}
}

func TestParser_ParseClock(t *testing.T) {
	parser := dateparse.New(clock.Fixed(now))

	tests := []struct {
		name       string
		text       string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{name: "colon", text: "17:30", wantHour: 17, wantMinute: 30},
		{name: "dot", text: "17.30", wantHour: 17, wantMinute: 30},
		{name: "h separator", text: "17h30", wantHour: 17, wantMinute: 30},
		{name: "bare hour with h", text: "17h", wantHour: 17},
		{name: "spanish prefix", text: "a las 10:00", wantHour: 10},
		{name: "english prefix", text: "at 9", wantHour: 9},
		{name: "twelve hour clock", text: "5pm", wantHour: 17},
		{name: "twelve hour clock with minutes", text: "5:45 PM", wantHour: 17, wantMinute: 45},
		{name: "early morning is not rejected", text: "07:00", wantHour: 7},
		{name: "empty", text: "", wantErr: true},
		{name: "a date is not a clock", text: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := parser.ParseClock(tt.text)

			if tt.wantErr {
				assert.ErrorIs(t, err, dateparse.ErrNotFound)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, hour)
			assert.Equal(t, tt.wantMinute, minute)
		})
	}
}

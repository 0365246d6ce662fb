package xero

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWrappedDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "plain epoch",
			input: "/Date(1439434356790)/",
			want:  time.Date(2015, 8, 13, 2, 52, 36, 790e6, time.UTC),
		},
		{
			name:  "positive offset applied",
			input: "/Date(1439434356790+1300)/",
			want:  time.Date(2015, 8, 13, 15, 52, 36, 790e6, time.UTC),
		},
		{
			name:  "negative offset applied",
			input: "/Date(1439434356790-0500)/",
			want:  time.Date(2015, 8, 12, 21, 52, 36, 790e6, time.UTC),
		},
		{
			name:  "escaped slashes",
			input: `\/Date(1439434356790)\/`,
			want:  time.Date(2015, 8, 13, 2, 52, 36, 790e6, time.UTC),
		},
		{
			name:  "epoch zero",
			input: "/Date(0)/",
			want:  time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWrappedDate(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseWrappedDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "2024-01-15", "/Date()/", "/Date(abc)/", "Date(123)"} {
		_, err := ParseWrappedDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/Date(1439434356790+1300)/", "2015-08-13"},
		{"2024-03-05T00:00:00", "2024-03-05"},
		{"2024-03-05", "2024-03-05"},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseDate("")
	assert.Error(t, err)
	_, err = ParseDate("not a date")
	assert.Error(t, err)
}

func TestDateOf(t *testing.T) {
	got, err := DateOf("", "2024-06-01T00:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got)

	// First parseable value wins.
	got, err = DateOf("2024-06-01T00:00:00", "/Date(0)/")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got)

	_, err = DateOf("", "garbage")
	assert.Error(t, err)
}

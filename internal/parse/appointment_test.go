package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvdheuvel/jeevesbot/internal/domain"
)

func TestParseInput_FourSegments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  domain.Draft
	}{
		{
			name:  "canonical input",
			input: "21-11-2025. 14:30. Peter van der Meer. Ghostin 06",
			want:  domain.Draft{Date: "21-11-2025", Time: "14:30", ContactName: "Peter van der Meer", Category: "Ghostin 06"},
		},
		{
			name:  "irregular spacing",
			input: "21-11-2025.   14:30.   Peter van der Meer.   Ghostin 06",
			want:  domain.Draft{Date: "21-11-2025", Time: "14:30", ContactName: "Peter van der Meer", Category: "Ghostin 06"},
		},
		{
			name:  "short year",
			input: "24-12-25. 10:30. Test Contact. Test Category",
			want:  domain.Draft{Date: "24-12-2025", Time: "10:30", ContactName: "Test Contact", Category: "Test Category"},
		},
		{
			name:  "compact date",
			input: "241225. 10:30. Test Contact. Test Category",
			want:  domain.Draft{Date: "24-12-2025", Time: "10:30", ContactName: "Test Contact", Category: "Test Category"},
		},
		{
			name:  "eight digit date",
			input: "24122025. 10:30. Test Contact. Test Category",
			want:  domain.Draft{Date: "24-12-2025", Time: "10:30", ContactName: "Test Contact", Category: "Test Category"},
		},
		{
			name:  "single digit hour",
			input: "24-12-2025. 9:30. Test Contact. Test Category",
			want:  domain.Draft{Date: "24-12-2025", Time: "09:30", ContactName: "Test Contact", Category: "Test Category"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := ParseInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, &tt.want, draft)
		})
	}
}

func TestParseInput_SeparatorCollision(t *testing.T) {
	// The field separator also appears inside the dotted date and time
	// formats; the parser has to recover the intended grouping.
	tests := []struct {
		name  string
		input string
		want  domain.Draft
	}{
		{
			name:  "dotted date",
			input: "24.12.2025. 10:30. Test Contact. Test Category",
			want:  domain.Draft{Date: "24-12-2025", Time: "10:30", ContactName: "Test Contact", Category: "Test Category"},
		},
		{
			name:  "dotted short date",
			input: "24.12.25. 10:30. Test Contact. Test Category",
			want:  domain.Draft{Date: "24-12-2025", Time: "10:30", ContactName: "Test Contact", Category: "Test Category"},
		},
		{
			name:  "dotted time",
			input: "24-12-2025. 10.30. Test Contact. Test Category",
			want:  domain.Draft{Date: "24-12-2025", Time: "10:30", ContactName: "Test Contact", Category: "Test Category"},
		},
		{
			name:  "dotted date and dotted time",
			input: "24.12.25. 9.30. A. B",
			want:  domain.Draft{Date: "24-12-2025", Time: "09:30", ContactName: "A", Category: "B"},
		},
		{
			name:  "dotted time with dotted category",
			input: "21-11-2025. 9.30. Piet. De Boer B.V",
			want:  domain.Draft{Date: "21-11-2025", Time: "09:30", ContactName: "Piet", Category: "De Boer B.V"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft, err := ParseInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, &tt.want, draft)
		})
	}
}

func TestParseInput_TooFewSegments(t *testing.T) {
	_, err := ParseInput("21-11-2025. 14:30. Peter van der Meer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4")
	assert.Contains(t, err.Error(), "3")
}

func TestParseInput_EmptySegmentsAreDropped(t *testing.T) {
	// Trailing separators and blank segments do not count as fields.
	_, err := ParseInput("21-11-2025. 14:30. .  .")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 2")
}

func TestParseInput_ErrorClasses(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"wrong date separator", "21/11/2025. 14:30. Piet. Cat", ErrUnrecognized},
		{"impossible date", "31-02-2025. 14:30. Piet. Cat", ErrInvalid},
		{"seconds in time", "21-11-2025. 14:30:00. Piet. Cat", ErrUnrecognized},
		{"minute out of range", "21-11-2025. 14:60. Piet. Cat", ErrInvalid},
		{"hour out of range", "21-11-2025. 24:00. Piet. Cat", ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInput(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSplitSegments(t *testing.T) {
	assert.Equal(t,
		[]string{"a", "b", "c"},
		splitSegments(" a .  b .. c . "))
	assert.Empty(t, splitSegments(" . . "))
}

func TestResolveSegments(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		date     string
		tm       string
		contact  string
		category string
	}{
		{
			name:     "positional",
			segments: []string{"21-11-2025", "14:30", "Piet", "Cat"},
			date:     "21-11-2025", tm: "14:30", contact: "Piet", category: "Cat",
		},
		{
			name:     "dotted date rejoined",
			segments: []string{"24", "12", "2025", "10:30", "Piet", "Cat"},
			date:     "24.12.2025", tm: "10:30", contact: "Piet", category: "Cat",
		},
		{
			name:     "dotted date and time rejoined",
			segments: []string{"24", "12", "25", "9", "30", "A", "B"},
			date:     "24.12.25", tm: "9.30", contact: "A", category: "B",
		},
		{
			name:     "dotted time rejoined",
			segments: []string{"24-12-25", "10", "30", "Piet", "Cat"},
			date:     "24-12-25", tm: "10.30", contact: "Piet", category: "Cat",
		},
		{
			name:     "dotted time with surplus folded into category",
			segments: []string{"21-11-2025", "9", "30", "Piet", "De Boer B", "V"},
			date:     "21-11-2025", tm: "9.30", contact: "Piet", category: "De Boer B.V",
		},
		{
			name:     "unresolvable falls back to positional",
			segments: []string{"21", "11", "x", "y", "z"},
			date:     "21", tm: "11", contact: "x", category: "y",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, tm, contact, category := resolveSegments(tt.segments)
			assert.Equal(t, tt.date, date)
			assert.Equal(t, tt.tm, tm)
			assert.Equal(t, tt.contact, contact)
			assert.Equal(t, tt.category, category)
		})
	}
}

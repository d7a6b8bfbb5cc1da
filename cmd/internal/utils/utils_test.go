package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type sanitizeTarget struct {
	Title   string
	Content string
	Tags    []string
	Count   int
	hidden  string
}

func TestSanitize(t *testing.T) {
	in := sanitizeTarget{
		Title:   "  hello \t",
		Content: "\n body \n",
		Tags:    []string{" a ", "b  "},
		Count:   3,
		hidden:  "  untouched  ",
	}

	Sanitize(&in)

	assert.Equal(t, "hello", in.Title)
	assert.Equal(t, "body", in.Content)
	assert.Equal(t, []string{"a", "b"}, in.Tags)
	assert.Equal(t, 3, in.Count)
	assert.Equal(t, "  untouched  ", in.hidden)
}

func TestSanitize_PanicsOnNonPointer(t *testing.T) {
	assert.Panics(t, func() { Sanitize(sanitizeTarget{}) })
	assert.Panics(t, func() { Sanitize((*sanitizeTarget)(nil)) })

	s := "x"
	assert.Panics(t, func() { Sanitize(&s) })
}

func TestFormatTime(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	ts := time.Date(2024, 3, 9, 21, 4, 5, 120_456_000, loc)

	assert.Equal(t, "2024-03-10T00:04:05.120Z", FormatTime(ts))
	assert.Equal(t, "2024-01-01T00:00:00.000Z", FormatTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

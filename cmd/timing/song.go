package timing

import (
	"strings"

	"github.com/samber/lo"
)

// Line is an ordered group of syllables sung together.
//
// Offsets holds one entry per syllable (its start relative to the line start)
// plus a trailing sentinel marking the end of the last syllable, so
// len(Offsets) == len(Syllables)+1.
type Line struct {
	Syllables []string
	Offsets   []float64
	Start     float64 // Absolute start, seconds from the start of the song
}

// Text returns the line without any syllable or timing markers.
func (l Line) Text() string {
	return strings.Join(l.Syllables, "")
}

// Duration is the length of the line in seconds.
func (l Line) Duration() float64 {
	if len(l.Offsets) == 0 {
		return 0
	}
	return l.Offsets[len(l.Offsets)-1]
}

// End is the absolute end of the line in seconds.
func (l Line) End() float64 {
	return l.Start + l.Duration()
}

// Metadata describes a song. Every field except Title is optional and left
// empty when the timing file does not set it.
type Metadata struct {
	Title               string
	Author              string
	Album               string
	Instruments         string
	Singer              string
	Features            string
	KaraokeLyricsAuthor string
	KaraokeAuthor       string
	Copyright           string
	Extra               map[string]string // Any other string fields found in the file
}

// Song is the full timing model. It is never mutated after loading.
type Song struct {
	Metadata Metadata
	Lines    []Line
}

// Texts returns the plain text of every line in definition order.
func (s *Song) Texts() []string {
	return lo.Map(s.Lines, func(l Line, _ int) string {
		return l.Text()
	})
}

// End is the absolute time at which the last sung syllable of the song ends.
// Overlapping lines mean this is not necessarily the end of the last line.
func (s *Song) End() float64 {
	if len(s.Lines) == 0 {
		return 0
	}
	return lo.MaxBy(s.Lines, func(a, b Line) bool {
		return a.End() > b.End()
	}).End()
}

// SyllableCount is the total number of syllables in the song.
func (s *Song) SyllableCount() int {
	return lo.SumBy(s.Lines, func(l Line) int {
		return len(l.Syllables)
	})
}

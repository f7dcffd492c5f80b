// Package resolve maps an elapsed playback time to the lines and syllables
// being sung at that moment. Everything here is a pure function of its inputs.
package resolve

import (
	"fmt"

	"github.com/gigurra/karaoke/cmd/timing"
)

// Syllable is the position inside an active line. A line can be active before
// its first syllable starts (lead-in silence), in which case nothing is sung
// yet and the position is NotStarted.
type Syllable struct {
	index   int
	started bool
}

// NotStarted is the position of a line whose first syllable has not begun.
var NotStarted = Syllable{}

// At is the position of syllable i.
func At(i int) Syllable {
	return Syllable{index: i, started: true}
}

// Index returns the syllable index and whether any syllable is being sung.
func (s Syllable) Index() (int, bool) {
	return s.index, s.started
}

// Started reports whether a syllable is being sung.
func (s Syllable) Started() bool {
	return s.started
}

func (s Syllable) String() string {
	if !s.started {
		return "none"
	}
	return fmt.Sprintf("%d", s.index)
}

// Active is one line currently being sung.
type Active struct {
	Line     int
	Syllable Syllable
}

// Lines returns every line active at elapsed seconds, in line definition
// order. A line is active on the half open interval [start, start+duration).
// Out of range times resolve to no active lines.
func Lines(song *timing.Song, elapsed float64) []Active {
	var result []Active
	for i, line := range song.Lines {
		if !(line.Start <= elapsed && elapsed < line.End()) {
			continue
		}
		result = append(result, Active{
			Line:     i,
			Syllable: SyllableAt(line, elapsed-line.Start),
		})
	}
	return result
}

// SyllableAt finds the syllable sung at offset seconds into line. When several
// syllables match (equal offsets) the last one wins.
func SyllableAt(line timing.Line, offset float64) Syllable {
	current := NotStarted
	for j := range line.Syllables {
		if j+1 >= len(line.Offsets) {
			break
		}
		if line.Offsets[j] <= offset && offset < line.Offsets[j+1] {
			current = At(j)
		}
	}
	return current
}

// Find returns the resolved position of line in active, if present.
func Find(active []Active, line int) (Syllable, bool) {
	for _, a := range active {
		if a.Line == line {
			return a.Syllable, true
		}
	}
	return NotStarted, false
}

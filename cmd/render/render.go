// Package render turns resolved playback positions into full screen frames.
package render

import (
	"slices"
	"strings"

	"github.com/gigurra/karaoke/cmd/resolve"
	"github.com/gigurra/karaoke/cmd/timing"
	"github.com/mattn/go-runewidth"
)

// Layout of a frame, in terminal rows.
const (
	HeaderLines = 3 // blank, title, blank
	FooterLines = 1 // style reset
	titleIndent = 8
	styleReset  = "\x1b[0m"
)

// Phase is the renderer lifecycle. Transitions are driven by the frame loop.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRendering
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRendering:
		return "rendering"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Class is the highlight class of a piece of lyric text.
type Class int

const (
	ClassInactive Class = iota
	ClassSung
	ClassCurrent
	ClassUpcoming
)

func (c Class) String() string {
	switch c {
	case ClassSung:
		return "sung"
	case ClassCurrent:
		return "current"
	case ClassUpcoming:
		return "upcoming"
	default:
		return "inactive"
	}
}

// Classify returns the class of syllable i in an active line positioned at current.
func Classify(i int, current resolve.Syllable) Class {
	idx, started := current.Index()
	switch {
	case !started:
		return ClassUpcoming
	case i < idx:
		return ClassSung
	case i == idx:
		return ClassCurrent
	default:
		return ClassUpcoming
	}
}

// Renderer owns all frame-to-frame state: the scroll offset and the last
// observed position of every active line. The scroll offset only grows.
type Renderer struct {
	song      *timing.Song
	styles    Styles
	increment int
	texts     []string

	phase     Phase
	scroll    int
	positions map[int]resolve.Syllable

	lastCols     int
	lastRows     int
	lastMessages []string
	lastFrame    string
}

// New creates an idle renderer for song. scrollIncrement is the number of
// lines the window advances when the sung line falls off the bottom.
func New(song *timing.Song, styles Styles, scrollIncrement int) *Renderer {
	if scrollIncrement < 1 {
		scrollIncrement = 1
	}
	return &Renderer{
		song:      song,
		styles:    styles,
		increment: scrollIncrement,
		texts:     song.Texts(),
		positions: map[int]resolve.Syllable{},
	}
}

// Phase returns the current lifecycle phase.
func (r *Renderer) Phase() Phase {
	return r.phase
}

// Scroll returns the number of song lines scrolled past the top of the window.
func (r *Renderer) Scroll() int {
	return r.scroll
}

// Finish moves the renderer to PhaseDone. Later Render calls return the last frame unchanged.
func (r *Renderer) Finish() {
	r.phase = PhaseDone
}

// headerRows is the number of rows used by the title block. Terminals too
// small for the header and at least one lyric line get no header.
func headerRows(rows, messages int) int {
	if rows-FooterLines-messages > HeaderLines {
		return HeaderLines
	}
	return 0
}

// VisibleLines is the number of song lines that fit on a screen of rows rows
// with the given number of diagnostic messages shown above the header.
func VisibleLines(rows, messages int) int {
	return max(1, rows-headerRows(rows, messages)-FooterLines-messages)
}

// Window returns the half open range of song lines currently on screen.
func (r *Renderer) Window(rows, messages int) (int, int) {
	end := min(len(r.song.Lines), r.scroll+VisibleLines(rows, messages))
	return min(r.scroll, end), end
}

// Render produces the frame for active on a cols x rows screen, with messages
// shown in the error style above the title. The bool reports whether the
// frame differs from the previous one; callers can skip writing unchanged frames.
func (r *Renderer) Render(active []resolve.Active, cols, rows int, messages []string) (string, bool) {
	if r.phase == PhaseDone {
		return r.lastFrame, false
	}
	first := r.phase == PhaseIdle
	r.phase = PhaseRendering

	visible := VisibleLines(rows, len(messages))
	scrolled := r.advanceScroll(active, visible)
	moved := r.observe(active)

	if !first && !scrolled && !moved && cols == r.lastCols && rows == r.lastRows && slices.Equal(messages, r.lastMessages) {
		return r.lastFrame, false
	}

	frame := r.compose(cols, rows, messages)
	changed := first || frame != r.lastFrame
	r.lastCols, r.lastRows = cols, rows
	r.lastMessages = slices.Clone(messages)
	r.lastFrame = frame
	return frame, changed
}

// advanceScroll grows the scroll offset in fixed steps until the furthest
// active line is inside the window.
func (r *Renderer) advanceScroll(active []resolve.Active, visible int) bool {
	if len(active) == 0 {
		return false
	}
	furthest := slices.MaxFunc(active, func(a, b resolve.Active) int {
		return a.Line - b.Line
	}).Line

	step := min(r.increment, visible)
	scrolled := false
	for furthest >= r.scroll+visible {
		r.scroll += step
		scrolled = true
	}
	return scrolled
}

// observe records the position of every active line and forgets lines that
// stopped being active. It reports whether anything changed since the last frame.
func (r *Renderer) observe(active []resolve.Active) bool {
	changed := len(active) != len(r.positions)
	next := make(map[int]resolve.Syllable, len(active))
	for _, a := range active {
		if prev, ok := r.positions[a.Line]; !ok || prev != a.Syllable {
			changed = true
		}
		next[a.Line] = a.Syllable
	}
	r.positions = next
	return changed
}

func (r *Renderer) compose(cols, rows int, messages []string) string {
	out := make([]string, 0, rows)

	for _, msg := range messages {
		out = append(out, r.styles.Error.Render("ERROR: "+msg))
	}

	if headerRows(rows, len(messages)) > 0 {
		out = append(out, "", strings.Repeat(" ", titleIndent)+r.styles.Title.Render(r.title(cols)), "")
	}

	start, end := r.Window(rows, len(messages))
	for i := start; i < end; i++ {
		out = append(out, r.renderLine(i))
	}

	out = append(out, styleReset)
	return strings.Join(out, "\n")
}

func (r *Renderer) title(cols int) string {
	title := r.song.Metadata.Title
	if author := r.song.Metadata.Author; author != "" {
		title += " · " + author
	}
	return runewidth.Truncate(title, max(1, cols-titleIndent), "…")
}

func (r *Renderer) renderLine(i int) string {
	current, active := r.positions[i]
	if !active {
		return r.styles.Inactive.Render(r.texts[i])
	}

	var sb strings.Builder
	for j, syllable := range r.song.Lines[i].Syllables {
		sb.WriteString(r.styles.forClass(Classify(j, current)).Render(syllable))
	}
	return sb.String()
}

package info

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/karaoke/cmd/common"
	"github.com/gigurra/karaoke/cmd/timing"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type Params struct {
	Path    string `pos:"true" help:"Timing file to describe."`
	NoLines bool   `optional:"true" help:"Only show metadata and totals."`
	JSON    bool   `optional:"true" help:"Output as JSON."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "info <file>",
		Short:       "Show metadata and line timings of a timing file",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			common.ExitOnError("info", Run(params, os.Stdout))
		},
	}.ToCobra()
}

// Summary describes a song for humans and scripts.
type Summary struct {
	Metadata      map[string]string `json:"metadata"`
	Lines         int               `json:"lines"`
	Syllables     int               `json:"syllables"`
	EndSeconds    float64           `json:"end_seconds"`
	OverlapLines  int               `json:"overlapping_lines"`
	LeadInLines   int               `json:"lead_in_lines"`
	LineSummaries []LineSummary     `json:"line_details,omitempty"`
}

type LineSummary struct {
	Index     int     `json:"index"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Syllables int     `json:"syllables"`
	Text      string  `json:"text"`
}

func Run(params *Params, stdout io.Writer) error {
	song, err := timing.LoadFile(params.Path)
	if err != nil {
		return err
	}

	summary := Summarize(song, !params.NoLines)
	if params.JSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}

	renderSummary(summary, stdout)
	return nil
}

// Summarize collects metadata, totals and optionally per-line timings.
func Summarize(song *timing.Song, withLines bool) Summary {
	s := Summary{
		Metadata:   metadataMap(song.Metadata),
		Lines:      len(song.Lines),
		Syllables:  song.SyllableCount(),
		EndSeconds: song.End(),
		OverlapLines: lo.CountBy(lo.Range(len(song.Lines)), func(i int) bool {
			return overlapsPrevious(song.Lines, i)
		}),
		LeadInLines: lo.CountBy(song.Lines, func(l timing.Line) bool {
			return len(l.Offsets) > 1 && l.Offsets[0] > 0
		}),
	}
	if withLines {
		s.LineSummaries = lo.Map(song.Lines, func(l timing.Line, i int) LineSummary {
			return LineSummary{Index: i, Start: l.Start, End: l.End(), Syllables: len(l.Syllables), Text: l.Text()}
		})
	}
	return s
}

// overlapsPrevious reports whether line i starts before an earlier line ends.
func overlapsPrevious(lines []timing.Line, i int) bool {
	return lo.SomeBy(lines[:i], func(prev timing.Line) bool {
		return lines[i].Start < prev.End() && prev.Start < lines[i].End()
	})
}

func metadataMap(m timing.Metadata) map[string]string {
	all := map[string]string{
		"title":                 m.Title,
		"author":                m.Author,
		"album":                 m.Album,
		"instruments":           m.Instruments,
		"singer":                m.Singer,
		"features":              m.Features,
		"karaoke_lyrics_author": m.KaraokeLyricsAuthor,
		"karaoke_author":        m.KaraokeAuthor,
		"copyright":             m.Copyright,
	}
	for k, v := range m.Extra {
		all[k] = v
	}
	return lo.PickBy(all, func(_ string, v string) bool {
		return v != ""
	})
}

func renderSummary(s Summary, stdout io.Writer) {
	meta := table.NewWriter()
	meta.SetOutputMirror(stdout)
	meta.SetStyle(table.StyleLight)
	keys := lo.Keys(s.Metadata)
	sort.Strings(keys)
	for _, k := range keys {
		meta.AppendRow(table.Row{text.FgYellow.Sprint(k), s.Metadata[k]})
	}
	meta.AppendSeparator()
	meta.AppendRow(table.Row{"lines", s.Lines})
	meta.AppendRow(table.Row{"syllables", s.Syllables})
	meta.AppendRow(table.Row{"duration", formatSeconds(s.EndSeconds)})
	meta.AppendRow(table.Row{"overlapping lines", s.OverlapLines})
	meta.AppendRow(table.Row{"lines with lead-in", s.LeadInLines})
	meta.Render()

	if len(s.LineSummaries) == 0 {
		return
	}

	_, _ = fmt.Fprintln(stdout)
	lines := table.NewWriter()
	lines.SetOutputMirror(stdout)
	lines.SetStyle(table.StyleLight)
	lines.SetAllowedRowLength(termWidth())
	lines.AppendHeader(table.Row{"#", "Start", "End", "Syl", "Text"})
	for _, l := range s.LineSummaries {
		lines.AppendRow(table.Row{l.Index, formatSeconds(l.Start), formatSeconds(l.End), l.Syllables, strings.TrimSpace(l.Text)})
	}
	lines.Render()
}

func formatSeconds(v float64) string {
	minutes := int(v) / 60
	return fmt.Sprintf("%d:%06.3f", minutes, v-float64(minutes*60))
}

func termWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 120
}

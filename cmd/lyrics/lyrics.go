package lyrics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/atotto/clipboard"
	"github.com/gigurra/karaoke/cmd/common"
	"github.com/gigurra/karaoke/cmd/timing"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var clipboardWriteAll = clipboard.WriteAll

type Params struct {
	Path     string `pos:"true" help:"Timing file to read."`
	Copy     bool   `short:"c" optional:"true" help:"Copy the lyrics to the clipboard instead of printing them."`
	Numbered bool   `short:"n" optional:"true" help:"Prefix every line with its index."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "lyrics <file>",
		Short:       "Print the plain lyrics of a timing file",
		Long:        "Print the lyrics of a timing file without any timing information, one line per karaoke line.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			common.ExitOnError("lyrics", Run(params, os.Stdout))
		},
	}.ToCobra()
}

func Run(params *Params, stdout io.Writer) error {
	song, err := timing.LoadFile(params.Path)
	if err != nil {
		return err
	}

	text := Text(song, params.Numbered)
	if params.Copy {
		if err := clipboardWriteAll(text); err != nil {
			return fmt.Errorf("failed to write to clipboard: %w", err)
		}
		_, _ = fmt.Fprintf(stdout, "Copied %d lines to the clipboard\n", len(song.Lines))
		return nil
	}

	_, err = fmt.Fprintln(stdout, text)
	return err
}

// Text joins the plain text of every line of song.
func Text(song *timing.Song, numbered bool) string {
	lines := song.Texts()
	if numbered {
		width := len(fmt.Sprint(max(len(lines)-1, 0)))
		lines = lo.Map(lines, func(l string, i int) string {
			return fmt.Sprintf("%*d  %s", width, i, l)
		})
	}
	return strings.Join(lines, "\n")
}

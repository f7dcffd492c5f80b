package check

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/karaoke/cmd/common"
	"github.com/gigurra/karaoke/cmd/timing"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var ErrCheckFailed = errors.New("some timing files are invalid")

type Params struct {
	Files []string `pos:"true" required:"true" help:"Timing files to validate."`
	Quiet bool     `short:"q" optional:"true" help:"Only report invalid files."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "check <file>...",
		Short:       "Validate timing files",
		Long:        "Load every given timing file and report schema problems, naming the offending line.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			common.ExitOnError("check", Run(params, os.Stdout))
		},
	}.ToCobra()
}

func Run(params *Params, stdout io.Writer) error {
	failed := 0
	for _, path := range params.Files {
		song, err := timing.LoadFile(path)
		if err != nil {
			failed++
			_, _ = fmt.Fprintf(stdout, "%s %v\n", text.FgRed.Sprint("FAIL"), err)
			continue
		}
		if !params.Quiet {
			_, _ = fmt.Fprintf(stdout, "%s   %s (%d lines, %d syllables, %.2fs)\n",
				text.FgGreen.Sprint("OK"), path, len(song.Lines), song.SyllableCount(), song.End())
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrCheckFailed, failed, len(params.Files))
	}
	return nil
}

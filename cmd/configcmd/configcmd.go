package configcmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/karaoke/cmd/common"
	"github.com/gigurra/karaoke/cmd/common/config"
	"github.com/spf13/cobra"
)

type Params struct {
	Init  bool `optional:"true" help:"Write the default config file."`
	Force bool `optional:"true" help:"Overwrite an existing config file when used with --init."`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "config",
		Short:       "Show or initialize the player configuration",
		Long:        "Print the effective configuration, or write the defaults to " + config.ConfigPath() + " with --init.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			common.ExitOnError("config", Run(params, config.ConfigPath(), os.Stdout))
		},
	}.ToCobra()
}

func Run(params *Params, path string, stdout io.Writer) error {
	if params.Init {
		if _, err := os.Stat(path); err == nil && !params.Force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.SaveTo(path, config.DefaultConfig()); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "Wrote %s\n", path)
		return nil
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "# %s\n%s\n", path, data)
	return nil
}

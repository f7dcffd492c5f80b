package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/karaoke/cmd/check"
	"github.com/gigurra/karaoke/cmd/configcmd"
	"github.com/gigurra/karaoke/cmd/info"
	"github.com/gigurra/karaoke/cmd/lyrics"
	"github.com/gigurra/karaoke/cmd/play"
	"github.com/spf13/cobra"
)

// Command group IDs
const (
	groupPlayback = "playback"
	groupFiles    = "files"
	groupSettings = "settings"
)

// withGroup sets the GroupID on a command and returns it
func withGroup(cmd *cobra.Command, group string) *cobra.Command {
	cmd.GroupID = group
	return cmd
}

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "karaoke",
		Short:   "Terminal karaoke lyrics player",
		Version: appVersion(),
		Groups: []*cobra.Group{
			{ID: groupPlayback, Title: "Playback:"},
			{ID: groupFiles, Title: "Timing Files:"},
			{ID: groupSettings, Title: "Settings:"},
		},
		SubCmds: []*cobra.Command{
			withGroup(play.Cmd(), groupPlayback),

			withGroup(lyrics.Cmd(), groupFiles),
			withGroup(info.Cmd(), groupFiles),
			withGroup(check.Cmd(), groupFiles),

			withGroup(configcmd.Cmd(), groupSettings),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuilInfo := debug.ReadBuildInfo()
	if !hasBuilInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}

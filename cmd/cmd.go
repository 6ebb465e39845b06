package cmd

import (
	"github.com/dwc-revival/nasd/nas"
	"github.com/dwc-revival/nasd/std/utils"
	"github.com/dwc-revival/nasd/tools"
	"github.com/spf13/cobra"
)

const banner = `
  _ __   __ _ ___  __| |
 | '_ \ / _' / __|/ _' |
 | | | | (_| \__ \ (_| |
 |_| |_|\__,_|___/\__,_|

Console network login emulator
`

var CmdNasd = &cobra.Command{
	Use:     "nasd",
	Short:   "Console network login emulator",
	Long:    banner[1:],
	Version: utils.NasdVersion,
}

func init() {
	cobra.EnableCommandSorting = false
	CmdNasd.Root().CompletionOptions.HiddenDefaultCmd = true
	CmdNasd.PersistentFlags().BoolP("help", "h", false, "Print usage")
	CmdNasd.PersistentFlags().Lookup("help").Hidden = true

	CmdNasd.AddGroup(&cobra.Group{ID: "run", Title: "Daemon"})
	CmdNasd.AddCommand(nas.CmdNas)

	CmdNasd.AddGroup(&cobra.Group{ID: "tools", Title: "Debug Tools"})
	CmdNasd.AddCommand(tools.CmdEncode())
	CmdNasd.AddCommand(tools.CmdDecode())
	CmdNasd.AddCommand(tools.CmdToken())
	CmdNasd.AddCommand(tools.CmdLogin())
}

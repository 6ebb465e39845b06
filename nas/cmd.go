package nas

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dwc-revival/nasd/std/log"
	"github.com/dwc-revival/nasd/std/utils"
	"github.com/dwc-revival/nasd/std/utils/toolutils"
	"github.com/spf13/cobra"
)

var CmdNas = &cobra.Command{
	Use:     "run CONFIG-FILE",
	Short:   "Start the NAS login server",
	GroupID: "run",
	Version: utils.NasdVersion,
	Args:    cobra.ExactArgs(1),
	Run:     run,
}

func run(cmd *cobra.Command, args []string) {
	config := DefaultConfig()
	if err := toolutils.ReadYaml(config, args[0]); err != nil {
		log.Fatal(nil, "Unable to read configuration", "err", err)
	}
	config.BaseDir = filepath.Dir(args[0])

	if err := config.Parse(); err != nil {
		log.Fatal(nil, "Configuration error", "err", err)
	}
	if err := log.Open(config.Nas.LogFile, config.Nas.LogLevel, config.Nas.LogJson); err != nil {
		log.Fatal(nil, "Unable to open logger", "err", err)
	}
	defer log.Close()

	server := NewServer(config)
	if err := server.Start(); err != nil {
		log.Fatal(nil, "Failed to start NAS server", "err", err)
	}
	defer server.Stop()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM)
	<-sigChannel
}

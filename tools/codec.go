package tools

import (
	"fmt"
	"os"

	"github.com/dwc-revival/nasd/nas/codec"
	"github.com/dwc-revival/nasd/nas/handshake"
	"github.com/dwc-revival/nasd/std/log"
	"github.com/dwc-revival/nasd/std/utils/toolutils"
	"github.com/spf13/cobra"
)

func CmdEncode() *cobra.Command {
	return &cobra.Command{
		GroupID: "tools",
		Use:     "encode TEXT",
		Short:   "Encode text into the NAS wire form",
		Args:    cobra.ExactArgs(1),
		Example: `  nasd encode gamespy.com`,
		Run: func(_ *cobra.Command, args []string) {
			fmt.Println(codec.EncodeString(args[0]))
		},
	}
}

func CmdDecode() *cobra.Command {
	strict := false
	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "decode VALUE",
		Short:   "Decode a NAS wire value",
		Args:    cobra.ExactArgs(1),
		Example: `  nasd decode Z2FtZXNweS5jb20*`,
		Run: func(_ *cobra.Command, args []string) {
			if !strict {
				fmt.Println(codec.DecodeString(args[0]))
				return
			}
			b, err := codec.DecodeStrict(args[0])
			if err != nil {
				log.Fatal(nil, "Invalid value", "err", err)
				return
			}
			fmt.Println(string(b))
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on malformed input")
	return cmd
}

func CmdToken() *cobra.Command {
	return &cobra.Command{
		GroupID: "tools",
		Use:     "token TOKEN",
		Short:   "Show the fields carried by a login token",
		Args:    cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			authKey, err := codec.ParseToken(args[0])
			if err != nil {
				log.Fatal(nil, "Invalid token", "err", err)
				return
			}
			printAuthKey(string(authKey))
		},
	}
}

func printAuthKey(authKey string) {
	fields, challenge := handshake.ParseAuthKey(authKey)
	p := toolutils.StatusPrinter{File: os.Stdout, Padding: 12}
	for _, f := range fields {
		p.Print(f.Name, f.Value)
	}
	p.Print(handshake.ChallengeField, challenge)
}

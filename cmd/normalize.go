package cmd

import (
	"github.com/ArnaudCalmettes/fsiv/imp"
	"github.com/ArnaudCalmettes/fsiv/input"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <input> <output>",
	Short: "Stretch every channel of an image so it spans [0, 255]",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := input.Open(args[0], imp.AnyColor)
		if err != nil {
			return err
		}
		out, err := imp.Normalize(in)
		if err != nil {
			return err
		}
		return imp.SaveMat(args[1], out)
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

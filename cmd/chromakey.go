package cmd

import (
	"github.com/ArnaudCalmettes/fsiv/imp"
	"github.com/ArnaudCalmettes/fsiv/input"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	chromaParams = imp.DefaultChromaKeyParams
	chromaMask   string
)

var chromaKeyCmd = &cobra.Command{
	Use:   "chromakey <foreground> <background> <output>",
	Short: "Replace the background of an image based on color",
	Long: `Replace every foreground pixel whose hue is within key±sensitivity with
the matching background pixel. Hues are expressed in [0, 180] (degrees
halved), so green is 60. The background is resized to the foreground size
if needed.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return replaceBackground(args[0], args[1], args[2], chromaMask, chromaParams)
	},
}

func init() {
	rootCmd.AddCommand(chromaKeyCmd)

	chromaKeyCmd.Flags().IntVarP(&chromaParams.Hue, "key", "k", chromaParams.Hue, "chroma key (hue), in [0, 180]")
	chromaKeyCmd.Flags().IntVarP(&chromaParams.Sensitivity, "sensitivity", "s", chromaParams.Sensitivity, "hue sensitivity, in [0, 128]")
	chromaKeyCmd.Flags().StringVar(&chromaMask, "mask", "", "also save the computed mask to this file")
}

func replaceBackground(fgPath, bgPath, outPath, maskPath string, p imp.ChromaKeyParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	fg, err := input.Open(fgPath, imp.Color)
	if err != nil {
		return err
	}
	bg, err := input.Open(bgPath, imp.Color)
	if err != nil {
		return err
	}

	out, mask, err := imp.ChromaKey(fg, bg, p)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"key":         p.Hue,
		"sensitivity": p.Sensitivity,
		"output":      outPath,
	}).Info("Saving composited image")
	if err := imp.SaveMat(outPath, out); err != nil {
		return err
	}
	if maskPath != "" {
		return imp.SaveMat(maskPath, mask)
	}
	return nil
}

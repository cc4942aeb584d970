package cmd

import (
	"github.com/ArnaudCalmettes/fsiv/imp"
	"github.com/ArnaudCalmettes/fsiv/input"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cbgParams = imp.DefaultCBGParams

var cbgCmd = &cobra.Command{
	Use:   "cbg <input> <output>",
	Short: "Adjust the contrast/brightness/gamma of an image",
	Long: `Adjust the contrast/brightness/gamma of an image:

    out = contrast * in^gamma + brightness

computed on samples scaled to [0, 1]. With --luma, color images are only
processed on their V (luma) plane.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return adjustImage(args[0], args[1], cbgParams)
	},
}

func init() {
	rootCmd.AddCommand(cbgCmd)

	cbgCmd.Flags().Float64VarP(&cbgParams.Contrast, "contrast", "c", cbgParams.Contrast, "contrast, in [0, 2]")
	cbgCmd.Flags().Float64VarP(&cbgParams.Brightness, "bright", "b", cbgParams.Brightness, "brightness, in [-1, 1]")
	cbgCmd.Flags().Float64VarP(&cbgParams.Gamma, "gamma", "g", cbgParams.Gamma, "gamma, in [0, 2]")
	cbgCmd.Flags().BoolVarP(&cbgParams.OnlyLuma, "luma", "l", cbgParams.OnlyLuma, "only process luma on color images")
}

func adjustImage(src, dst string, p imp.CBGParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	in, err := input.Open(src, imp.AnyColor)
	if err != nil {
		return err
	}
	out, err := imp.CBG(in, p)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"contrast": p.Contrast,
		"bright":   p.Brightness,
		"gamma":    p.Gamma,
		"luma":     p.OnlyLuma,
		"output":   dst,
	}).Info("Saving adjusted image")
	return imp.SaveMat(dst, out)
}

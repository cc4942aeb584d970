package cmd

import (
	"fmt"
	"io"

	"github.com/ArnaudCalmettes/fsiv/imp"
	"github.com/ArnaudCalmettes/fsiv/imp/cvscan"
	"github.com/ArnaudCalmettes/fsiv/input"
	"github.com/ArnaudCalmettes/fsiv/models"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type extremesOptions struct {
	approx     bool
	concurrent bool
	record     bool
}

var extremesOpts extremesOptions

var extremesCmd = &cobra.Command{
	Use:   "extremes <image>...",
	Short: "Show the extreme values of each channel and their locations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var db *gorm.DB
		if extremesOpts.record {
			var err error
			if db, err = models.Open(viper.GetString("db")); err != nil {
				return err
			}
			defer db.Close()
		}
		return showExtremes(cmd.OutOrStdout(), db, args, extremesOpts)
	},
}

func init() {
	rootCmd.AddCommand(extremesCmd)

	extremesCmd.Flags().BoolVar(&extremesOpts.approx, "approx", false, "use OpenCV's MinMaxLoc (locations may not be the first ones)")
	extremesCmd.Flags().BoolVar(&extremesOpts.concurrent, "concurrent", false, "scan channels concurrently")
	extremesCmd.Flags().BoolVar(&extremesOpts.record, "record", false, "record results in the scan history")
}

func (o extremesOptions) scanner() func(*imp.Mat) (*imp.Extrema, error) {
	switch {
	case o.approx:
		return cvscan.ApproximateExtrema
	case o.concurrent:
		return imp.FindExtremaConcurrent
	}
	return imp.FindExtrema
}

// showExtremes scans every image and prints a report for each of them.
// Results are recorded when db is not nil.
func showExtremes(w io.Writer, db *gorm.DB, paths []string, o extremesOptions) error {
	scan := o.scanner()
	for _, path := range paths {
		m, err := input.Open(path, imp.AnyColor)
		if err != nil {
			return err
		}
		e, err := scan(m)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		fmt.Fprintf(w, "=== %s (%dx%d, %d channel(s)) ===\n", path, m.Cols, m.Rows, m.Channels)
		fmt.Fprint(w, e)

		if db != nil {
			s := models.NewScan(path, "", m, e, !o.approx)
			if err := s.Create(db); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"source": path, "id": s.ID}).Debug("Recorded scan")
		}
	}
	return nil
}

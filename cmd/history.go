package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ArnaudCalmettes/fsiv/models"
	"github.com/jinzhu/gorm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	historyLimit int
	historyGuild string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded scans",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := models.Open(viper.GetString("db"))
		if err != nil {
			return err
		}
		defer db.Close()
		return printHistory(cmd.OutOrStdout(), db, historyGuild, historyLimit)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of scans to list (0 for all)")
	historyCmd.Flags().StringVar(&historyGuild, "guild", "", "list scans recorded by the bot on this Discord server")
}

func printHistory(out io.Writer, db *gorm.DB, guildID string, limit int) error {
	scans, err := models.ListScans(db, guildID, limit)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tIMAGE\tSIZE\tCHANNELS\tEXACT\tSCANNED\t")
	for _, s := range scans {
		fmt.Fprintf(w, "%d\t%s\t%dx%d\t%d\t%t\t%s\t\n",
			s.ID, s.Source, s.Cols, s.Rows, s.Channels, s.Exact, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

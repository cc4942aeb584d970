package cmd

import (
	"github.com/ArnaudCalmettes/fsiv/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Perform automatic database migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := models.Open(viper.GetString("db"))
		if err != nil {
			return err
		}
		logrus.WithField("db", viper.GetString("db")).Info("Database is up to date")
		return db.Close()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ArnaudCalmettes/fsiv/input"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	// configUsed is the config file actually read, if any.
	configUsed string
)

var rootCmd = &cobra.Command{
	Use:   "fsiv",
	Short: "Computer vision exercises toolkit",
	Long: `A toolkit implementing the classic exercises of an introductory computer
vision course: extrema scanning, contrast/brightness/gamma adjustment,
chroma keying... It can also run as a Discord bot scanning posted images.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fsiv.yaml)")
	rootCmd.PersistentFlags().String("db", "fsiv.sqlite", "scan history database")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("log.format", "text")
	viper.SetDefault("bot.prefix", ".")
	viper.SetDefault("bot.fetch_timeout", "30s")
	viper.SetDefault("bot.max_bytes", input.DefaultMaxBytes)
	viper.SetDefault("bot.max_pixels", input.DefaultMaxPixels)
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".fsiv" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".fsiv")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("FSIV")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	configUsed = ""
	if err := viper.ReadInConfig(); err == nil {
		configUsed = viper.ConfigFileUsed()
	}
}

func initLogging() {
	level, err := logrus.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		logrus.WithError(err).Warn("Unknown log level, falling back to info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	if viper.GetString("log.format") == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	if configUsed != "" {
		logrus.WithField("file", configUsed).Debug("Using config file")
	}
}

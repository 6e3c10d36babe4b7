package cmd

import (
	"github.com/project-hatohol/hatohol-server/config"
	"github.com/project-hatohol/hatohol-server/utils/log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hatohol-server",
	Short: "Unified monitoring dashboard server",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Load(conf, verbose); err != nil {
			log.NewEntry(err).Fatal("Failed to load config")
		}
	},
}

var conf string
var verbose bool

func init() {
	rootCmd.PersistentFlags().StringVarP(&conf, "conf", "c", "conf.yml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show verbose")
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

package cmd

import (
	"fmt"

	"github.com/project-hatohol/hatohol-server/security"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hatohol-server %v (user schema %v)\n",
			Version, security.UserSchemaVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/handler"
	"github.com/project-hatohol/hatohol-server/option"
	"github.com/project-hatohol/hatohol-server/security"
	"github.com/project-hatohol/hatohol-server/utils/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

// user add runs as the system pseudo user, it exists to bootstrap the
// first administrator before any login is possible.
var userAddCmd = &cobra.Command{
	Use:   "add <name> <password>",
	Short: "Add an administrator user",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := db.NewDB(viper.GetString("database.path"),
			viper.GetString("database.type"), verbose); err != nil {
			log.NewEntry(err).Fatal("Failed to connect database")
		}
		handler.Init()
		if err := handler.MigrateUserFlags(); err != nil {
			log.NewEntry(err).Fatal("Failed to migrate user flags")
		}
		id, err := handler.User.Add(args[0], args[1],
			security.AllPrivileges(), option.SystemPrivilege())
		if err != nil {
			log.NewEntry(err).Fatal("Failed to add user")
		}
		log.New().Infof("User %v added with id %v", args[0], id)
	},
}

func init() {
	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}

package main

import (
	"os"

	"github.com/project-hatohol/hatohol-server/cmd"
	"github.com/project-hatohol/hatohol-server/utils/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.NewEntry(err).Error("Command failed")
		os.Exit(1)
	}
}

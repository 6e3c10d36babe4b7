package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/project-hatohol/hatohol-server/api"
	"github.com/project-hatohol/hatohol-server/config"
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/handler"
	"github.com/project-hatohol/hatohol-server/utils/log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/unrolled/secure"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the dashboard server",
	Run:   run,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func setupLog() {
	if viper.GetBool("log.json") {
		log.SetJSONFormat()
	}
	if viper.GetBool("log.stack") {
		log.ShowStack()
	}
	var writers []io.Writer
	if viper.GetBool("log.console") {
		writers = append(writers, os.Stdout)
	}
	if path := viper.GetString("log.file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.NewEntry(err).Fatal("Failed to open log file")
		}
		writers = append(writers, f)
	}
	log.SetOutput(writers...)
}

func connect() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if _, err := db.NewDB(viper.GetString("database.path"),
		viper.GetString("database.type"), verbose); err != nil {
		log.NewEntry(err).Fatal("Failed to connect database")
	}
	redis, err := db.NewRedis(ctx, &db.RedisConfig{
		Address:  viper.GetString("redis.address"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	})
	if err != nil {
		log.NewEntry(err).Fatal("Failed to connect redis")
	}
	store, err := db.NewSession(ctx, &db.SessionConfig{
		RedisClient: redis,
		Prefix:      viper.GetString("session.prefix"),
	})
	if err != nil {
		log.NewEntry(err).Fatal("Failed to create session store")
	}
	api.SessionStore = store
}

func run(cmd *cobra.Command, args []string) {
	setupLog()
	config.CheckSetting()

	log.New().Info("========== Hatohol server start ==========")
	defer log.New().Info("========== Hatohol server end ==========")

	connect()
	handler.Init()
	if err := handler.MigrateUserFlags(); err != nil {
		log.NewEntry(err).Fatal("Failed to migrate user flags")
	}

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	})
	api.RegisterRoutes(engine)

	addr := viper.GetString("listen.address")
	log.New().Infof("Listening on %v", addr)
	if err := engine.Run(addr); err != nil {
		log.NewEntry(err).Fatal("Server error")
	}
}

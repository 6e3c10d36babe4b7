package config

import (
	"bytes"
	"os"

	"github.com/project-hatohol/hatohol-server/utils/log"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/ztrue/tracerr"
)

func init() {
	for _, v := range DefaultSetting {
		viper.SetDefault(v.Name, v.Value)
	}
}

// Config is one setting with its default value.
type Config struct {
	Name        string    // config name
	Value       any       // config default value
	WarnDefault bool      // show warning if unchanged
	Checker     func(any) // config checker
}

var DefaultSetting = []*Config{
	{Name: "debug", Value: false, Checker: func(v any) {
		if !v.(bool) {
			gin.SetMode(gin.ReleaseMode)
		} else {
			log.New().Warn("Debug mode is on, make it off when put into production")
		}
	}},
	{Name: "database.type", Value: "sqlite"},
	{Name: "database.path", Value: "hatohol.db"},
	{Name: "redis.address", Value: "127.0.0.1:6379"},
	{Name: "redis.password", Value: ""},
	{Name: "redis.db", Value: 0},
	{Name: "listen.address", Value: "0.0.0.0:33194"},
	{Name: "session.cookie", Value: "HATOHOLSESSID"},
	{Name: "session.prefix", Value: "session_"},
	{Name: "session.expire", Value: 3600},
	{Name: "log.console", Value: true},
	{Name: "log.file", Value: ""},
	{Name: "log.json", Value: false},
	{Name: "log.stack", Value: false},
}

// Load reads the yml config at path into viper.
func Load(path string, debug bool) error {
	viper.SetConfigType("yml")
	content, err := os.ReadFile(path)
	if err != nil {
		return tracerr.Wrap(err)
	}
	if err = viper.ReadConfig(bytes.NewBuffer(content)); err != nil {
		return tracerr.Wrap(err)
	}

	if debug || viper.GetBool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// CheckSetting warns about unchanged defaults and runs per-setting
// checkers.
func CheckSetting() {
	for _, v := range DefaultSetting {
		if v.WarnDefault && viper.Get(v.Name) == v.Value {
			log.New().Warnf("Setting %v has default value, please modify your config file for safety", v.Name)
		}
		if v.Checker != nil {
			v.Checker(viper.Get(v.Name))
		}
	}
}

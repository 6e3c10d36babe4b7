package db

import (
	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"github.com/ztrue/tracerr"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared gorm handle, set by NewDB.
var DB *gorm.DB

// NewDB connects the backend database and migrates all tables.
// driver is "sqlite" or "mysql".
func NewDB(dsn string, driver string, verbose bool) (*gorm.DB, error) {
	level := logger.Silent
	if verbose {
		level = logger.Info
	}
	config := &gorm.Config{
		Logger: logger.Default.LogMode(level),
	}

	var err error
	var ret *gorm.DB
	switch driver {
	case "sqlite":
		ret, err = gorm.Open(sqlite.Open(dsn), config)
	case "mysql":
		ret, err = gorm.Open(mysql.Open(dsn), config)
	default:
		log.Fatalf("Database driver %v not supported", driver)
	}
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	if err := ret.AutoMigrate(
		&User{},
		&AccessInfo{},
		&UserRole{},
		&Server{},
		&TableVersion{},
		&Trigger{},
		&Event{},
		&Item{},
		&Host{},
		&Hostgroup{},
		&HostgroupMember{},
	); err != nil {
		return nil, tracerr.Wrap(err)
	}

	DB = ret
	return ret, nil
}

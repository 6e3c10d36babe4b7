package handler

import (
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/security"
	"github.com/project-hatohol/hatohol-server/utils/log"
	"gorm.io/gorm"
)

const userTableFamily = "users"

// MigrateUserFlags upgrades stored capability bitsets after a schema bump.
// Every width transition between the stored and the current version
// rewrites bitsets equal to "all bits of the old width" to "all bits of
// the new width", so administrators keep capabilities introduced since
// their row was written. Runs in one transaction and is idempotent.
func MigrateUserFlags() error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		versions := db.NewORM[db.TableVersion](tx)
		stored, err := versions.Where("table_name = ?", userTableFamily).Take()
		if err != nil {
			return err
		}
		if stored == nil {
			// fresh database, nothing to reinterpret
			return versions.Create(&db.TableVersion{
				TableName: userTableFamily,
				Version:   security.UserSchemaVersion,
			})
		}
		if stored.Version == security.UserSchemaVersion {
			return nil
		}

		transitions, err := security.FlagTransitions(stored.Version)
		if err != nil {
			return err
		}
		users := db.NewORM[db.User](tx)
		for _, t := range transitions {
			oldBits := uint64(security.AllBits(t.OldWidth))
			newBits := uint64(security.AllBits(t.NewWidth))
			if err := users.Where("flags = ?", oldBits).
				Update("flags", newBits); err != nil {
				return err
			}
			log.New().Infof("User flags migrated for version %v: width %v -> %v",
				t.Version, t.OldWidth, t.NewWidth)
		}
		stored.Version = security.UserSchemaVersion
		return versions.Save(stored)
	})
}

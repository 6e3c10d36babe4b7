package option

import (
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/security"
)

// Privilege binds a capability bitset to the user it was loaded for.
// It is a pure predicate, holding it performs no I/O.
type Privilege struct {
	userID db.UserID
	flags  security.Flags
}

// NewPrivilege wraps a raw bitset with no user attached.
func NewPrivilege(flags security.Flags) Privilege {
	return Privilege{userID: db.InvalidUserID, flags: flags}
}

// NewUserPrivilege wraps the bitset loaded for userID.
func NewUserPrivilege(userID db.UserID, flags security.Flags) Privilege {
	return Privilege{userID: userID, flags: flags}
}

// SystemPrivilege acts as the internal pseudo user, which passes every
// capability check.
func SystemPrivilege() Privilege {
	return Privilege{userID: db.SystemUserID, flags: security.AllPrivileges()}
}

func (p Privilege) UserID() db.UserID {
	return p.userID
}

func (p Privilege) Flags() security.Flags {
	return p.flags
}

func (p Privilege) Has(bit security.FlagBit) bool {
	if p.userID == db.SystemUserID {
		return true
	}
	return p.flags.Has(bit)
}

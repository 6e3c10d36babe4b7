package handler

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/errcode"
	"github.com/project-hatohol/hatohol-server/option"
	"github.com/project-hatohol/hatohol-server/security"
	"gorm.io/gorm"
)

type UserImpl struct {
	tx   *gorm.DB
	user *db.ORM[db.User]
}

func (u *UserImpl) WithTx(tx *gorm.DB) *UserImpl {
	if tx == nil {
		tx = db.DB
	}
	return &UserImpl{
		tx:   tx,
		user: db.NewORM[db.User](tx),
	}
}

// HashPassword returns the hex SHA-256 digest stored in place of the
// cleartext.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Add creates a user. Requires CreateUser. The duplicate check and the
// insert share one transaction so a concurrent Add cannot slip a duplicate
// past the pre-check.
func (u *UserImpl) Add(name string, password string, flags security.Flags,
	priv option.Privilege) (db.UserID, error) {
	if !priv.Has(security.CreateUser) {
		return db.InvalidUserID, errcode.New(errcode.NoPrivilege)
	}
	if err := security.ValidateUserName(name); err != nil {
		return db.InvalidUserID, err
	}
	if err := security.ValidatePassword(password); err != nil {
		return db.InvalidUserID, err
	}
	if err := security.ValidateFlags(flags); err != nil {
		return db.InvalidUserID, err
	}

	user := &db.User{
		Name:     name,
		Password: HashPassword(password),
		Flags:    uint64(flags),
	}
	err := u.tx.Transaction(func(tx *gorm.DB) error {
		tu := u.WithTx(tx)
		existing, err := tu.user.Where("name = ?", name).Take()
		if err != nil {
			return err
		}
		if existing != nil {
			return errcode.New(errcode.UserNameExist)
		}
		return tu.user.Create(user)
	})
	if err != nil {
		return db.InvalidUserID, err
	}
	return user.ID, nil
}

// Update rewrites a user row. Permitted with UpdateUser, or for the
// caller's own record when every field except the password matches the
// stored row; the equality check is what blocks privilege escalation
// through self update. An empty password keeps the stored digest.
func (u *UserImpl) Update(id db.UserID, name string, password string,
	flags security.Flags, priv option.Privilege) error {
	if err := security.ValidateUserName(name); err != nil {
		return err
	}
	if password != "" {
		if err := security.ValidatePassword(password); err != nil {
			return err
		}
	}
	if err := security.ValidateFlags(flags); err != nil {
		return err
	}

	return u.tx.Transaction(func(tx *gorm.DB) error {
		tu := u.WithTx(tx)
		stored, err := tu.user.ID(id).Take()
		if err != nil {
			return err
		}
		if stored == nil {
			return errcode.New(errcode.NotFoundTargetRecord)
		}

		if !priv.Has(security.UpdateUser) {
			selfPasswordOnly := priv.UserID() == id &&
				name == stored.Name &&
				uint64(flags) == stored.Flags
			if !selfPasswordOnly {
				return errcode.New(errcode.NoPrivilege)
			}
		}

		if name != stored.Name {
			other, err := tu.user.Where("name = ? AND id <> ?", name, id).Take()
			if err != nil {
				return err
			}
			if other != nil {
				return errcode.New(errcode.UserNameExist)
			}
		}

		stored.Name = name
		stored.Flags = uint64(flags)
		if password != "" {
			stored.Password = HashPassword(password)
		}
		return tu.user.Save(stored)
	})
}

// UpdateFlags bulk-rewrites the flags of every user currently holding
// exactly oldFlags. Requires UpdateUser.
func (u *UserImpl) UpdateFlags(oldFlags security.Flags, newFlags security.Flags,
	priv option.Privilege) error {
	if !priv.Has(security.UpdateUser) {
		return errcode.New(errcode.NoPrivilege)
	}
	if err := security.ValidateFlags(newFlags); err != nil {
		return err
	}
	return u.user.Where("flags = ?", uint64(oldFlags)).
		Update("flags", uint64(newFlags))
}

// Delete removes a user and cascades their access grants. Requires
// DeleteUser; deleting yourself is rejected.
func (u *UserImpl) Delete(id db.UserID, priv option.Privilege) error {
	if !priv.Has(security.DeleteUser) {
		return errcode.New(errcode.NoPrivilege)
	}
	if id == priv.UserID() {
		return errcode.New(errcode.DeleteMyself)
	}
	return u.tx.Transaction(func(tx *gorm.DB) error {
		tu := u.WithTx(tx)
		ok, err := tu.user.DeleteID(id)
		if err != nil {
			return err
		}
		if !ok {
			return errcode.New(errcode.NotFoundTargetRecord)
		}
		_, err = db.NewORM[db.AccessInfo](tx).Where("user_id = ?", id).Delete()
		return err
	})
}

// GetUserID authenticates name/password, returning InvalidUserID unless
// both pass the validity rules and match a stored row.
func (u *UserImpl) GetUserID(name string, password string) (db.UserID, error) {
	if security.ValidateUserName(name) != nil ||
		security.ValidatePassword(password) != nil {
		return db.InvalidUserID, nil
	}
	user, err := u.user.Where("name = ? AND password = ?",
		name, HashPassword(password)).Take()
	if err != nil {
		return db.InvalidUserID, err
	}
	if user == nil {
		return db.InvalidUserID, nil
	}
	return user.ID, nil
}

// Get returns the users visible through opt.
func (u *UserImpl) Get(opt *option.UserQueryOption) ([]*db.User, error) {
	cond, err := opt.Condition()
	if err != nil {
		return nil, err
	}
	if cond.IsAlwaysFalse() {
		return []*db.User{}, nil
	}
	return u.user.Cond(opt.ToDBCondition(cond)).Find()
}

// GetByID returns one user row, nil when absent.
func (u *UserImpl) GetByID(id db.UserID) (*db.User, error) {
	return u.user.ID(id).Take()
}

// PrivilegeOf loads the capability bitset of one user. An unknown id
// yields the invalid, empty privilege.
func (u *UserImpl) PrivilegeOf(id db.UserID) (option.Privilege, error) {
	if id == db.SystemUserID {
		return option.SystemPrivilege(), nil
	}
	user, err := u.user.ID(id).Take()
	if err != nil {
		return option.NewPrivilege(security.NonePrivilege), err
	}
	if user == nil {
		return option.NewPrivilege(security.NonePrivilege), nil
	}
	return option.NewUserPrivilege(user.ID, security.Flags(user.Flags)), nil
}

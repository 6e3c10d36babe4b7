package handler

import (
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/errcode"
	"github.com/project-hatohol/hatohol-server/option"
	"github.com/project-hatohol/hatohol-server/security"
	"gorm.io/gorm"
)

type RoleImpl struct {
	tx   *gorm.DB
	role *db.ORM[db.UserRole]
}

func (r *RoleImpl) WithTx(tx *gorm.DB) *RoleImpl {
	if tx == nil {
		tx = db.DB
	}
	return &RoleImpl{
		tx:   tx,
		role: db.NewORM[db.UserRole](tx),
	}
}

// reservedFlags rejects the built-in bitsets, those are not storable as
// named roles.
func reservedFlags(flags security.Flags) bool {
	return flags == security.AllPrivileges() || flags == security.NonePrivilege
}

func validateRole(name string, flags security.Flags) error {
	if err := security.ValidateUserRoleName(name); err != nil {
		return err
	}
	if err := security.ValidateFlags(flags); err != nil {
		return err
	}
	if reservedFlags(flags) {
		return errcode.New(errcode.InvalidPrivilegeFlags)
	}
	return nil
}

// Add creates a role. Requires CreateUserRole. Name and flags must each be
// unique among roles, a collision on either is rejected.
func (r *RoleImpl) Add(name string, flags security.Flags,
	priv option.Privilege) (int64, error) {
	if !priv.Has(security.CreateUserRole) {
		return 0, errcode.New(errcode.NoPrivilege)
	}
	if err := validateRole(name, flags); err != nil {
		return 0, err
	}
	role := &db.UserRole{Name: name, Flags: uint64(flags)}
	err := r.tx.Transaction(func(tx *gorm.DB) error {
		tr := r.WithTx(tx)
		existing, err := tr.role.Where("name = ? OR flags = ?",
			name, uint64(flags)).Take()
		if err != nil {
			return err
		}
		if existing != nil {
			return errcode.New(errcode.UserRoleNameOrFlagsExist)
		}
		return tr.role.Create(role)
	})
	if err != nil {
		return 0, err
	}
	return role.ID, nil
}

// Update rewrites a role. Requires UpdateAllUserRole.
func (r *RoleImpl) Update(id int64, name string, flags security.Flags,
	priv option.Privilege) error {
	if !priv.Has(security.UpdateAllUserRole) {
		return errcode.New(errcode.NoPrivilege)
	}
	if err := validateRole(name, flags); err != nil {
		return err
	}
	return r.tx.Transaction(func(tx *gorm.DB) error {
		tr := r.WithTx(tx)
		stored, err := tr.role.ID(id).Take()
		if err != nil {
			return err
		}
		if stored == nil {
			return errcode.New(errcode.NotFoundTargetRecord)
		}
		other, err := tr.role.Where("(name = ? OR flags = ?) AND id <> ?",
			name, uint64(flags), id).Take()
		if err != nil {
			return err
		}
		if other != nil {
			return errcode.New(errcode.UserRoleNameOrFlagsExist)
		}
		stored.Name = name
		stored.Flags = uint64(flags)
		return tr.role.Save(stored)
	})
}

// Delete removes a role. Requires DeleteAllUserRole.
func (r *RoleImpl) Delete(id int64, priv option.Privilege) error {
	if !priv.Has(security.DeleteAllUserRole) {
		return errcode.New(errcode.NoPrivilege)
	}
	ok, err := r.role.DeleteID(id)
	if err != nil {
		return err
	}
	if !ok {
		return errcode.New(errcode.NotFoundTargetRecord)
	}
	return nil
}

// Get returns the roles visible through opt.
func (r *RoleImpl) Get(opt *option.UserRoleQueryOption) ([]*db.UserRole, error) {
	cond, err := opt.Condition()
	if err != nil {
		return nil, err
	}
	if cond.IsAlwaysFalse() {
		return []*db.UserRole{}, nil
	}
	return r.role.Cond(opt.ToDBCondition(cond)).Find()
}

package option

import (
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/security"
)

// UserQueryOption restricts queries over the users table. Without the
// GetAllUser capability the caller only ever sees their own row, whatever
// other filters are supplied.
type UserQueryOption struct {
	DataQueryOption

	targetName  string
	targetFlags security.Flags
	hasFlags    bool
	onlyMyself  bool
}

func NewUserQueryOption(ctx *DataQueryContext) *UserQueryOption {
	return &UserQueryOption{DataQueryOption: NewDataQueryOption(ctx)}
}

func (o *UserQueryOption) SetTargetName(name string) {
	o.targetName = name
}

func (o *UserQueryOption) SetTargetFlags(flags security.Flags) {
	o.targetFlags = flags
	o.hasFlags = true
}

// SetOnlyMyself forces the condition to the caller's own row even when
// GetAllUser is held.
func (o *UserQueryOption) SetOnlyMyself(only bool) {
	o.onlyMyself = only
}

func (o *UserQueryOption) Condition() (Cond, error) {
	if !o.validUser() {
		return AlwaysFalse(), nil
	}

	cond := Unrestricted()
	if o.onlyMyself || !o.Has(security.GetAllUser) {
		cond = cond.And(Exprf("id=%v", intLiteral(o.UserID())))
	}
	if o.targetName != "" {
		if err := security.ValidateUserName(o.targetName); err != nil {
			return Cond{}, err
		}
		cond = cond.And(Exprf("name=%v", stringLiteral(o.targetName)))
	}
	if o.hasFlags {
		cond = cond.And(Exprf("flags=%v", intLiteral(uint64(o.targetFlags))))
	}
	return cond, nil
}

// AccessInfoQueryOption restricts queries over the access_list table to
// one target user. Reading another user's grants requires GetAllUser.
type AccessInfoQueryOption struct {
	DataQueryOption

	targetUserID db.UserID
}

func NewAccessInfoQueryOption(ctx *DataQueryContext) *AccessInfoQueryOption {
	return &AccessInfoQueryOption{
		DataQueryOption: NewDataQueryOption(ctx),
		targetUserID:    db.InvalidUserID,
	}
}

func (o *AccessInfoQueryOption) SetTargetUserID(id db.UserID) {
	o.targetUserID = id
}

func (o *AccessInfoQueryOption) TargetUserID() db.UserID {
	return o.targetUserID
}

func (o *AccessInfoQueryOption) Condition() (Cond, error) {
	if !o.validUser() {
		return AlwaysFalse(), nil
	}
	if o.targetUserID == db.InvalidUserID {
		return AlwaysFalse(), nil
	}
	if !o.Has(security.GetAllUser) && o.targetUserID != o.UserID() {
		return AlwaysFalse(), nil
	}
	return Exprf("user_id=%v", intLiteral(o.targetUserID)), nil
}

// UserRoleQueryOption restricts queries over the user_roles table. Role
// definitions are not owner scoped, so there is no implicit self
// restriction.
type UserRoleQueryOption struct {
	DataQueryOption

	targetRoleID int64
	hasRoleID    bool
}

func NewUserRoleQueryOption(ctx *DataQueryContext) *UserRoleQueryOption {
	return &UserRoleQueryOption{DataQueryOption: NewDataQueryOption(ctx)}
}

func (o *UserRoleQueryOption) SetTargetRoleID(id int64) {
	o.targetRoleID = id
	o.hasRoleID = true
}

func (o *UserRoleQueryOption) Condition() (Cond, error) {
	if !o.validUser() {
		return AlwaysFalse(), nil
	}
	if o.hasRoleID {
		return Exprf("id=%v", intLiteral(o.targetRoleID)), nil
	}
	return Unrestricted(), nil
}

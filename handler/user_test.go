package handler

import (
	"strings"
	"testing"

	"github.com/jinzhu/copier"
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/errcode"
	"github.com/project-hatohol/hatohol-server/option"
	"github.com/project-hatohol/hatohol-server/security"
	"github.com/stretchr/testify/assert"
)

func Test_User_Add(t *testing.T) {
	type args struct {
		name     string
		password string
		flags    security.Flags
		priv     option.Privilege
	}
	tests := []struct {
		name string
		args args
		want errcode.Code
	}{
		{"No privilege", args{"eve", "eve123", 0, alicePriv}, errcode.NoPrivilege},
		{"Empty name", args{"", "x", 0, adminPriv}, errcode.EmptyUserName},
		{"Invalid character", args{"bad name", "x", 0, adminPriv}, errcode.InvalidChar},
		{"Too long name", args{strings.Repeat("a", 129), "x", 0, adminPriv}, errcode.TooLongUserName},
		{"Empty password", args{"ab", "", 0, adminPriv}, errcode.EmptyPassword},
		{"Invalid flags", args{"ab", "x", security.AllPrivileges() + 1, adminPriv}, errcode.InvalidPrivilegeFlags},
		{"Duplicate name", args{"alice", "x", 0, adminPriv}, errcode.UserNameExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := User.Add(tt.args.name, tt.args.password,
				tt.args.flags, tt.args.priv)
			assert.True(t, errcode.Is(err, tt.want), err)
		})
	}

	t.Run("Rejected user leaves no row", func(t *testing.T) {
		row, err := db.NewORM[db.User](nil).Where("name = ?", "ab").Take()
		assert.Nil(t, err)
		assert.Nil(t, row)
	})

	t.Run("Success", func(t *testing.T) {
		id, err := User.Add("carol", "carol123",
			security.Flag(security.GetAllServer), adminPriv)
		assert.Nil(t, err)
		assert.Greater(t, id, db.SystemUserID)

		row, err := User.GetByID(id)
		assert.Nil(t, err)
		if assert.NotNil(t, row) {
			assert.Equal(t, "carol", row.Name)
			assert.Equal(t, HashPassword("carol123"), row.Password)
			assert.Equal(t, uint64(security.Flag(security.GetAllServer)), row.Flags)
		}
	})
}

func Test_User_GetUserID(t *testing.T) {
	type args struct {
		name     string
		password string
	}
	tests := []struct {
		name string
		args args
		want db.UserID
	}{
		{"Correct credentials", args{"admin", "admin123"}, adminID},
		{"Wrong password", args{"admin", "nope"}, db.InvalidUserID},
		{"Unknown user", args{"nobody", "admin123"}, db.InvalidUserID},
		{"Invalid name character", args{"bad name", "admin123"}, db.InvalidUserID},
		{"Empty password", args{"admin", ""}, db.InvalidUserID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := User.GetUserID(tt.args.name, tt.args.password)
			assert.Nil(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_User_Update(t *testing.T) {
	system := option.SystemPrivilege()
	daveID, err := User.Add("dave", "dave123", security.NonePrivilege, system)
	assert.Nil(t, err)
	davePriv := option.NewUserPrivilege(daveID, security.NonePrivilege)

	t.Run("Self password change", func(t *testing.T) {
		err := User.Update(daveID, "dave", "newpass", security.NonePrivilege, davePriv)
		assert.Nil(t, err)
		id, err := User.GetUserID("dave", "newpass")
		assert.Nil(t, err)
		assert.Equal(t, daveID, id)
	})
	t.Run("Self flags escalation denied", func(t *testing.T) {
		err := User.Update(daveID, "dave", "",
			security.AllPrivileges(), davePriv)
		assert.True(t, errcode.Is(err, errcode.NoPrivilege), err)
		row, _ := User.GetByID(daveID)
		assert.Equal(t, uint64(security.NonePrivilege), row.Flags)
	})
	t.Run("Self rename denied", func(t *testing.T) {
		err := User.Update(daveID, "dave2", "", security.NonePrivilege, davePriv)
		assert.True(t, errcode.Is(err, errcode.NoPrivilege), err)
	})
	t.Run("Other user without privilege", func(t *testing.T) {
		err := User.Update(aliceID, "alice", "pwned", security.NonePrivilege, davePriv)
		assert.True(t, errcode.Is(err, errcode.NoPrivilege), err)
	})
	t.Run("Rename collision", func(t *testing.T) {
		err := User.Update(daveID, "alice", "", security.NonePrivilege, adminPriv)
		assert.True(t, errcode.Is(err, errcode.UserNameExist), err)
	})
	t.Run("Not found", func(t *testing.T) {
		err := User.Update(9999, "ghost", "", security.NonePrivilege, adminPriv)
		assert.True(t, errcode.Is(err, errcode.NotFoundTargetRecord), err)
	})
	t.Run("Admin update keeps password when empty", func(t *testing.T) {
		stored, _ := User.GetByID(daveID)
		var before db.User
		assert.Nil(t, copier.Copy(&before, stored))
		err := User.Update(daveID, "david", "",
			security.Flag(security.GetAllServer), adminPriv)
		assert.Nil(t, err)
		after, _ := User.GetByID(daveID)
		assert.Equal(t, "david", after.Name)
		assert.Equal(t, uint64(security.Flag(security.GetAllServer)), after.Flags)
		assert.Equal(t, before.Password, after.Password)
	})
}

func Test_User_UpdateFlags(t *testing.T) {
	system := option.SystemPrivilege()
	old := security.Flag(security.CreateAction) | security.Flag(security.UpdateAction)
	updated := old | security.Flag(security.DeleteAction)

	f1, err := User.Add("flags1", "x12345", old, system)
	assert.Nil(t, err)
	f2, err := User.Add("flags2", "x12345", old, system)
	assert.Nil(t, err)
	f3, err := User.Add("flags3", "x12345", security.Flag(security.CreateAction), system)
	assert.Nil(t, err)

	t.Run("No privilege", func(t *testing.T) {
		err := User.UpdateFlags(old, updated, alicePriv)
		assert.True(t, errcode.Is(err, errcode.NoPrivilege), err)
	})
	t.Run("Bulk rewrite exact matches only", func(t *testing.T) {
		assert.Nil(t, User.UpdateFlags(old, updated, adminPriv))
		for _, id := range []db.UserID{f1, f2} {
			row, _ := User.GetByID(id)
			assert.Equal(t, uint64(updated), row.Flags)
		}
		row, _ := User.GetByID(f3)
		assert.Equal(t, uint64(security.Flag(security.CreateAction)), row.Flags)
	})
}

func Test_User_Delete(t *testing.T) {
	system := option.SystemPrivilege()
	tempID, err := User.Add("temp", "temp123", security.NonePrivilege, system)
	assert.Nil(t, err)
	_, err = Access.Add(&db.AccessInfo{
		UserID: tempID, ServerID: 1, HostgroupID: "9",
	}, system)
	assert.Nil(t, err)

	t.Run("No privilege", func(t *testing.T) {
		err := User.Delete(tempID, alicePriv)
		assert.True(t, errcode.Is(err, errcode.NoPrivilege), err)
	})
	t.Run("Delete myself", func(t *testing.T) {
		err := User.Delete(adminID, adminPriv)
		assert.True(t, errcode.Is(err, errcode.DeleteMyself), err)
		row, _ := User.GetByID(adminID)
		assert.NotNil(t, row)
	})
	t.Run("Cascade access grants", func(t *testing.T) {
		assert.Nil(t, User.Delete(tempID, adminPriv))
		row, _ := User.GetByID(tempID)
		assert.Nil(t, row)
		m, err := Access.ServerHostGrpSetMap(tempID)
		assert.Nil(t, err)
		assert.Empty(t, m)
	})
	t.Run("Not found", func(t *testing.T) {
		err := User.Delete(tempID, adminPriv)
		assert.True(t, errcode.Is(err, errcode.NotFoundTargetRecord), err)
	})
}

func Test_User_Get(t *testing.T) {
	t.Run("GetAllUser sees everyone", func(t *testing.T) {
		opt := option.NewUserQueryOption(queryCtx(adminPriv))
		rows, err := User.Get(opt)
		assert.Nil(t, err)
		names := map[string]bool{}
		for _, r := range rows {
			names[r.Name] = true
		}
		assert.True(t, names["admin"])
		assert.True(t, names["alice"])
		assert.True(t, names["bob"])
	})
	t.Run("Without GetAllUser only self", func(t *testing.T) {
		opt := option.NewUserQueryOption(queryCtx(alicePriv))
		rows, err := User.Get(opt)
		assert.Nil(t, err)
		if assert.Len(t, rows, 1) {
			assert.Equal(t, aliceID, rows[0].ID)
		}
	})
	t.Run("Invalid user gets nothing", func(t *testing.T) {
		priv := option.NewPrivilege(security.AllPrivileges())
		opt := option.NewUserQueryOption(queryCtx(priv))
		rows, err := User.Get(opt)
		assert.Nil(t, err)
		assert.Empty(t, rows)
	})
	t.Run("Name filter", func(t *testing.T) {
		opt := option.NewUserQueryOption(queryCtx(adminPriv))
		opt.SetTargetName("admin")
		rows, err := User.Get(opt)
		assert.Nil(t, err)
		if assert.Len(t, rows, 1) {
			assert.Equal(t, adminID, rows[0].ID)
		}
	})
}

func Test_User_PrivilegeOf(t *testing.T) {
	t.Run("Known user", func(t *testing.T) {
		priv, err := User.PrivilegeOf(adminID)
		assert.Nil(t, err)
		assert.Equal(t, adminID, priv.UserID())
		assert.Equal(t, security.AllPrivileges(), priv.Flags())
	})
	t.Run("System user", func(t *testing.T) {
		priv, err := User.PrivilegeOf(db.SystemUserID)
		assert.Nil(t, err)
		assert.Equal(t, db.SystemUserID, priv.UserID())
		assert.True(t, priv.Has(security.SystemOperation))
	})
	t.Run("Unknown user", func(t *testing.T) {
		priv, err := User.PrivilegeOf(9999)
		assert.Nil(t, err)
		assert.Equal(t, db.InvalidUserID, priv.UserID())
		assert.Equal(t, security.NonePrivilege, priv.Flags())
	})
}

package handler

import (
	"testing"

	"github.com/project-hatohol/hatohol-server/errcode"
	"github.com/project-hatohol/hatohol-server/option"
	"github.com/project-hatohol/hatohol-server/security"
	"github.com/stretchr/testify/assert"
)

func Test_Role_Add(t *testing.T) {
	flags := security.Flag(security.GetAllServer)

	t.Run("No privilege", func(t *testing.T) {
		_, err := Role.Add("observer", flags, alicePriv)
		assert.True(t, errcode.Is(err, errcode.NoPrivilege), err)
	})
	t.Run("Empty name", func(t *testing.T) {
		_, err := Role.Add("", flags, adminPriv)
		assert.True(t, errcode.Is(err, errcode.EmptyUserRoleName), err)
	})
	t.Run("Reserved all flags", func(t *testing.T) {
		_, err := Role.Add("root", security.AllPrivileges(), adminPriv)
		assert.True(t, errcode.Is(err, errcode.InvalidPrivilegeFlags), err)
	})
	t.Run("Reserved none flags", func(t *testing.T) {
		_, err := Role.Add("nobody", security.NonePrivilege, adminPriv)
		assert.True(t, errcode.Is(err, errcode.InvalidPrivilegeFlags), err)
	})
	t.Run("Success", func(t *testing.T) {
		id, err := Role.Add("observer", flags, adminPriv)
		assert.Nil(t, err)
		assert.NotZero(t, id)
	})
	t.Run("Duplicate name", func(t *testing.T) {
		_, err := Role.Add("observer",
			security.Flag(security.GetAllAction), adminPriv)
		assert.True(t, errcode.Is(err, errcode.UserRoleNameOrFlagsExist), err)
	})
	t.Run("Duplicate flags", func(t *testing.T) {
		_, err := Role.Add("watcher", flags, adminPriv)
		assert.True(t, errcode.Is(err, errcode.UserRoleNameOrFlagsExist), err)
	})
}

func Test_Role_Update(t *testing.T) {
	idA, err := Role.Add("role-a",
		security.Flag(security.CreateIncidentSetting), adminPriv)
	assert.Nil(t, err)
	idB, err := Role.Add("role-b",
		security.Flag(security.UpdateIncidentSetting), adminPriv)
	assert.Nil(t, err)

	t.Run("No privilege", func(t *testing.T) {
		err := Role.Update(idA, "role-a",
			security.Flag(security.GetSystemInfo), alicePriv)
		assert.True(t, errcode.Is(err, errcode.NoPrivilege), err)
	})
	t.Run("Not found", func(t *testing.T) {
		err := Role.Update(99999, "ghost",
			security.Flag(security.GetSystemInfo), adminPriv)
		assert.True(t, errcode.Is(err, errcode.NotFoundTargetRecord), err)
	})
	t.Run("Name collision", func(t *testing.T) {
		err := Role.Update(idA, "role-b",
			security.Flag(security.CreateIncidentSetting), adminPriv)
		assert.True(t, errcode.Is(err, errcode.UserRoleNameOrFlagsExist), err)
	})
	t.Run("Flags collision", func(t *testing.T) {
		err := Role.Update(idA, "role-a",
			security.Flag(security.UpdateIncidentSetting), adminPriv)
		assert.True(t, errcode.Is(err, errcode.UserRoleNameOrFlagsExist), err)
	})
	t.Run("Success", func(t *testing.T) {
		assert.Nil(t, Role.Update(idA, "role-a2",
			security.Flag(security.DeleteIncidentSetting), adminPriv))
		opt := option.NewUserRoleQueryOption(queryCtx(alicePriv))
		opt.SetTargetRoleID(idA)
		rows, err := Role.Get(opt)
		assert.Nil(t, err)
		if assert.Len(t, rows, 1) {
			assert.Equal(t, "role-a2", rows[0].Name)
			assert.Equal(t,
				uint64(security.Flag(security.DeleteIncidentSetting)),
				rows[0].Flags)
		}
	})
	t.Run("Keeping own name is no collision", func(t *testing.T) {
		assert.Nil(t, Role.Update(idB, "role-b",
			security.Flag(security.GetAllIncidentSettings), adminPriv))
	})
}

func Test_Role_Delete(t *testing.T) {
	id, err := Role.Add("short-lived",
		security.Flag(security.CreateCustomIncidentStatus), adminPriv)
	assert.Nil(t, err)

	t.Run("No privilege", func(t *testing.T) {
		err := Role.Delete(id, alicePriv)
		assert.True(t, errcode.Is(err, errcode.NoPrivilege), err)
	})
	t.Run("Success", func(t *testing.T) {
		assert.Nil(t, Role.Delete(id, adminPriv))
	})
	t.Run("Not found", func(t *testing.T) {
		err := Role.Delete(id, adminPriv)
		assert.True(t, errcode.Is(err, errcode.NotFoundTargetRecord), err)
	})
}

func Test_Role_Get(t *testing.T) {
	// role definitions are not owner scoped, any valid user can list them
	opt := option.NewUserRoleQueryOption(queryCtx(alicePriv))
	rows, err := Role.Get(opt)
	assert.Nil(t, err)
	assert.NotEmpty(t, rows)

	invalid := option.NewPrivilege(security.NonePrivilege)
	opt = option.NewUserRoleQueryOption(queryCtx(invalid))
	rows, err = Role.Get(opt)
	assert.Nil(t, err)
	assert.Empty(t, rows)
}

package handler

import (
	"github.com/project-hatohol/hatohol-server/db"
	"github.com/project-hatohol/hatohol-server/errcode"
	"github.com/project-hatohol/hatohol-server/option"
	"github.com/project-hatohol/hatohol-server/security"
	"github.com/project-hatohol/hatohol-server/utils/log"
	"gorm.io/gorm"
)

type AccessImpl struct {
	tx     *gorm.DB
	access *db.ORM[db.AccessInfo]
}

func (a *AccessImpl) WithTx(tx *gorm.DB) *AccessImpl {
	if tx == nil {
		tx = db.DB
	}
	return &AccessImpl{
		tx:     tx,
		access: db.NewORM[db.AccessInfo](tx),
	}
}

// Add grants (userID, serverID, hostgroupID). Requires UpdateUser.
// Idempotent: an exact duplicate returns the existing row id instead of
// inserting a second row.
func (a *AccessImpl) Add(info *db.AccessInfo, priv option.Privilege) (int64, error) {
	if !priv.Has(security.UpdateUser) {
		return 0, errcode.New(errcode.NoPrivilege)
	}
	var id int64
	err := a.tx.Transaction(func(tx *gorm.DB) error {
		ta := a.WithTx(tx)
		existing, err := ta.access.Where(
			"user_id = ? AND server_id = ? AND host_group_id = ?",
			info.UserID, info.ServerID, info.HostgroupID).Take()
		if err != nil {
			return err
		}
		if existing != nil {
			id = existing.ID
			return nil
		}
		if err := ta.access.Create(info); err != nil {
			return err
		}
		id = info.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes one grant by id. Requires UpdateUser.
func (a *AccessImpl) Delete(id int64, priv option.Privilege) error {
	if !priv.Has(security.UpdateUser) {
		return errcode.New(errcode.NoPrivilege)
	}
	ok, err := a.access.DeleteID(id)
	if err != nil {
		return err
	}
	if !ok {
		return errcode.New(errcode.NotFoundTargetRecord)
	}
	return nil
}

// GetList returns the grants visible through opt.
func (a *AccessImpl) GetList(opt *option.AccessInfoQueryOption) ([]*db.AccessInfo, error) {
	cond, err := opt.Condition()
	if err != nil {
		return nil, err
	}
	if cond.IsAlwaysFalse() {
		return []*db.AccessInfo{}, nil
	}
	return a.access.Cond(opt.ToDBCondition(cond)).Find()
}

// GetMap returns the grants visible through opt as a nested
// server -> hostgroup -> row map. Duplicate keys are skipped with a
// warning, inconsistent data must not fail the query.
func (a *AccessImpl) GetMap(opt *option.AccessInfoQueryOption) (
	map[db.ServerID]map[db.HostgroupID]*db.AccessInfo, error) {
	rows, err := a.GetList(opt)
	if err != nil {
		return nil, err
	}
	ret := map[db.ServerID]map[db.HostgroupID]*db.AccessInfo{}
	for _, row := range rows {
		groups, ok := ret[row.ServerID]
		if !ok {
			groups = map[db.HostgroupID]*db.AccessInfo{}
			ret[row.ServerID] = groups
		}
		if _, ok := groups[row.HostgroupID]; ok {
			log.New().Warnf(
				"Duplicate access grant skipped: user %v, server %v, hostgroup %v",
				row.UserID, row.ServerID, row.HostgroupID)
			continue
		}
		groups[row.HostgroupID] = row
	}
	return ret, nil
}

// ServerHostGrpSetMap builds the authorization oracle of one user by
// scanning all of their grants. Implements option.AccessInfoSource.
func (a *AccessImpl) ServerHostGrpSetMap(userID db.UserID) (db.ServerHostGrpSetMap, error) {
	ret := db.ServerHostGrpSetMap{}
	if userID == db.InvalidUserID {
		return ret, nil
	}
	rows, err := a.access.Where("user_id = ?", userID).Find()
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		set, ok := ret[row.ServerID]
		if !ok {
			set = db.HostgroupIDSet{}
			ret[row.ServerID] = set
		}
		set.Add(row.HostgroupID)
	}
	return ret, nil
}

// IsAccessible evaluates the allowed-hosts predicate for a single
// (server, hostgroup) pair in memory. Pass db.AllHostgroups to ask about
// the server level only.
func (a *AccessImpl) IsAccessible(serverID db.ServerID, hostgroupID db.HostgroupID,
	priv option.Privilege) (bool, error) {
	if priv.UserID() == db.SystemUserID {
		return true, nil
	}
	if priv.UserID() == db.InvalidUserID {
		return false, nil
	}
	if priv.Has(security.GetAllServer) {
		return true, nil
	}
	m, err := a.ServerHostGrpSetMap(priv.UserID())
	if err != nil {
		return false, err
	}
	return m.AllowsHostgroup(serverID, hostgroupID), nil
}

package db

import "math"

// UserID identifies a row in the users table. Negative values are never
// stored, InvalidUserID marks a missing/unauthenticated identity and
// SystemUserID is the pseudo user internal components act as.
type UserID int32

const (
	InvalidUserID UserID = -1
	SystemUserID  UserID = 0
)

// ServerID identifies a registered monitoring server.
type ServerID uint32

// AllServers is the wildcard server id, meaning "no restriction at the
// server level". It is a sentinel only and never stored in the servers
// table itself.
const AllServers ServerID = math.MaxUint32

// HostgroupID is the server-defined hostgroup identifier. Backends use
// free-form ids so it is a string, stored as VARCHAR.
type HostgroupID string

const AllHostgroups HostgroupID = "*"

// HostID is the in-server host identifier, free-form like HostgroupID.
type HostID string

const AllHosts HostID = "*"

type ServerIDSet map[ServerID]struct{}

func (s ServerIDSet) Has(id ServerID) bool {
	_, ok := s[id]
	return ok
}

func (s ServerIDSet) Add(id ServerID) {
	s[id] = struct{}{}
}

type HostgroupIDSet map[HostgroupID]struct{}

func (s HostgroupIDSet) Has(id HostgroupID) bool {
	_, ok := s[id]
	return ok
}

func (s HostgroupIDSet) Add(id HostgroupID) {
	s[id] = struct{}{}
}

type HostIDSet map[HostID]struct{}

func (s HostIDSet) Has(id HostID) bool {
	_, ok := s[id]
	return ok
}

func (s HostIDSet) Add(id HostID) {
	s[id] = struct{}{}
}

// ServerHostGrpSetMap is the per-user authorization oracle built from the
// access_list table: server id to the set of visible hostgroups on it.
// A key of AllServers or a member of AllHostgroups means unrestricted at
// that level.
type ServerHostGrpSetMap map[ServerID]HostgroupIDSet

// AllowsServer reports whether any hostgroup on server id is visible.
func (m ServerHostGrpSetMap) AllowsServer(id ServerID) bool {
	if _, ok := m[AllServers]; ok {
		return true
	}
	_, ok := m[id]
	return ok
}

// AllowsHostgroup reports whether the given hostgroup on the given server
// is visible. A server-specific grant allows access exactly when its set
// contains the hostgroup or the wildcard.
func (m ServerHostGrpSetMap) AllowsHostgroup(id ServerID, group HostgroupID) bool {
	if _, ok := m[AllServers]; ok {
		return true
	}
	set, ok := m[id]
	if !ok {
		return false
	}
	if set.Has(AllHostgroups) {
		return true
	}
	if group == AllHostgroups {
		// any grant on the server covers the wildcard query
		return len(set) > 0
	}
	return set.Has(group)
}
